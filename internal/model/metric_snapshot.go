package model

import (
	"time"
)

// MetricSnapshot 第三方平台指标的单次抓取快照，只追加不修改
type MetricSnapshot struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	ProjectID      string    `gorm:"type:varchar(64);not null;index:idx_project_fetched,priority:1" json:"projectId"`
	Platform       string    `gorm:"type:varchar(32);not null;default:'youtube'" json:"platform"`
	FetchedAt      time.Time `gorm:"not null;index:idx_project_fetched,priority:2;column:fetched_at" json:"fetchedAt"`
	ViewCount      int64     `gorm:"not null;default:0" json:"viewCount"`
	LikeCount      int64     `gorm:"not null;default:0" json:"likeCount"`
	CommentCount   int64     `gorm:"not null;default:0" json:"commentCount"`
	ShareCount     int64     `gorm:"not null;default:0" json:"shareCount"`
	EngagementRate float64   `gorm:"not null;default:0" json:"engagementRate"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (MetricSnapshot) TableName() string {
	return "metric_snapshots"
}
