package model

import (
	"time"
)

// LatestMetric 每个作品最新一条快照的投影，由数据库视图 latest_metrics 提供，只读。
// FetchedAt 是新鲜度判断的输入，投影缺失该字段时按无法证明新鲜处理。
type LatestMetric struct {
	ProjectID      string     `gorm:"column:project_id" json:"projectId"`
	FetchedAt      *time.Time `gorm:"column:fetched_at" json:"fetchedAt"`
	ViewCount      int64      `gorm:"column:view_count" json:"viewCount"`
	LikeCount      int64      `gorm:"column:like_count" json:"likeCount"`
	CommentCount   int64      `gorm:"column:comment_count" json:"commentCount"`
	ShareCount     int64      `gorm:"column:share_count" json:"shareCount"`
	EngagementRate float64    `gorm:"column:engagement_rate" json:"engagementRate"`
}

func (LatestMetric) TableName() string {
	return "latest_metrics"
}
