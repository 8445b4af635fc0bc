package model

import (
	"time"
)

// CreatorMetric 创作者聚合指标缓存，每个用户一行。
// ComputedAt 为水位时间戳：只要它不早于各作品最新快照的 fetched_at，该行即视为新鲜。
type CreatorMetric struct {
	ID                uint64    `gorm:"primaryKey" json:"id"`
	UserID            uint64    `gorm:"not null;uniqueIndex:idx_creator_user" json:"userId"`
	TotalViewCount    int64     `gorm:"not null;default:0" json:"totalViewCount"`
	TotalLikeCount    int64     `gorm:"not null;default:0" json:"totalLikeCount"`
	TotalCommentCount int64     `gorm:"not null;default:0" json:"totalCommentCount"`
	TotalShareCount   int64     `gorm:"not null;default:0" json:"totalShareCount"`
	AvgEngagementRate float64   `gorm:"not null;default:0" json:"avgEngagementRate"`
	ComputedAt        time.Time `gorm:"not null;column:computed_at" json:"computedAt"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (CreatorMetric) TableName() string {
	return "creator_metrics"
}
