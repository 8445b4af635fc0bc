package dto

import "time"

// CreatorMetricDTO 创作者聚合总量，ComputedAt 为聚合水位
type CreatorMetricDTO struct {
	UserID            uint64    `json:"user_id"`
	TotalViewCount    int64     `json:"total_view_count"`
	TotalLikeCount    int64     `json:"total_like_count"`
	TotalCommentCount int64     `json:"total_comment_count"`
	TotalShareCount   int64     `json:"total_share_count"`
	AvgEngagementRate float64   `json:"avg_engagement_rate"`
	ComputedAt        time.Time `json:"computed_at"`
}
