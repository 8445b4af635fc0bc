package dto

import "time"

// IngestSnapshotDTO 外部抓取器推送的一次指标快照
type IngestSnapshotDTO struct {
	ProjectID    string     `json:"project_id" binding:"required"`
	Platform     string     `json:"platform"`
	FetchedAt    *time.Time `json:"fetched_at"`
	ViewCount    int64      `json:"view_count" binding:"gte=0"`
	LikeCount    int64      `json:"like_count" binding:"gte=0"`
	CommentCount int64      `json:"comment_count" binding:"gte=0"`
	ShareCount   int64      `json:"share_count" binding:"gte=0"`
}

// IngestResultDTO 摄入判定结果
type IngestResultDTO struct {
	ProjectID string `json:"project_id"`
	Outcome   string `json:"outcome"`
}
