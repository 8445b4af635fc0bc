package dto

import "time"

// RegisterProjectDTO 登记一个待追踪的作品
type RegisterProjectDTO struct {
	UserID uint64 `json:"user_id" binding:"required"`
	URL    string `json:"url" binding:"required,url"`
	Role   string `json:"role"`
}

// ProjectDTO 作品基础信息
type ProjectDTO struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Link         string    `json:"link"`
	Platform     string    `json:"platform"`
	Channel      string    `json:"channel"`
	PostedAt     time.Time `json:"posted_at"`
	ThumbnailURL string    `json:"thumbnail_url"`
}

// CreatorProjectDTO 创作者名下作品，带角色列表与最新指标
type CreatorProjectDTO struct {
	ProjectDTO
	Roles        []string `json:"roles"`
	ViewCount    int64    `json:"view_count"`
	LikeCount    int64    `json:"like_count"`
	CommentCount int64    `json:"comment_count"`
}
