package model

import (
	"time"
)

type Project struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)" json:"id"` // 平台侧视频 ID（如 YouTube video id）
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Link         string    `gorm:"type:varchar(512)" json:"link"`
	Platform     string    `gorm:"type:varchar(32);not null;default:'youtube'" json:"platform"`
	Channel      string    `gorm:"type:varchar(255)" json:"channel"`
	PostedAt     time.Time `json:"postedAt"`
	ThumbnailURL string    `gorm:"type:varchar(512)" json:"thumbnailUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Project) TableName() string {
	return "projects"
}
