package model

import (
	"time"
)

// ProjectCredit 创作者与作品的署名关系，一个作品可对同一用户存在多个角色
type ProjectCredit struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_user_project_role" json:"userId"`
	ProjectID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_user_project_role" json:"projectId"`
	Role      string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_user_project_role" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ProjectCredit) TableName() string {
	return "project_credits"
}
