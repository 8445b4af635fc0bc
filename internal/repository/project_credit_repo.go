package repository

import (
	"Credify/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProjectCreditRepo 署名关系即归属解析器：聚合重算通过它确定用户名下的作品集合
type ProjectCreditRepo interface {
	Create(ctx context.Context, credit *model.ProjectCredit) error
	// ProjectIDsByUser 返回去重后的作品 ID 集合（同一作品多个角色只算一次）
	ProjectIDsByUser(ctx context.Context, userID uint64) ([]string, error)
	ListByUser(ctx context.Context, userID uint64) ([]*model.ProjectCredit, error)
	UserIDsByProject(ctx context.Context, projectID string) ([]uint64, error)
}

type projectCreditRepoImpl struct {
	db *gorm.DB
}

func NewProjectCreditRepository(db *gorm.DB) ProjectCreditRepo {
	return &projectCreditRepoImpl{db: db}
}

// Create 重复署名静默忽略
func (r *projectCreditRepoImpl) Create(ctx context.Context, credit *model.ProjectCredit) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "project_id"}, {Name: "role"}},
		DoNothing: true,
	}).Create(credit).Error
}

func (r *projectCreditRepoImpl) ProjectIDsByUser(ctx context.Context, userID uint64) ([]string, error) {
	ids := make([]string, 0)
	err := r.db.WithContext(ctx).Model(&model.ProjectCredit{}).
		Distinct("project_id").
		Where("user_id = ?", userID).
		Pluck("project_id", &ids).Error
	return ids, err
}

func (r *projectCreditRepoImpl) ListByUser(ctx context.Context, userID uint64) ([]*model.ProjectCredit, error) {
	credits := make([]*model.ProjectCredit, 0)
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&credits)
	if result.Error != nil {
		return nil, result.Error
	}
	return credits, nil
}

func (r *projectCreditRepoImpl) UserIDsByProject(ctx context.Context, projectID string) ([]uint64, error) {
	ids := make([]uint64, 0)
	err := r.db.WithContext(ctx).Model(&model.ProjectCredit{}).
		Distinct("user_id").
		Where("project_id = ?", projectID).
		Pluck("user_id", &ids).Error
	return ids, err
}
