package repository

import (
	"Credify/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepo interface {
	SaveOrUpdate(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, projectID string) (*model.Project, error)
	ListByIDs(ctx context.Context, projectIDs []string) ([]*model.Project, error)
	ListAllIDs(ctx context.Context) ([]string, error)
}

type projectRepoImpl struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepo {
	return &projectRepoImpl{db: db}
}

// SaveOrUpdate 重复登记同一作品时刷新元数据，不报错
func (r *projectRepoImpl) SaveOrUpdate(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title",
			"description",
			"link",
			"channel",
			"thumbnail_url",
			"updated_at",
		}),
	}).Create(project).Error
}

func (r *projectRepoImpl) GetByID(ctx context.Context, projectID string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Where("id = ?", projectID).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *projectRepoImpl) ListByIDs(ctx context.Context, projectIDs []string) ([]*model.Project, error) {
	projects := make([]*model.Project, 0)
	result := r.db.WithContext(ctx).
		Where("id IN ?", projectIDs).
		Find(&projects)
	if result.Error != nil {
		return nil, result.Error
	}
	return projects, nil
}

func (r *projectRepoImpl) ListAllIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0)
	err := r.db.WithContext(ctx).Model(&model.Project{}).
		Pluck("id", &ids).Error
	return ids, err
}
