package repository

import (
	"Credify/internal/model"
	"context"

	"gorm.io/gorm"
)

// LatestMetricRepo 读取 latest_metrics 视图（每个作品取 fetched_at 最大的一条，
// 同一时刻并列时取计数最大的一条，id 兜底，见 scripts/schema.sql）
type LatestMetricRepo interface {
	ListByProjectIDs(ctx context.Context, projectIDs []string) ([]*model.LatestMetric, error)
}

type latestMetricRepoImpl struct {
	db *gorm.DB
}

func NewLatestMetricRepository(db *gorm.DB) LatestMetricRepo {
	return &latestMetricRepoImpl{db: db}
}

func (r *latestMetricRepoImpl) ListByProjectIDs(ctx context.Context, projectIDs []string) ([]*model.LatestMetric, error) {
	metrics := make([]*model.LatestMetric, 0)
	query := r.db.WithContext(ctx).Model(&model.LatestMetric{})
	if len(projectIDs) > 0 {
		query = query.Where("project_id IN ?", projectIDs)
	}
	result := query.Find(&metrics)
	if result.Error != nil {
		return nil, result.Error
	}
	return metrics, nil
}
