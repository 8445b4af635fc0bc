package repository

import (
	"Credify/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreatorMetricRepo interface {
	GetByUserID(ctx context.Context, userID uint64) (*model.CreatorMetric, error)
	// SaveOrUpdateMetric 整行替换式 Upsert，并发重算收敛到同一结果
	SaveOrUpdateMetric(ctx context.Context, metric *model.CreatorMetric) error
}

type creatorMetricRepoImpl struct {
	db *gorm.DB
}

func NewCreatorMetricRepository(db *gorm.DB) CreatorMetricRepo {
	return &creatorMetricRepoImpl{db: db}
}

func (r *creatorMetricRepoImpl) GetByUserID(ctx context.Context, userID uint64) (*model.CreatorMetric, error) {
	var metric model.CreatorMetric
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&metric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &metric, nil
}

func (r *creatorMetricRepoImpl) SaveOrUpdateMetric(ctx context.Context, metric *model.CreatorMetric) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_view_count",
			"total_like_count",
			"total_comment_count",
			"total_share_count",
			"avg_engagement_rate",
			"computed_at",
			"updated_at",
		}),
	}).Create(metric).Error
}
