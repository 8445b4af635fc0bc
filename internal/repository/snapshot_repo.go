package repository

import (
	"Credify/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type SnapshotRepo interface {
	Insert(ctx context.Context, snapshot *model.MetricSnapshot) error
	// HasSnapshotSince 判断指定作品在 since 之后是否已有快照（同天去重检查）
	HasSnapshotSince(ctx context.Context, projectID string, since time.Time) (bool, error)
	// ListByProjectIDsDesc 按 fetched_at 降序返回快照全量历史，供降级路径单趟扫描。
	// 排序尾部与 latest_metrics 视图一致：平 fetched_at 时计数大者优先，id 兜底
	ListByProjectIDsDesc(ctx context.Context, projectIDs []string) ([]*model.MetricSnapshot, error)
	CountByProjectID(ctx context.Context, projectID string) (int64, error)
}

type snapshotRepoImpl struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) SnapshotRepo {
	return &snapshotRepoImpl{db: db}
}

func (r *snapshotRepoImpl) Insert(ctx context.Context, snapshot *model.MetricSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *snapshotRepoImpl) HasSnapshotSince(ctx context.Context, projectID string, since time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.MetricSnapshot{}).
		Where("project_id = ? AND fetched_at >= ?", projectID, since).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *snapshotRepoImpl) ListByProjectIDsDesc(ctx context.Context, projectIDs []string) ([]*model.MetricSnapshot, error) {
	snapshots := make([]*model.MetricSnapshot, 0)
	query := r.db.WithContext(ctx).Model(&model.MetricSnapshot{})
	if len(projectIDs) > 0 {
		query = query.Where("project_id IN ?", projectIDs)
	}
	result := query.
		Order("fetched_at DESC, view_count DESC, like_count DESC, comment_count DESC, share_count DESC, id DESC").
		Find(&snapshots)
	if result.Error != nil {
		return nil, result.Error
	}
	return snapshots, nil
}

func (r *snapshotRepoImpl) CountByProjectID(ctx context.Context, projectID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.MetricSnapshot{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}
