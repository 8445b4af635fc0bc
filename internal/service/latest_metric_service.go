package service

import (
	"Credify/internal/model"
	"Credify/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// 降级扫描的等待上限，扫描卡住不能拖垮上层的刷新批次
const fallbackScanTimeout = 10 * time.Second

// LatestMetricService 提供每个作品最新一条快照的投影。
// 主路径读 latest_metrics 视图；视图不可用时从快照表降级重建，
// 两条路径对同一份数据产出完全一致的结果（含 fetched_at）。
type LatestMetricService interface {
	GetLatestMetrics(ctx context.Context, projectIDs []string) ([]*model.LatestMetric, error)
}

type latestMetricServiceImpl struct {
	latestMetricRepo repository.LatestMetricRepo
	snapshotRepo     repository.SnapshotRepo
}

func NewLatestMetricService(
	latestMetricRepo repository.LatestMetricRepo,
	snapshotRepo repository.SnapshotRepo,
) LatestMetricService {
	return &latestMetricServiceImpl{
		latestMetricRepo: latestMetricRepo,
		snapshotRepo:     snapshotRepo,
	}
}

func (s *latestMetricServiceImpl) GetLatestMetrics(ctx context.Context, projectIDs []string) ([]*model.LatestMetric, error) {
	metrics, err := s.latestMetricRepo.ListByProjectIDs(ctx, projectIDs)
	if err == nil {
		return metrics, nil
	}

	log.WarnContext(ctx, "latest_metrics view unavailable, rebuilding from snapshots", "err", err)
	return s.resolveFromSnapshots(ctx, projectIDs)
}

// resolveFromSnapshots 降级路径：按 fetched_at 降序扫一趟，每个作品只保留
// 首次出现的快照。慢路径，只在视图不可用时走。
func (s *latestMetricServiceImpl) resolveFromSnapshots(ctx context.Context, projectIDs []string) ([]*model.LatestMetric, error) {
	scanCtx, cancel := context.WithTimeout(ctx, fallbackScanTimeout)
	snapshots, err := s.snapshotRepo.ListByProjectIDsDesc(scanCtx, projectIDs)
	cancel()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(projectIDs))
	metrics := make([]*model.LatestMetric, 0, len(projectIDs))

	for _, snapshot := range snapshots {
		if _, ok := seen[snapshot.ProjectID]; ok {
			continue
		}
		seen[snapshot.ProjectID] = struct{}{}

		fetchedAt := snapshot.FetchedAt
		metrics = append(metrics, &model.LatestMetric{
			ProjectID:      snapshot.ProjectID,
			FetchedAt:      &fetchedAt, // 新鲜度判断依赖该字段，降级路径同样必须携带
			ViewCount:      snapshot.ViewCount,
			LikeCount:      snapshot.LikeCount,
			CommentCount:   snapshot.CommentCount,
			ShareCount:     snapshot.ShareCount,
			EngagementRate: snapshot.EngagementRate,
		})
	}

	return metrics, nil
}
