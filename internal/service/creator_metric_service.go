package service

import (
	"Credify/internal/api/dto"
	"Credify/internal/model"
	"Credify/internal/repository"
	"context"
	log "log/slog"
	"time"
)

type CreatorMetricService interface {
	// RefreshCreatorMetric 仅在聚合过期时重算。新鲜判定失败一律按过期处理，
	// 只有聚合写入本身的错误才向上抛。
	RefreshCreatorMetric(ctx context.Context, userID uint64) error
	// GetCreatorMetric 读路径：先触发一次带守卫的刷新，再返回已存的聚合。
	// 刷新失败时仍返回最近一次成功计算的结果。
	GetCreatorMetric(ctx context.Context, userID uint64) (*dto.CreatorMetricDTO, error)
}

type creatorMetricServiceImpl struct {
	creatorMetricRepo repository.CreatorMetricRepo
	creditRepo        repository.ProjectCreditRepo
	latestMetricSvc   LatestMetricService
}

func NewCreatorMetricService(
	creatorMetricRepo repository.CreatorMetricRepo,
	creditRepo repository.ProjectCreditRepo,
	latestMetricSvc LatestMetricService,
) CreatorMetricService {
	return &creatorMetricServiceImpl{
		creatorMetricRepo: creatorMetricRepo,
		creditRepo:        creditRepo,
		latestMetricSvc:   latestMetricSvc,
	}
}

func (s *creatorMetricServiceImpl) RefreshCreatorMetric(ctx context.Context, userID uint64) error {
	projectIDs, err := s.creditRepo.ProjectIDsByUser(ctx, userID)
	if err != nil {
		return err
	}

	metrics := make([]*model.LatestMetric, 0)
	if len(projectIDs) > 0 {
		metrics, err = s.latestMetricSvc.GetLatestMetrics(ctx, projectIDs)
		if err != nil {
			return err
		}
	}

	now := time.Now().UTC()

	// 无作品或尚无任何快照：写入全零聚合，水位推进到当前时刻
	if len(metrics) == 0 {
		return s.creatorMetricRepo.SaveOrUpdateMetric(ctx, &model.CreatorMetric{
			UserID:     userID,
			ComputedAt: now,
		})
	}

	// 所有投影都携带 fetched_at 才允许短路；缺失视为无法证明新鲜，无条件重算
	maxFetchedAt, provable := maxFetchedAt(metrics)
	if provable {
		cached, checkErr := s.creatorMetricRepo.GetByUserID(ctx, userID)
		if checkErr != nil {
			log.WarnContext(ctx, "aggregate freshness check failed, recomputing",
				"user_id", userID, "err", checkErr)
		} else if cached != nil && !cached.ComputedAt.Before(maxFetchedAt) {
			return nil
		}
	} else {
		log.WarnContext(ctx, "latest metric missing fetched_at, forcing recompute", "user_id", userID)
	}

	metric := sumLatestMetrics(metrics)
	metric.UserID = userID
	metric.ComputedAt = now

	return s.creatorMetricRepo.SaveOrUpdateMetric(ctx, metric)
}

func (s *creatorMetricServiceImpl) GetCreatorMetric(ctx context.Context, userID uint64) (*dto.CreatorMetricDTO, error) {
	if err := s.RefreshCreatorMetric(ctx, userID); err != nil {
		// 降级：展示最近一次成功计算的总量，而不是报错
		log.WarnContext(ctx, "refresh creator metric failed, serving last computed totals",
			"user_id", userID, "err", err)
	}

	metric, err := s.creatorMetricRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if metric == nil {
		return &dto.CreatorMetricDTO{UserID: userID}, nil
	}

	return &dto.CreatorMetricDTO{
		UserID:            metric.UserID,
		TotalViewCount:    metric.TotalViewCount,
		TotalLikeCount:    metric.TotalLikeCount,
		TotalCommentCount: metric.TotalCommentCount,
		TotalShareCount:   metric.TotalShareCount,
		AvgEngagementRate: metric.AvgEngagementRate,
		ComputedAt:        metric.ComputedAt,
	}, nil
}

// maxFetchedAt 求投影集合里最大的 fetched_at；任何一条缺失即返回不可证明
func maxFetchedAt(metrics []*model.LatestMetric) (time.Time, bool) {
	var maxAt time.Time
	for _, m := range metrics {
		if m.FetchedAt == nil {
			return time.Time{}, false
		}
		if m.FetchedAt.After(maxAt) {
			maxAt = *m.FetchedAt
		}
	}
	return maxAt, true
}

func sumLatestMetrics(metrics []*model.LatestMetric) *model.CreatorMetric {
	result := &model.CreatorMetric{}
	var rateSum float64
	for _, m := range metrics {
		result.TotalViewCount += m.ViewCount
		result.TotalLikeCount += m.LikeCount
		result.TotalCommentCount += m.CommentCount
		result.TotalShareCount += m.ShareCount
		rateSum += m.EngagementRate
	}
	result.AvgEngagementRate = rateSum / float64(len(metrics))
	return result
}
