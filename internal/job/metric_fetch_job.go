package job

import (
	"Credify/internal/pkg/logger"
	"Credify/internal/pkg/youtube"
	"Credify/internal/repository"
	"Credify/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// MetricFetchJob 周期抓取所有在库作品的当前统计量并经摄入守卫落库，
// 单个作品失败不中断本轮，批次结束后只重算受影响创作者的聚合
type MetricFetchJob struct {
	projectRepo      repository.ProjectRepo
	creditRepo       repository.ProjectCreditRepo
	ingestSvc        service.IngestService
	creatorMetricSvc service.CreatorMetricService
	fetcher          youtube.Fetcher
}

func NewMetricFetchJob(
	projectRepo repository.ProjectRepo,
	creditRepo repository.ProjectCreditRepo,
	ingestSvc service.IngestService,
	creatorMetricSvc service.CreatorMetricService,
	fetcher youtube.Fetcher,
) *MetricFetchJob {
	return &MetricFetchJob{
		projectRepo:      projectRepo,
		creditRepo:       creditRepo,
		ingestSvc:        ingestSvc,
		creatorMetricSvc: creatorMetricSvc,
		fetcher:          fetcher,
	}
}

func (s *MetricFetchJob) Run() {
	traceID := "job-fetch-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	started := time.Now()

	projectIDs, err := s.projectRepo.ListAllIDs(ctx)
	if err != nil {
		log.ErrorContext(ctx, "list tracked projects error", "err", err)
		return
	}

	dirtyUserIDs := make(map[uint64]struct{})
	var fetched, skipped, failed int

	for _, pid := range projectIDs {
		video, err := s.fetcher.FetchVideo(ctx, pid)
		if err != nil {
			log.ErrorContext(ctx, "fetch video metrics error", "project_id", pid, "err", err)
			failed++
			continue
		}

		outcome, err := s.ingestSvc.IngestSnapshot(ctx, &service.SnapshotInput{
			ProjectID:    pid,
			Platform:     "youtube",
			ViewCount:    video.ViewCount,
			LikeCount:    video.LikeCount,
			CommentCount: video.CommentCount,
		})
		if err != nil {
			log.ErrorContext(ctx, "ingest snapshot error", "project_id", pid, "err", err)
			failed++
			continue
		}
		if outcome == service.IngestSkipped {
			skipped++
			continue
		}
		fetched++

		userIDs, err := s.creditRepo.UserIDsByProject(ctx, pid)
		if err != nil {
			log.ErrorContext(ctx, "resolve credited creators error", "project_id", pid, "err", err)
			continue
		}
		for _, uid := range userIDs {
			dirtyUserIDs[uid] = struct{}{}
		}
	}

	for uid := range dirtyUserIDs {
		if err := s.creatorMetricSvc.RefreshCreatorMetric(ctx, uid); err != nil {
			log.ErrorContext(ctx, "refresh creator metric error", "uid", uid, "err", err)
		}
	}

	log.InfoContext(ctx, "metric fetch job finished",
		"project_count", len(projectIDs),
		"fetched", fetched,
		"skipped", skipped,
		"failed", failed,
		"creator_count", len(dirtyUserIDs),
		"elapsed", time.Since(started))
}
