package service

import (
	"Credify/internal/model"
	"Credify/internal/pkg/consts"
	"Credify/internal/pkg/mongo"
	"Credify/internal/pkg/redis"
	"Credify/internal/pkg/util"
	"Credify/internal/repository"
	"context"
	log "log/slog"
	"math"
	"time"
)

// IngestOutcome 摄入判定的三种出口，可观测性要求三者可区分
type IngestOutcome string

const (
	// IngestInserted 正常落库
	IngestInserted IngestOutcome = mongo.OutcomeInserted
	// IngestSkipped 当天已有快照，视为成功但不落库
	IngestSkipped IngestOutcome = mongo.OutcomeSkipped
	// IngestInsertedUnchecked 去重检查失败后直接落库（宁可偶尔重复，不可丢数据）
	IngestInsertedUnchecked IngestOutcome = mongo.OutcomeInsertedUnchecked
)

// 单次存储调用的等待上限，任何一步卡住都不能拖垮整批摄入
const storeCallTimeout = 5 * time.Second

// SnapshotInput 外部抓取器产出的一次快照
type SnapshotInput struct {
	ProjectID    string
	Platform     string
	FetchedAt    time.Time // 零值时取摄入时刻
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
	ShareCount   int64
}

type IngestService interface {
	// IngestSnapshot 同一作品同一 UTC 自然日最多保留一条快照。
	// 去重检查本身失败时照常落库：该约束是尽力而为，不是硬约束。
	IngestSnapshot(ctx context.Context, input *SnapshotInput) (IngestOutcome, error)
}

type ingestServiceImpl struct {
	snapshotRepo repository.SnapshotRepo
	auditRepo    mongo.IngestLogRepo
}

func NewIngestService(snapshotRepo repository.SnapshotRepo, auditRepo mongo.IngestLogRepo) IngestService {
	return &ingestServiceImpl{
		snapshotRepo: snapshotRepo,
		auditRepo:    auditRepo,
	}
}

func (s *ingestServiceImpl) IngestSnapshot(ctx context.Context, input *SnapshotInput) (IngestOutcome, error) {
	if input.ProjectID == "" {
		return "", ErrParamInvalid
	}

	fetchedAt := input.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}
	dayStart := util.GetMidnight(fetchedAt)

	outcome := IngestInserted

	checkCtx, cancel := context.WithTimeout(ctx, storeCallTimeout)
	exists, err := s.snapshotRepo.HasSnapshotSince(checkCtx, input.ProjectID, dayStart)
	cancel()
	if err != nil {
		log.WarnContext(ctx, "snapshot dedup check failed, inserting anyway",
			"project_id", input.ProjectID, "err", err)
		outcome = IngestInsertedUnchecked
	} else if exists {
		log.InfoContext(ctx, "snapshot skipped, already have one for this day",
			"project_id", input.ProjectID, "day", dayStart.Format(time.DateOnly))
		s.audit(ctx, input, fetchedAt, IngestSkipped, nil)
		return IngestSkipped, nil
	}

	snapshot := &model.MetricSnapshot{
		ProjectID:      input.ProjectID,
		Platform:       platformOrDefault(input.Platform),
		FetchedAt:      fetchedAt,
		ViewCount:      input.ViewCount,
		LikeCount:      input.LikeCount,
		CommentCount:   input.CommentCount,
		ShareCount:     input.ShareCount,
		EngagementRate: engagementRate(input.ViewCount, input.LikeCount, input.CommentCount),
	}

	insertCtx, cancel := context.WithTimeout(ctx, storeCallTimeout)
	err = s.snapshotRepo.Insert(insertCtx, snapshot)
	cancel()
	if err != nil {
		s.audit(ctx, input, fetchedAt, "", err)
		return "", err
	}

	s.audit(ctx, input, fetchedAt, outcome, nil)
	return outcome, nil
}

// audit 摄入判定写入审计日志，审计失败只记日志不影响主流程
func (s *ingestServiceImpl) audit(ctx context.Context, input *SnapshotInput, fetchedAt time.Time, outcome IngestOutcome, cause error) {
	if s.auditRepo == nil {
		return
	}

	entry := &mongo.IngestLog{
		ProjectID: input.ProjectID,
		Platform:  platformOrDefault(input.Platform),
		Outcome:   string(outcome),
		FetchedAt: fetchedAt,
	}
	if cause != nil {
		entry.Outcome = mongo.OutcomeFailed
		entry.Error = cause.Error()
	}

	if err := s.auditRepo.Insert(ctx, entry); err != nil {
		log.WarnContext(ctx, "write ingest audit log failed", "project_id", input.ProjectID, "err", err)
	}
}

// engagementRate 抓取时刻的互动率 (likes+comments)/views，保留四位小数
func engagementRate(views, likes, comments int64) float64 {
	if views <= 0 {
		return 0
	}
	rate := float64(likes+comments) / float64(views)
	return math.Round(rate*10000) / 10000
}

func platformOrDefault(platform string) string {
	if platform == "" {
		return "youtube"
	}
	return platform
}

// MarkCreatorsDirty 将作品署名的创作者加入脏集合，等待聚合刷新任务消费
func MarkCreatorsDirty(ctx context.Context, creditRepo repository.ProjectCreditRepo, projectID string) {
	userIDs, err := creditRepo.UserIDsByProject(ctx, projectID)
	if err != nil {
		log.WarnContext(ctx, "resolve credited creators failed", "project_id", projectID, "err", err)
		return
	}
	if len(userIDs) == 0 {
		return
	}

	if err = redis.SAddToSet(ctx, consts.CreatorDirtyKey, util.UInt64SliceToStrSlice(userIDs)); err != nil {
		log.WarnContext(ctx, "mark creators dirty failed", "project_id", projectID, "err", err)
	}
}
