package job

import (
	"Credify/internal/pkg/consts"
	"Credify/internal/pkg/logger"
	"Credify/internal/pkg/redis"
	"Credify/internal/pkg/util"
	"Credify/internal/service"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// CreatorMetricJob 消费脏创作者集合，对每个创作者执行带守卫的聚合重算。
// 锁是尽力而为的：拿不到就跳过，下一个触发点自然补算。
type CreatorMetricJob struct {
	creatorMetricSvc service.CreatorMetricService
}

func NewCreatorMetricJob(creatorMetricSvc service.CreatorMetricService) *CreatorMetricJob {
	return &CreatorMetricJob{
		creatorMetricSvc: creatorMetricSvc,
	}
}

func (s *CreatorMetricJob) Run() {
	traceID := "job-creator-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	processingKey := consts.CreatorDirtyKey + ":processing"
	err := redis.Rename(ctx, consts.CreatorDirtyKey, processingKey)
	if err != nil {
		// 脏集合不存在说明本轮无事可做
		return
	}

	tempSet, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get creator dirty set error", "err", err)
		return
	}

	userIDs, err := util.StrSliceToUInt64Slice(tempSet)
	if err != nil {
		log.ErrorContext(ctx, "convert creator set to int slice error", "err", err)
		return
	}

	var refreshed int
	for _, uid := range userIDs {
		lockKey := consts.CreatorRefreshLock + strconv.FormatUint(uid, 10)
		locked, err := redis.TryLock(ctx, lockKey, traceID, 30*time.Second, 1)
		if err != nil || !locked {
			continue
		}

		if err = s.creatorMetricSvc.RefreshCreatorMetric(ctx, uid); err != nil {
			log.ErrorContext(ctx, "refresh creator metric error", "uid", uid, "err", err)
		} else {
			refreshed++
		}

		redis.UnLock(ctx, lockKey, traceID)
	}

	if err = redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete creator processing set error", "err", err)
	}

	log.InfoContext(ctx, "refresh creator metrics success",
		"dirty_count", len(userIDs),
		"refreshed", refreshed)
}
