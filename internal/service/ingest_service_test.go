package service

import (
	"Credify/internal/model"
	"Credify/internal/repository"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const latestMetricsViewSQL = `
CREATE VIEW latest_metrics AS
SELECT s.id,
       s.project_id,
       s.platform,
       s.fetched_at,
       s.view_count,
       s.like_count,
       s.comment_count,
       s.share_count,
       s.engagement_rate
FROM metric_snapshots s
WHERE s.id = (SELECT s2.id
              FROM metric_snapshots s2
              WHERE s2.project_id = s.project_id
              ORDER BY s2.fetched_at DESC,
                       s2.view_count DESC,
                       s2.like_count DESC,
                       s2.comment_count DESC,
                       s2.share_count DESC,
                       s2.id DESC
              LIMIT 1)`

func setupServiceTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(
		&model.Project{},
		&model.ProjectCredit{},
		&model.MetricSnapshot{},
		&model.CreatorMetric{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	if err := gdb.Exec(latestMetricsViewSQL).Error; err != nil {
		t.Fatalf("failed to create latest_metrics view: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}

// brokenDedupRepo 去重检查永远失败，其余操作透传
type brokenDedupRepo struct {
	repository.SnapshotRepo
}

func (r *brokenDedupRepo) HasSnapshotSince(context.Context, string, time.Time) (bool, error) {
	return false, errors.New("dedup check unavailable")
}

// deadlineRecordingRepo 记录每次存储调用的 ctx 是否带截止时间
type deadlineRecordingRepo struct {
	repository.SnapshotRepo
	checkHadDeadline  bool
	insertHadDeadline bool
}

func (r *deadlineRecordingRepo) HasSnapshotSince(ctx context.Context, projectID string, since time.Time) (bool, error) {
	_, r.checkHadDeadline = ctx.Deadline()
	return r.SnapshotRepo.HasSnapshotSince(ctx, projectID, since)
}

func (r *deadlineRecordingRepo) Insert(ctx context.Context, snapshot *model.MetricSnapshot) error {
	_, r.insertHadDeadline = ctx.Deadline()
	return r.SnapshotRepo.Insert(ctx, snapshot)
}

func TestIngestSnapshotOutcomes(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	snapshotRepo := repository.NewSnapshotRepository(gdb)
	svc := NewIngestService(snapshotRepo, nil)
	ctx := context.Background()

	day1 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	outcome, err := svc.IngestSnapshot(ctx, &SnapshotInput{ProjectID: "vid-1", FetchedAt: day1, ViewCount: 100})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if outcome != IngestInserted {
		t.Fatalf("expected inserted, got %s", outcome)
	}

	// 同一 UTC 自然日的第二条是去重跳过，且算成功
	outcome, err = svc.IngestSnapshot(ctx, &SnapshotInput{ProjectID: "vid-1", FetchedAt: day1.Add(6 * time.Hour), ViewCount: 110})
	if err != nil {
		t.Fatalf("same-day ingest should not error: %v", err)
	}
	if outcome != IngestSkipped {
		t.Fatalf("expected skipped, got %s", outcome)
	}

	// 第二天照常落库
	outcome, err = svc.IngestSnapshot(ctx, &SnapshotInput{ProjectID: "vid-1", FetchedAt: day1.Add(24 * time.Hour), ViewCount: 150})
	if err != nil {
		t.Fatalf("next-day ingest: %v", err)
	}
	if outcome != IngestInserted {
		t.Fatalf("expected inserted, got %s", outcome)
	}

	count, err := snapshotRepo.CountByProjectID(ctx, "vid-1")
	if err != nil {
		t.Fatalf("count snapshots: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 stored snapshots, got %d", count)
	}
}

func TestIngestSnapshotDedupFailureFallsOpen(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	snapshotRepo := repository.NewSnapshotRepository(gdb)
	svc := NewIngestService(&brokenDedupRepo{SnapshotRepo: snapshotRepo}, nil)
	ctx := context.Background()

	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	outcome, err := svc.IngestSnapshot(ctx, &SnapshotInput{ProjectID: "vid-1", FetchedAt: day, ViewCount: 100})
	if err != nil {
		t.Fatalf("ingest should survive dedup failure: %v", err)
	}
	if outcome != IngestInsertedUnchecked {
		t.Fatalf("expected inserted_unchecked, got %s", outcome)
	}

	// 检查失效期间宁可重复也不丢数据
	outcome, err = svc.IngestSnapshot(ctx, &SnapshotInput{ProjectID: "vid-1", FetchedAt: day.Add(time.Hour), ViewCount: 105})
	if err != nil {
		t.Fatalf("second unchecked ingest: %v", err)
	}
	if outcome != IngestInsertedUnchecked {
		t.Fatalf("expected inserted_unchecked, got %s", outcome)
	}

	count, err := snapshotRepo.CountByProjectID(ctx, "vid-1")
	if err != nil {
		t.Fatalf("count snapshots: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected both snapshots stored, got %d", count)
	}
}

// 调用方常传 context.Background（cron 任务），每个存储调用必须自带上限
func TestIngestSnapshotBoundsEveryStoreCall(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	recorder := &deadlineRecordingRepo{SnapshotRepo: repository.NewSnapshotRepository(gdb)}
	svc := NewIngestService(recorder, nil)

	outcome, err := svc.IngestSnapshot(context.Background(), &SnapshotInput{
		ProjectID: "vid-1",
		FetchedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		ViewCount: 100,
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if outcome != IngestInserted {
		t.Fatalf("expected inserted, got %s", outcome)
	}

	if !recorder.checkHadDeadline {
		t.Fatal("dedup check ran without a deadline")
	}
	if !recorder.insertHadDeadline {
		t.Fatal("insert ran without a deadline")
	}
}

func TestIngestSnapshotRejectsEmptyProject(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewIngestService(repository.NewSnapshotRepository(gdb), nil)

	if _, err := svc.IngestSnapshot(context.Background(), &SnapshotInput{}); err != ErrParamInvalid {
		t.Fatalf("expected ErrParamInvalid, got %v", err)
	}
}

func TestEngagementRate(t *testing.T) {
	cases := []struct {
		views, likes, comments int64
		want                   float64
	}{
		{1000, 40, 10, 0.05},
		{0, 40, 10, 0},
		{3, 1, 1, 0.6667},
	}
	for _, c := range cases {
		if got := engagementRate(c.views, c.likes, c.comments); got != c.want {
			t.Fatalf("engagementRate(%d,%d,%d) = %v, want %v", c.views, c.likes, c.comments, got, c.want)
		}
	}
}
