package repository

import (
	"Credify/internal/model"
	"context"
	"fmt"
	"testing"
	"time"

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

func setupRepoTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:repo-%d?mode=memory&cache=shared", time.Now().UnixNano())
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

func mustInsertSnapshot(t *testing.T, repo SnapshotRepo, projectID string, fetchedAt time.Time, views int64) *model.MetricSnapshot {
	t.Helper()
	snapshot := &model.MetricSnapshot{
		ProjectID: projectID,
		Platform:  "youtube",
		FetchedAt: fetchedAt,
		ViewCount: views,
	}
	if err := repo.Insert(context.Background(), snapshot); err != nil {
		t.Fatalf("insert snapshot: %v", err)
	}
	return snapshot
}

func TestSnapshotRepoHasSnapshotSince(t *testing.T) {
	gdb, cleanup := setupRepoTestDB(t)
	defer cleanup()

	repo := NewSnapshotRepository(gdb)
	ctx := context.Background()

	dayStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	mustInsertSnapshot(t, repo, "vid-1", dayStart.Add(8*time.Hour), 100)

	exists, err := repo.HasSnapshotSince(ctx, "vid-1", dayStart)
	if err != nil {
		t.Fatalf("has snapshot since: %v", err)
	}
	if !exists {
		t.Fatal("expected snapshot to exist for the day")
	}

	exists, err = repo.HasSnapshotSince(ctx, "vid-1", dayStart.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("has snapshot since: %v", err)
	}
	if exists {
		t.Fatal("expected no snapshot for the next day")
	}

	exists, err = repo.HasSnapshotSince(ctx, "vid-other", dayStart)
	if err != nil {
		t.Fatalf("has snapshot since: %v", err)
	}
	if exists {
		t.Fatal("expected no snapshot for an unknown project")
	}
}

func TestSnapshotRepoListByProjectIDsDescOrdering(t *testing.T) {
	gdb, cleanup := setupRepoTestDB(t)
	defer cleanup()

	repo := NewSnapshotRepository(gdb)
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	mustInsertSnapshot(t, repo, "vid-1", base, 100)
	mustInsertSnapshot(t, repo, "vid-1", base.Add(24*time.Hour), 150)
	// 同一时刻的并列记录，计数大的必须排在前面，哪怕它先插入（id 更小）
	bigger := mustInsertSnapshot(t, repo, "vid-2", base, 20)
	smaller := mustInsertSnapshot(t, repo, "vid-2", base, 10)

	snapshots, err := repo.ListByProjectIDsDesc(ctx, []string{"vid-1", "vid-2"})
	if err != nil {
		t.Fatalf("list snapshots: %v", err)
	}
	if len(snapshots) != 4 {
		t.Fatalf("expected 4 snapshots, got %d", len(snapshots))
	}
	if snapshots[0].ProjectID != "vid-1" || snapshots[0].ViewCount != 150 {
		t.Fatalf("expected newest vid-1 snapshot first, got %+v", snapshots[0])
	}

	var gotIDs []uint64
	for _, s := range snapshots {
		if s.ProjectID == "vid-2" {
			gotIDs = append(gotIDs, s.ID)
		}
	}
	if len(gotIDs) != 2 || gotIDs[0] != bigger.ID || gotIDs[1] != smaller.ID {
		t.Fatalf("expected tie broken by larger counters, got %v", gotIDs)
	}
}

func TestLatestMetricRepoPicksNewestPerProject(t *testing.T) {
	gdb, cleanup := setupRepoTestDB(t)
	defer cleanup()

	snapshotRepo := NewSnapshotRepository(gdb)
	latestRepo := NewLatestMetricRepository(gdb)
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	mustInsertSnapshot(t, snapshotRepo, "vid-1", base, 100)
	mustInsertSnapshot(t, snapshotRepo, "vid-1", base.Add(24*time.Hour), 150)
	// 计数大的先插入，确认胜者由计数而不是插入顺序决定
	tieWinner := mustInsertSnapshot(t, snapshotRepo, "vid-2", base, 20)
	mustInsertSnapshot(t, snapshotRepo, "vid-2", base, 10)

	metrics, err := latestRepo.ListByProjectIDs(ctx, []string{"vid-1", "vid-2"})
	if err != nil {
		t.Fatalf("list latest metrics: %v", err)
	}
	if len(metrics) != 2 {
		t.Fatalf("expected one row per project, got %d", len(metrics))
	}

	byProject := make(map[string]*model.LatestMetric)
	for _, m := range metrics {
		byProject[m.ProjectID] = m
	}

	if got := byProject["vid-1"]; got == nil || got.ViewCount != 150 {
		t.Fatalf("expected newest vid-1 snapshot, got %+v", got)
	}
	if got := byProject["vid-2"]; got == nil || got.ViewCount != tieWinner.ViewCount {
		t.Fatalf("expected tie broken by larger counters for vid-2, got %+v", got)
	}
	if byProject["vid-1"].FetchedAt == nil {
		t.Fatal("expected view projection to carry fetched_at")
	}
}

func TestCreatorMetricRepoUpsertReplacesTotals(t *testing.T) {
	gdb, cleanup := setupRepoTestDB(t)
	defer cleanup()

	repo := NewCreatorMetricRepository(gdb)
	ctx := context.Background()

	first := &model.CreatorMetric{
		UserID:         42,
		TotalViewCount: 100,
		ComputedAt:     time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	if err := repo.SaveOrUpdateMetric(ctx, first); err != nil {
		t.Fatalf("save metric: %v", err)
	}

	second := &model.CreatorMetric{
		UserID:            42,
		TotalViewCount:    250,
		AvgEngagementRate: 0.05,
		ComputedAt:        time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC),
	}
	if err := repo.SaveOrUpdateMetric(ctx, second); err != nil {
		t.Fatalf("upsert metric: %v", err)
	}

	got, err := repo.GetByUserID(ctx, 42)
	if err != nil {
		t.Fatalf("get metric: %v", err)
	}
	if got == nil {
		t.Fatal("expected metric row")
	}
	if got.TotalViewCount != 250 || got.AvgEngagementRate != 0.05 {
		t.Fatalf("expected replaced totals, got %+v", got)
	}
	if !got.ComputedAt.Equal(second.ComputedAt) {
		t.Fatalf("expected watermark advanced to %v, got %v", second.ComputedAt, got.ComputedAt)
	}

	var count int64
	gdb.Model(&model.CreatorMetric{}).Where("user_id = ?", 42).Count(&count)
	if count != 1 {
		t.Fatalf("expected single row per user, got %d", count)
	}
}

func TestCreatorMetricRepoGetMissingReturnsNil(t *testing.T) {
	gdb, cleanup := setupRepoTestDB(t)
	defer cleanup()

	repo := NewCreatorMetricRepository(gdb)
	got, err := repo.GetByUserID(context.Background(), 999)
	if err != nil {
		t.Fatalf("get metric: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing row, got %+v", got)
	}
}

func TestProjectCreditRepoDistinctProjects(t *testing.T) {
	gdb, cleanup := setupRepoTestDB(t)
	defer cleanup()

	repo := NewProjectCreditRepository(gdb)
	ctx := context.Background()

	credits := []*model.ProjectCredit{
		{UserID: 7, ProjectID: "vid-1", Role: "creator"},
		{UserID: 7, ProjectID: "vid-1", Role: "editor"},
		{UserID: 7, ProjectID: "vid-2", Role: "creator"},
		{UserID: 8, ProjectID: "vid-1", Role: "creator"},
	}
	for _, c := range credits {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("create credit: %v", err)
		}
	}

	// 重复署名静默忽略
	if err := repo.Create(ctx, &model.ProjectCredit{UserID: 7, ProjectID: "vid-1", Role: "creator"}); err != nil {
		t.Fatalf("duplicate credit should be ignored: %v", err)
	}

	ids, err := repo.ProjectIDsByUser(ctx, 7)
	if err != nil {
		t.Fatalf("project ids by user: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 distinct projects, got %v", ids)
	}

	userIDs, err := repo.UserIDsByProject(ctx, "vid-1")
	if err != nil {
		t.Fatalf("user ids by project: %v", err)
	}
	if len(userIDs) != 2 {
		t.Fatalf("expected 2 credited users, got %v", userIDs)
	}
}
