package service

import (
	"Credify/internal/api/dto"
	"Credify/internal/model"
	"Credify/internal/pkg/youtube"
	"Credify/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"sort"

	"github.com/jinzhu/copier"
)

const defaultCreditRole = "creator"

type ProjectService interface {
	// RegisterProject 通过视频链接登记作品：抓取元数据与当前统计量，
	// 写入作品与署名关系，并经摄入守卫落一条首帧快照
	RegisterProject(ctx context.Context, userID uint64, rawURL, role string) (*dto.ProjectDTO, error)
	// ListCreatorProjects 创作者名下作品列表，带角色与最新指标，按播放量降序
	ListCreatorProjects(ctx context.Context, userID uint64) ([]*dto.CreatorProjectDTO, error)
}

type projectServiceImpl struct {
	projectRepo     repository.ProjectRepo
	creditRepo      repository.ProjectCreditRepo
	ingestSvc       IngestService
	latestMetricSvc LatestMetricService
	fetcher         youtube.Fetcher
}

func NewProjectService(
	projectRepo repository.ProjectRepo,
	creditRepo repository.ProjectCreditRepo,
	ingestSvc IngestService,
	latestMetricSvc LatestMetricService,
	fetcher youtube.Fetcher,
) ProjectService {
	return &projectServiceImpl{
		projectRepo:     projectRepo,
		creditRepo:      creditRepo,
		ingestSvc:       ingestSvc,
		latestMetricSvc: latestMetricSvc,
		fetcher:         fetcher,
	}
}

func (s *projectServiceImpl) RegisterProject(ctx context.Context, userID uint64, rawURL, role string) (*dto.ProjectDTO, error) {
	videoID := youtube.ExtractVideoID(rawURL)
	if videoID == "" {
		return nil, ErrVideoURLInvalid
	}

	video, err := s.fetcher.FetchVideo(ctx, videoID)
	if err != nil {
		if errors.Is(err, youtube.ErrVideoNotFound) {
			return nil, ErrVideoNotFound
		}
		log.ErrorContext(ctx, "fetch video from youtube failed", "video_id", videoID, "err", err)
		return nil, ErrSourceUnavailable
	}

	project := &model.Project{
		ID:           video.ID,
		Title:        video.Title,
		Description:  video.Description,
		Link:         rawURL,
		Platform:     "youtube",
		Channel:      video.Channel,
		PostedAt:     video.PostedAt,
		ThumbnailURL: video.ThumbnailURL,
	}
	if err = s.projectRepo.SaveOrUpdate(ctx, project); err != nil {
		return nil, err
	}

	if role == "" {
		role = defaultCreditRole
	}
	credit := &model.ProjectCredit{
		UserID:    userID,
		ProjectID: video.ID,
		Role:      role,
	}
	if err = s.creditRepo.Create(ctx, credit); err != nil {
		return nil, err
	}

	outcome, err := s.ingestSvc.IngestSnapshot(ctx, videoToSnapshot(video))
	if err != nil {
		// 首帧快照失败不影响登记本身，下一轮抓取任务会补上
		log.WarnContext(ctx, "ingest first snapshot failed", "project_id", video.ID, "err", err)
	} else {
		log.InfoContext(ctx, "project registered", "project_id", video.ID, "ingest_outcome", outcome)
	}

	var result dto.ProjectDTO
	if err = copier.Copy(&result, project); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *projectServiceImpl) ListCreatorProjects(ctx context.Context, userID uint64) ([]*dto.CreatorProjectDTO, error) {
	credits, err := s.creditRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(credits) == 0 {
		return []*dto.CreatorProjectDTO{}, nil
	}

	// 同一作品多个角色合并为角色列表
	rolesByProject := make(map[string][]string)
	projectIDs := make([]string, 0, len(credits))
	for _, credit := range credits {
		if _, ok := rolesByProject[credit.ProjectID]; !ok {
			projectIDs = append(projectIDs, credit.ProjectID)
		}
		rolesByProject[credit.ProjectID] = append(rolesByProject[credit.ProjectID], credit.Role)
	}

	projects, err := s.projectRepo.ListByIDs(ctx, projectIDs)
	if err != nil {
		return nil, err
	}

	latestByProject := make(map[string]*model.LatestMetric)
	if metrics, err := s.latestMetricSvc.GetLatestMetrics(ctx, projectIDs); err == nil {
		for _, m := range metrics {
			latestByProject[m.ProjectID] = m
		}
	} else {
		log.WarnContext(ctx, "load latest metrics for project list failed", "user_id", userID, "err", err)
	}

	result := make([]*dto.CreatorProjectDTO, 0, len(projects))
	for _, project := range projects {
		item := &dto.CreatorProjectDTO{Roles: rolesByProject[project.ID]}
		if err = copier.Copy(&item.ProjectDTO, project); err != nil {
			return nil, err
		}
		if m, ok := latestByProject[project.ID]; ok {
			item.ViewCount = m.ViewCount
			item.LikeCount = m.LikeCount
			item.CommentCount = m.CommentCount
		}
		result = append(result, item)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ViewCount > result[j].ViewCount
	})

	return result, nil
}

func videoToSnapshot(video *youtube.Video) *SnapshotInput {
	return &SnapshotInput{
		ProjectID:    video.ID,
		Platform:     "youtube",
		ViewCount:    video.ViewCount,
		LikeCount:    video.LikeCount,
		CommentCount: video.CommentCount,
	}
}
