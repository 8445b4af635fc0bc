package handler

import (
	"Credify/internal/api/dto"
	"Credify/internal/pkg/mongo"
	"Credify/internal/pkg/response"
	"Credify/internal/repository"
	"Credify/internal/service"

	"github.com/gin-gonic/gin"
)

// 审计查询单页上限
const auditPageSize = 50

type IngestHandler struct {
	ingestSvc  service.IngestService
	creditRepo repository.ProjectCreditRepo
	auditRepo  mongo.IngestLogRepo
}

func NewIngestHandler(ingestSvc service.IngestService, creditRepo repository.ProjectCreditRepo, auditRepo mongo.IngestLogRepo) *IngestHandler {
	return &IngestHandler{
		ingestSvc:  ingestSvc,
		creditRepo: creditRepo,
		auditRepo:  auditRepo,
	}
}

// IngestSnapshot 外部抓取器推送一条指标快照
func (s *IngestHandler) IngestSnapshot(c *gin.Context) {
	var req dto.IngestSnapshotDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	input := &service.SnapshotInput{
		ProjectID:    req.ProjectID,
		Platform:     req.Platform,
		ViewCount:    req.ViewCount,
		LikeCount:    req.LikeCount,
		CommentCount: req.CommentCount,
		ShareCount:   req.ShareCount,
	}
	if req.FetchedAt != nil {
		input.FetchedAt = *req.FetchedAt
	}

	outcome, err := s.ingestSvc.IngestSnapshot(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	if outcome != service.IngestSkipped {
		service.MarkCreatorsDirty(c.Request.Context(), s.creditRepo, req.ProjectID)
	}

	response.Success(c, dto.IngestResultDTO{
		ProjectID: req.ProjectID,
		Outcome:   string(outcome),
	})
}

// ListIngestLogs 指定作品最近的摄入判定记录，用于排查 skipped / inserted_unchecked
func (s *IngestHandler) ListIngestLogs(c *gin.Context) {
	projectID := c.Param("project_id")
	if projectID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	logs, err := s.auditRepo.ListByProject(c.Request.Context(), projectID, auditPageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, logs)
}
