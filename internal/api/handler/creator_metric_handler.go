package handler

import (
	"Credify/internal/pkg/response"
	"Credify/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CreatorMetricHandler struct {
	creatorMetricSvc service.CreatorMetricService
}

func NewCreatorMetricHandler(creatorMetricSvc service.CreatorMetricService) *CreatorMetricHandler {
	return &CreatorMetricHandler{
		creatorMetricSvc: creatorMetricSvc,
	}
}

func (s *CreatorMetricHandler) GetCreatorMetric(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	metric, err := s.creatorMetricSvc.GetCreatorMetric(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, metric)
}
