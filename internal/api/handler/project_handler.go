package handler

import (
	"Credify/internal/api/dto"
	"Credify/internal/pkg/response"
	"Credify/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectSvc service.ProjectService
}

func NewProjectHandler(projectSvc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectSvc: projectSvc,
	}
}

func (s *ProjectHandler) RegisterProject(c *gin.Context) {
	var req dto.RegisterProjectDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	project, err := s.projectSvc.RegisterProject(c.Request.Context(), req.UserID, req.URL, req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

func (s *ProjectHandler) ListCreatorProjects(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	projects, err := s.projectSvc.ListCreatorProjects(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, projects)
}
