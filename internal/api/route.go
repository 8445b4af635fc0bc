package api

import (
	"Credify/internal/api/middleware"
	"Credify/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		projectGroup := apiGroup.Group("/projects")
		{
			projectGroup.POST("", group.ProjectHandler.RegisterProject)
			projectGroup.GET("/creator/:user_id", group.ProjectHandler.ListCreatorProjects)
		}

		metricsGroup := apiGroup.Group("/metrics")
		{
			metricsGroup.GET("/creator/:user_id", group.CreatorMetricHandler.GetCreatorMetric)
		}

		ingestGroup := apiGroup.Group("/ingest")
		{
			ingestGroup.POST("/snapshot", group.IngestHandler.IngestSnapshot)
			ingestGroup.GET("/audit/:project_id", group.IngestHandler.ListIngestLogs)
		}
	}

	return r
}
