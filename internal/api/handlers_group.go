package api

import "Credify/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	ProjectHandler       *handler.ProjectHandler
	CreatorMetricHandler *handler.CreatorMetricHandler
	IngestHandler        *handler.IngestHandler
}
