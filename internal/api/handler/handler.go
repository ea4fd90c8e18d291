package handler

import "prodtrack/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Person       *PersonHandler
	Productivity *ProductivityHandler
	Export       *ExportHandler
	Health       *HealthHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, pinger Pinger) *Handler {
	return &Handler{
		Person:       NewPersonHandler(svc.Person),
		Productivity: NewProductivityHandler(svc.Productivity),
		Export:       NewExportHandler(svc.Export),
		Health:       NewHealthHandler(pinger),
	}
}
