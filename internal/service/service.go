package service

import (
	"time"

	"go.uber.org/zap"

	"prodtrack/backend/internal/repository"
	"prodtrack/backend/pkg/metrics"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Person       PersonService
	Productivity ProductivityService
	Export       ExportService
}

// NewService 创建 Service 聚合
// m 可以为 nil，此时不记录业务指标
func NewService(repo *repository.Repository, m *metrics.Manager, logger *zap.Logger) *Service {
	return &Service{
		Person:       NewPersonService(repo, m, logger),
		Productivity: NewProductivityService(repo, m, logger),
		Export:       NewExportService(repo, m, logger),
	}
}

// timeLayout 响应中的时间格式（UTC，毫秒精度）
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
