package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger 存储连通性检查
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler 连通性检查处理器
// 前端据此展示后端与数据库的连接状态
type HealthHandler struct {
	pinger Pinger
}

// NewHealthHandler 创建 HealthHandler
func NewHealthHandler(pinger Pinger) *HealthHandler {
	return &HealthHandler{pinger: pinger}
}

// Root 纯文本连通性确认
// GET /
func (h *HealthHandler) Root(c *gin.Context) {
	if err := h.ping(c.Request.Context()); err != nil {
		c.String(http.StatusServiceUnavailable, "生产率后端运行中，数据库不可用。")
		return
	}
	c.String(http.StatusOK, "生产率后端运行中，数据库已连接。")
}

// Health JSON 健康检查
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}

func (h *HealthHandler) ping(ctx context.Context) error {
	if h.pinger == nil {
		return nil
	}
	return h.pinger.Ping(ctx)
}
