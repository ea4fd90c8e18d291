package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prodtrack/backend/config"
	"prodtrack/backend/internal/api/handler"
	"prodtrack/backend/internal/api/middleware"
	"prodtrack/backend/pkg/metrics"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时写接口不限流；m 为 nil 时不暴露 /metrics
func Setup(cfg *config.Config, h *handler.Handler, limiter middleware.RateLimiter, m *metrics.Manager, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	r.Use(middleware.Metrics(m))

	// ── 健康检查 ──
	r.GET("/", h.Health.Root)
	r.GET("/health", h.Health.Health)

	if m != nil && cfg.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// 写接口限流
	writeLimit := func(c *gin.Context) { c.Next() }
	if cfg.RateLimit.Enabled && limiter != nil {
		writeLimit = middleware.RateLimit(limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)
	}

	api := r.Group("/api")
	{
		// 人员模块
		persons := api.Group("/persons")
		{
			persons.POST("", writeLimit, h.Person.CreatePerson)
			persons.GET("", h.Person.ListPersons)
		}

		// 生产率模块
		productivity := api.Group("/productivity")
		{
			productivity.POST("", writeLimit, h.Productivity.SubmitRecord)
			productivity.GET("", h.Productivity.QueryRecords)
			productivity.GET("/export", h.Export.ExportProductivity)
		}
	}

	return r
}
