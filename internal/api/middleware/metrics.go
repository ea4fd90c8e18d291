package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"prodtrack/backend/pkg/metrics"
)

// Metrics 记录请求计数与耗时
// 路由标签使用注册模板（c.FullPath），未匹配路由统一记为 "unmatched" 以控制基数
func Metrics(m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
