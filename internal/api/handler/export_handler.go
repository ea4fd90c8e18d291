package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"prodtrack/backend/internal/dto"
	"prodtrack/backend/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportProductivity 导出生产率报表
// GET /api/productivity/export?startDate=&endDate=&personIds=
func (h *ExportHandler) ExportProductivity(c *gin.Context) {
	var req dto.ProductivityQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeBindError(c, err, "查询参数无效")
		return
	}

	buf, filename, err := h.exportSvc.ExportProductivity(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.PathEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
