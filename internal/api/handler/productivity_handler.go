package handler

import (
	"github.com/gin-gonic/gin"

	"prodtrack/backend/internal/dto"
	"prodtrack/backend/internal/service"
	"prodtrack/backend/pkg/response"
)

// ProductivityHandler 生产率模块 HTTP 处理器
type ProductivityHandler struct {
	productivitySvc service.ProductivityService
}

// NewProductivityHandler 创建 ProductivityHandler
func NewProductivityHandler(productivitySvc service.ProductivityService) *ProductivityHandler {
	return &ProductivityHandler{productivitySvc: productivitySvc}
}

// SubmitRecord 提交生产率记录
// POST /api/productivity
func (h *ProductivityHandler) SubmitRecord(c *gin.Context) {
	var req dto.SubmitProductivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, service.ErrRecordFieldsRequired.Message())
		return
	}

	record, err := h.productivitySvc.Submit(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, record)
}

// QueryRecords 按条件查询生产率记录
// GET /api/productivity?startDate=2023-01-01&endDate=2023-01-31&personIds=id1,id2
func (h *ProductivityHandler) QueryRecords(c *gin.Context) {
	var req dto.ProductivityQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeBindError(c, err, "查询参数无效")
		return
	}

	records, err := h.productivitySvc.Query(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.OK(c, records)
}
