package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"prodtrack/backend/internal/service"
	apperrors "prodtrack/backend/pkg/errors"
	"prodtrack/backend/pkg/response"
)

// ── 业务码 ──

const (
	codeInvalidParams     = 10001
	codePersonNotFound    = 20001
	codePersonNameExists  = 20002
	codeRecordExists      = 21001
	codeRecordInvalidDate = 21002
	codeInvalidPersonIDs  = 21003
	codeExportNoRecords   = 21101
	codeGenericNotFound   = 40400
	codeGenericDuplicate  = 40900
)

// writeServiceError 统一将 Service 层错误映射为 HTTP 状态码与业务码
// 未归类的错误一律返回 500，具体原因已由 Service 层记录日志
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPersonNameExists):
		response.Conflict(c, codePersonNameExists, service.ErrPersonNameExists.Message())
	case errors.Is(err, service.ErrRecordExists):
		response.Conflict(c, codeRecordExists, service.ErrRecordExists.Message())
	case errors.Is(err, service.ErrPersonNotFound):
		response.NotFound(c, codePersonNotFound, service.ErrPersonNotFound.Message())
	case errors.Is(err, service.ErrExportNoRecords):
		response.NotFound(c, codeExportNoRecords, service.ErrExportNoRecords.Message())
	case errors.Is(err, service.ErrRecordInvalidDate):
		response.BadRequest(c, codeRecordInvalidDate, err.Error())
	case errors.Is(err, service.ErrInvalidPersonIDs):
		response.BadRequest(c, codeInvalidPersonIDs, err.Error())
	case apperrors.IsValidation(err):
		response.BadRequest(c, codeInvalidParams, err.Error())
	case apperrors.IsNotFound(err):
		response.NotFound(c, codeGenericNotFound, err.Error())
	case apperrors.IsDuplicate(err):
		response.Conflict(c, codeGenericDuplicate, err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}

// writeBindError 请求体 / 查询参数绑定失败
func writeBindError(c *gin.Context, err error, message string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
		return
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, codeInvalidParams, message, err.Error())
}
