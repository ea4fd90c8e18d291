package handler

import (
	"github.com/gin-gonic/gin"

	"prodtrack/backend/internal/dto"
	"prodtrack/backend/internal/service"
	"prodtrack/backend/pkg/response"
)

// PersonHandler 人员模块 HTTP 处理器
type PersonHandler struct {
	personSvc service.PersonService
}

// NewPersonHandler 创建 PersonHandler
func NewPersonHandler(personSvc service.PersonService) *PersonHandler {
	return &PersonHandler{personSvc: personSvc}
}

// CreatePerson 创建人员
// POST /api/persons
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	var req dto.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, service.ErrPersonNameRequired.Message())
		return
	}

	person, err := h.personSvc.Create(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, person)
}

// ListPersons 获取全部人员
// GET /api/persons
func (h *PersonHandler) ListPersons(c *gin.Context) {
	persons, err := h.personSvc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.OK(c, persons)
}
