package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"prodtrack/backend/internal/dto"
	"prodtrack/backend/internal/model"
	"prodtrack/backend/internal/repository"
	apperrors "prodtrack/backend/pkg/errors"
	"prodtrack/backend/pkg/metrics"
)

// ── 人员模块业务错误 ──

var (
	ErrPersonNameRequired = apperrors.New(apperrors.ErrValidation, "人员名称不能为空")
	ErrPersonNameExists   = apperrors.New(apperrors.ErrDuplicate, "已存在同名人员")
	ErrPersonNotFound     = apperrors.New(apperrors.ErrNotFound, "指定的人员不存在")
)

// PersonService 人员业务接口
type PersonService interface {
	Create(ctx context.Context, req *dto.CreatePersonRequest) (*dto.PersonResponse, error)
	List(ctx context.Context) ([]dto.PersonResponse, error)
}

type personService struct {
	repo    *repository.Repository
	metrics *metrics.Manager
	logger  *zap.Logger
}

// NewPersonService 创建 PersonService 实例
func NewPersonService(repo *repository.Repository, m *metrics.Manager, logger *zap.Logger) PersonService {
	return &personService{repo: repo, metrics: m, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create 名称唯一性由数据库唯一约束保证，并发创建同名人员时后写入者收到 ErrPersonNameExists
func (s *personService) Create(ctx context.Context, req *dto.CreatePersonRequest) (*dto.PersonResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrPersonNameRequired
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = model.DefaultPersonRole
	}

	person := &model.Person{
		Name: name,
		Role: role,
	}

	if err := s.repo.Person.Create(ctx, person); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.metrics.DuplicateRejected("person")
			return nil, ErrPersonNameExists
		}
		s.logger.Error("创建人员失败", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	s.metrics.PersonCreated()
	return toPersonResponse(person), nil
}

// ────────────────────── List ──────────────────────

func (s *personService) List(ctx context.Context) ([]dto.PersonResponse, error) {
	persons, err := s.repo.Person.List(ctx)
	if err != nil {
		s.logger.Error("列出人员失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.PersonResponse, 0, len(persons))
	for i := range persons {
		result = append(result, *toPersonResponse(&persons[i]))
	}

	return result, nil
}

// ── 内部辅助方法 ──

func toPersonResponse(p *model.Person) *dto.PersonResponse {
	return &dto.PersonResponse{
		ID:        p.PersonID,
		Name:      p.Name,
		Role:      p.Role,
		CreatedAt: formatTime(p.CreatedAt),
	}
}
