package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"prodtrack/backend/internal/dto"
	"prodtrack/backend/internal/model"
	"prodtrack/backend/internal/repository"
	"prodtrack/backend/pkg/dateutil"
	apperrors "prodtrack/backend/pkg/errors"
	"prodtrack/backend/pkg/metrics"
)

// ── 生产率模块业务错误 ──

var (
	ErrRecordFieldsRequired = apperrors.New(apperrors.ErrValidation, "所有字段（personId, date, recipesCompleted, errorsDetected）均为必填")
	ErrRecordNegativeCount  = apperrors.New(apperrors.ErrValidation, "recipesCompleted 与 errorsDetected 不能为负数")
	ErrRecordInvalidDate    = apperrors.New(apperrors.ErrValidation, "日期格式无效")
	ErrInvalidPersonIDs     = apperrors.New(apperrors.ErrValidation, "personIds 参数无效")
	ErrRecordExists         = apperrors.New(apperrors.ErrDuplicate, "该人员在此日期已有生产率记录")
)

// ProductivityService 生产率记录业务接口
type ProductivityService interface {
	// Submit 提交某人某日的生产率记录，生产率由服务端计算
	Submit(ctx context.Context, req *dto.SubmitProductivityRequest) (*dto.ProductivityRecordResponse, error)
	// Query 按日期范围与人员集合筛选记录，按日期降序返回
	Query(ctx context.Context, req *dto.ProductivityQueryRequest) ([]dto.ProductivityRecordResponse, error)
}

type productivityService struct {
	repo    *repository.Repository
	metrics *metrics.Manager
	logger  *zap.Logger
}

// NewProductivityService 创建 ProductivityService 实例
func NewProductivityService(repo *repository.Repository, m *metrics.Manager, logger *zap.Logger) ProductivityService {
	return &productivityService{repo: repo, metrics: m, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Submit — 提交生产率记录
// ═══════════════════════════════════════════════════════════
//
// 流程：
//   1. 必填字段与非负校验
//   2. 日期解析并截断为 UTC 零点（唯一约束按日历日生效）
//   3. 校验人员存在
//   4. 计算生产率并写入；(person, date) 冲突由数据库唯一约束拒绝

func (s *productivityService) Submit(ctx context.Context, req *dto.SubmitProductivityRequest) (*dto.ProductivityRecordResponse, error) {
	if req.PersonID == "" || req.Date == "" || req.RecipesCompleted == nil || req.ErrorsDetected == nil {
		return nil, ErrRecordFieldsRequired
	}

	recipes, errs := req.RecipesCompleted.Int(), req.ErrorsDetected.Int()
	if recipes < 0 || errs < 0 {
		return nil, ErrRecordNegativeCount
	}

	parsed, err := dateutil.Parse(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRecordInvalidDate, err.Error())
	}
	date := dateutil.NormalizeDay(parsed)

	// 非法 ID 不可能引用任何人员
	if _, err := uuid.Parse(req.PersonID); err != nil {
		return nil, ErrPersonNotFound
	}

	person, err := s.repo.Person.GetByID(ctx, req.PersonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		s.logger.Error("查询人员失败", zap.String("person_id", req.PersonID), zap.Error(err))
		return nil, err
	}

	record := &model.ProductivityRecord{
		PersonID:               person.PersonID,
		Date:                   date,
		RecipesCompleted:       recipes,
		ErrorsDetected:         errs,
		ProductivityPercentage: model.ProductivityPercentage(recipes, errs),
	}

	if err := s.repo.Productivity.Create(ctx, record); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			s.metrics.DuplicateRejected("record")
			return nil, ErrRecordExists
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return nil, ErrPersonNotFound
		}
		s.logger.Error("创建生产率记录失败",
			zap.String("person_id", person.PersonID),
			zap.Time("date", date),
			zap.Error(err),
		)
		return nil, err
	}
	record.Person = person

	s.metrics.RecordSubmitted()
	return toRecordResponse(record), nil
}

// ────────────────────── Query ──────────────────────

func (s *productivityService) Query(ctx context.Context, req *dto.ProductivityQueryRequest) ([]dto.ProductivityRecordResponse, error) {
	records, err := listRecords(ctx, s.repo, req, s.logger)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ProductivityRecordResponse, 0, len(records))
	for i := range records {
		result = append(result, *toRecordResponse(&records[i]))
	}

	s.metrics.ReportServed(len(result))
	return result, nil
}

// ── 内部辅助方法 ──

// listRecords 解析查询参数并查询记录，供查询与导出共用
func listRecords(ctx context.Context, repo *repository.Repository, req *dto.ProductivityQueryRequest, logger *zap.Logger) ([]model.ProductivityRecord, error) {
	filter, err := buildProductivityFilter(req)
	if err != nil {
		return nil, err
	}

	records, err := repo.Productivity.List(ctx, filter)
	if err != nil {
		logger.Error("查询生产率记录失败", zap.Error(err))
		return nil, err
	}
	return records, nil
}

// buildProductivityFilter 将外部查询参数转换为仓储层过滤条件
//   - startDate 取当日 UTC 零点
//   - endDate 扩展到当日 23:59:59.999，使整个结束日被包含
func buildProductivityFilter(req *dto.ProductivityQueryRequest) (*repository.ProductivityFilter, error) {
	filter := &repository.ProductivityFilter{}
	if req == nil {
		return filter, nil
	}

	if req.StartDate != "" {
		t, err := dateutil.Parse(req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: startDate: %s", ErrRecordInvalidDate, err.Error())
		}
		from := dateutil.NormalizeDay(t)
		filter.From = &from
	}

	if req.EndDate != "" {
		t, err := dateutil.Parse(req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: endDate: %s", ErrRecordInvalidDate, err.Error())
		}
		to := dateutil.EndOfDay(t)
		filter.To = &to
	}

	ids, err := dto.ParsePersonIDs(req.PersonIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPersonIDs, err.Error())
	}
	filter.PersonIDs = ids

	return filter, nil
}

func toRecordResponse(r *model.ProductivityRecord) *dto.ProductivityRecordResponse {
	resp := &dto.ProductivityRecordResponse{
		ID:                     r.RecordID,
		Date:                   formatTime(r.Date),
		RecipesCompleted:       r.RecipesCompleted,
		ErrorsDetected:         r.ErrorsDetected,
		ProductivityPercentage: r.ProductivityPercentage,
		CreatedAt:              formatTime(r.CreatedAt),
	}
	if r.Person != nil {
		resp.Person = &dto.PersonBrief{
			ID:   r.Person.PersonID,
			Name: r.Person.Name,
			Role: r.Person.Role,
		}
	} else {
		resp.Person = &dto.PersonBrief{ID: r.PersonID}
	}
	return resp
}
