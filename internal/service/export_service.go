package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"prodtrack/backend/internal/dto"
	"prodtrack/backend/internal/model"
	"prodtrack/backend/internal/repository"
	"prodtrack/backend/pkg/dateutil"
	apperrors "prodtrack/backend/pkg/errors"
	"prodtrack/backend/pkg/metrics"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoRecords = apperrors.New(apperrors.ErrNotFound, "没有可导出的数据")
	ErrExportGenerate  = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 与查询接口使用同一组筛选条件，导出内容即报表页面当前所见
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - 单 Sheet「生产率」：人员 | 角色 | 日期 | 完成配方数 | 错误数 | 生产率(%)
type ExportService interface {
	// ExportProductivity 导出生产率报表为 Excel
	ExportProductivity(ctx context.Context, req *dto.ProductivityQueryRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo    *repository.Repository
	metrics *metrics.Manager
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, m *metrics.Manager, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, metrics: m, logger: logger, now: time.Now}
}

const exportSheetName = "生产率"

var exportHeaders = []string{"人员", "角色", "日期", "完成配方数", "错误数", "生产率(%)"}

// ═══════════════════════════════════════════════════════════
// ExportProductivity — 导出生产率报表
// ═══════════════════════════════════════════════════════════
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportProductivity(ctx context.Context, req *dto.ProductivityQueryRequest) (*bytes.Buffer, string, error) {
	records, err := listRecords(ctx, s.repo, req, s.logger)
	if err != nil {
		return nil, "", err
	}
	if len(records) == 0 {
		return nil, "", ErrExportNoRecords
	}

	f := excelize.NewFile()
	defer f.Close()

	// 默认 Sheet 重命名
	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		s.logger.Error("初始化 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerate
	}

	if err := s.writeRecords(f, records); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerate
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerate
	}

	s.metrics.ExportGenerated()
	filename := fmt.Sprintf("生产率报表_%s.xlsx", s.now().UTC().Format("20060102"))
	return buf, filename, nil
}

func (s *exportService) writeRecords(f *excelize.File, records []model.ProductivityRecord) error {
	sw, err := f.NewStreamWriter(exportSheetName)
	if err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	percentStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return err
	}

	widths := []float64{20, 14, 12, 12, 10, 12}
	for i, w := range widths {
		if err := sw.SetColWidth(i+1, i+1, w); err != nil {
			return err
		}
	}

	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, r := range records {
		name, role := "未知", ""
		if r.Person != nil {
			name, role = r.Person.Name, r.Person.Role
		}
		row := []interface{}{
			name,
			role,
			r.Date.UTC().Format(dateutil.DateLayout),
			r.RecipesCompleted,
			r.ErrorsDetected,
			excelize.Cell{StyleID: percentStyle, Value: r.ProductivityPercentage},
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(axis, row); err != nil {
			return err
		}
	}

	return sw.Flush()
}
