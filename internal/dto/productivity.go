package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ── 生产率模块 DTO ──

// SubmitProductivityRequest 提交生产率记录请求
// 计数字段使用指针区分"未提供"与"0"：0 合法，缺省不合法
type SubmitProductivityRequest struct {
	PersonID         string `json:"personId"         binding:"required"`
	Date             string `json:"date"             binding:"required"`
	RecipesCompleted *Count `json:"recipesCompleted" binding:"required,min=0"`
	ErrorsDetected   *Count `json:"errorsDetected"   binding:"required,min=0"`
}

// ProductivityQueryRequest 生产率记录查询参数，全部可选
type ProductivityQueryRequest struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	PersonIDs string `form:"personIds"` // 逗号分隔
}

// ProductivityRecordResponse 生产率记录响应
type ProductivityRecordResponse struct {
	ID                     string       `json:"id"`
	Person                 *PersonBrief `json:"person"`
	Date                   string       `json:"date"`
	RecipesCompleted       int          `json:"recipesCompleted"`
	ErrorsDetected         int          `json:"errorsDetected"`
	ProductivityPercentage float64      `json:"productivityPercentage"`
	CreatedAt              string       `json:"createdAt"`
}

// Count 非负整数计数
// 兼容 JSON 数字（含 18.0 这类整值浮点）与数字字符串（"18"）
type Count int

// UnmarshalJSON 实现 json.Unmarshaler
func (c *Count) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	if raw == "" {
		return fmt.Errorf("计数不能为空")
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("计数 %q 不是有效数字", raw)
	}
	if f != math.Trunc(f) {
		return fmt.Errorf("计数 %q 必须为整数", raw)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return fmt.Errorf("计数 %q 超出范围", raw)
	}
	*c = Count(f)
	return nil
}

// Int 返回整数值
func (c *Count) Int() int {
	if c == nil {
		return 0
	}
	return int(*c)
}

// ParsePersonIDs 解析逗号分隔的人员 ID 列表为去重集合
// 每个元素去除首尾空白；空元素或非法 UUID 返回错误；空串返回 nil
func ParsePersonIDs(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("personIds 第 %d 项为空", i+1)
		}
		parsed, err := uuid.Parse(p)
		if err != nil {
			return nil, fmt.Errorf("personIds 第 %d 项 %q 不是有效 ID", i+1, p)
		}
		id := parsed.String()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
