// Package errors 定义业务错误分类。
//
// 三类业务错误以哨兵值表示：ErrValidation、ErrNotFound、ErrDuplicate。
// 各模块用 New 构造带用户可读信息的具体错误，errors.Is 既能匹配具体错误，
// 也能匹配其所属分类。未归类的错误一律视为内部错误。
package errors

import (
	"errors"
	"fmt"
)

// 业务错误分类
var (
	ErrValidation = errors.New("参数校验失败")
	ErrNotFound   = errors.New("资源不存在")
	ErrDuplicate  = errors.New("资源已存在")
)

// Error 带分类的业务错误
type Error struct {
	kind    error
	message string
}

// New 创建属于 kind 分类的业务错误
func New(kind error, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Validationf 创建带格式化描述的校验错误
func Validationf(format string, args ...interface{}) *Error {
	return New(ErrValidation, fmt.Sprintf(format, args...))
}

func (e *Error) Error() string { return e.message }

// Unwrap 返回错误分类
func (e *Error) Unwrap() error { return e.kind }

// Message 返回可直接展示给调用方的描述
func (e *Error) Message() string { return e.message }

// MessageOf 提取业务错误描述，非业务错误返回 fallback
func MessageOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.message
	}
	return fallback
}

// IsValidation 判断是否为校验错误
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsNotFound 判断是否为资源不存在错误
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsDuplicate 判断是否为唯一性冲突错误
func IsDuplicate(err error) bool { return errors.Is(err, ErrDuplicate) }
