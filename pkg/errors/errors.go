package errors

import (
	"errors"
	"fmt"
)

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")

// Kind 业务错误分类
type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindInvalidState  Kind = "invalid_state"
	KindInternal      Kind = "internal"
)

// AppError 结构化业务错误
// Code 为稳定的数字业务码（与响应体 code 字段一致），Field 指出校验失败的字段
type AppError struct {
	Kind    Kind
	Code    int
	Message string
	Field   string
	Meta    map[string]any
	Err     error
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap 支持 errors.Is / errors.As 穿透
func (e *AppError) Unwrap() error { return e.Err }

// Is 同 Kind 且（目标 Code 为 0 或 Code 相同）即视为匹配
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Code == 0 || t.Code == e.Code
}

// WithMeta 附加元数据（如 required_roles、min_length）
func (e *AppError) WithMeta(k string, v any) *AppError {
	if e.Meta == nil {
		e.Meta = map[string]any{}
	}
	e.Meta[k] = v
	return e
}

// ── 分类哨兵：errors.Is(err, ErrConflict) 判断分类 ──

var (
	ErrValidation    = &AppError{Kind: KindValidation}
	ErrAuthorization = &AppError{Kind: KindAuthorization}
	ErrNotFound      = &AppError{Kind: KindNotFound}
	ErrConflict      = &AppError{Kind: KindConflict}
	ErrInvalidState  = &AppError{Kind: KindInvalidState}
)

// ── 构造函数 ──

// Validation 参数校验失败，field 为违规字段名
func Validation(code int, field, message string) *AppError {
	return &AppError{Kind: KindValidation, Code: code, Field: field, Message: message}
}

// Authorization 角色或身份不满足
func Authorization(code int, message string) *AppError {
	return &AppError{Kind: KindAuthorization, Code: code, Message: message}
}

// NotFound 资源不存在
func NotFound(code int, message string) *AppError {
	return &AppError{Kind: KindNotFound, Code: code, Message: message}
}

// Conflict 并发冲突或重复申请
func Conflict(code int, message string) *AppError {
	return &AppError{Kind: KindConflict, Code: code, Message: message}
}

// InvalidState 当前状态不允许该操作
func InvalidState(code int, message string) *AppError {
	return &AppError{Kind: KindInvalidState, Code: code, Message: message}
}

// Wrap 包装底层错误
func Wrap(err error, kind Kind, code int, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message, Err: err}
}

// KindOf 提取错误分类，非 AppError 一律视为 internal
func KindOf(err error) Kind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// As 提取 AppError
func As(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
