package errs

import (
	"errors"
	"fmt"
)

// ==================== 业务错误类型 ====================

// 服务层只返回这些类型，由 controller 统一映射 HTTP 状态码

// NotFound 资源不存在
type NotFound struct {
	Resource string
	ID       string
}

func (e *NotFound) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// Conflict 唯一性冲突（重复 slug/name/offering 等）
type Conflict struct {
	Message string
}

func (e *Conflict) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "conflict"
}

// Validation 参数/业务校验失败
type Validation struct {
	Message string
}

func (e *Validation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// Unauthorized 认证失败
type Unauthorized struct {
	Message string
}

func (e *Unauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// Forbidden 已认证但无权限
type Forbidden struct {
	Message string
}

func (e *Forbidden) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "forbidden"
}

// ==================== 构造与判定辅助 ====================

func NotFoundf(resource, id string) error { return &NotFound{Resource: resource, ID: id} }

func Conflictf(format string, args ...interface{}) error {
	return &Conflict{Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...interface{}) error {
	return &Validation{Message: fmt.Sprintf(format, args...)}
}

func Unauthorizedf(format string, args ...interface{}) error {
	return &Unauthorized{Message: fmt.Sprintf(format, args...)}
}

func Forbiddenf(format string, args ...interface{}) error {
	return &Forbidden{Message: fmt.Sprintf(format, args...)}
}

// HTTPStatus 错误类型到 HTTP 状态码的映射
func HTTPStatus(err error) int {
	var nf *NotFound
	var cf *Conflict
	var vd *Validation
	var ua *Unauthorized
	var fb *Forbidden
	switch {
	case errors.As(err, &nf):
		return 404
	case errors.As(err, &cf):
		return 409
	case errors.As(err, &vd):
		return 400
	case errors.As(err, &ua):
		return 401
	case errors.As(err, &fb):
		return 403
	default:
		return 500
	}
}
