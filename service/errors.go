package service

import (
	"errors"

	"dashboard/logger"
)

// ErrNotFound 按 ID 查询无结果
var ErrNotFound = errors.New("record not found")

// Error 面向用户的领域错误：Message 为通用提示，Err 保留底层原因供日志与 errors.Is 使用
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// dbError 记录底层错误并返回通用领域错误
func dbError(op, message string, err error) error {
	logger.WithComponent("service").
		WithError(err).
		WithField("op", op).
		Error("Database Error")
	return &Error{Message: message, Err: err}
}
