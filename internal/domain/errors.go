package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound 目标记录不存在（todo/note/resident id 无效）
var ErrNotFound = errors.New("not found")

// ValidationError 输入校验失败（观测数据为空、时间戳乱序等）
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// NewValidationError 创建校验错误
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsNotFound 判断是否为"记录不存在"错误
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation 判断是否为校验错误
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
