package httpapi

import (
	"encoding/json"
	"net/http"

	"carewatch/internal/domain"
)

// Result 统一响应信封，与前端 Axios 拦截器约定保持一致
// - code: 2000 成功
// - type: 'success' | 'error'
type Result[T any] struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

const (
	ResultSuccess = 2000
	ResultError   = -1
)

func Ok[T any](result T) Result[T] {
	return Result[T]{Code: ResultSuccess, Type: "success", Message: "ok", Result: result}
}

func Fail(message string) Result[any] {
	return Result[any]{Code: ResultError, Type: "error", Message: message, Result: nil}
}

// writeOK 写成功响应
func writeOK[T any](w http.ResponseWriter, result T) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Ok(result))
}

// writeError 按错误类型映射 HTTP 状态码
// ValidationError -> 400, ErrNotFound -> 404, 其它 -> 500
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case domain.IsValidation(err):
		status = http.StatusBadRequest
	case domain.IsNotFound(err):
		status = http.StatusNotFound
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Fail(err.Error()))
}
