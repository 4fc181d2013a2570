package repository

import (
	"context"
	"time"

	"carewatch/internal/domain"
)

// TodosRepository 护理任务Repository接口
// 持久化当班任务台账，服务重启后回放到内存 Ledger
type TodosRepository interface {
	// InsertTodo 插入任务
	InsertTodo(ctx context.Context, shiftDate time.Time, todo *domain.TodoItem) error

	// UpdateTodo 更新任务（标题、完成状态、负责人、截止时间），不存在返回 ErrNotFound
	UpdateTodo(ctx context.Context, todo *domain.TodoItem) error

	// DeleteTodo 删除任务，不存在返回 ErrNotFound
	DeleteTodo(ctx context.Context, todoID string) error

	// ListTodos 返回指定班次日期的全部任务（按创建顺序）
	ListTodos(ctx context.Context, shiftDate time.Time) ([]domain.TodoItem, error)
}
