package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"carewatch/internal/domain"
)

// PostgresTodosRepository 护理任务Repository实现
type PostgresTodosRepository struct {
	db *sql.DB
}

// NewPostgresTodosRepository 创建任务Repository
func NewPostgresTodosRepository(db *sql.DB) *PostgresTodosRepository {
	return &PostgresTodosRepository{db: db}
}

// 确保实现了接口
var _ TodosRepository = (*PostgresTodosRepository)(nil)

// InsertTodo 插入任务
func (r *PostgresTodosRepository) InsertTodo(ctx context.Context, shiftDate time.Time, todo *domain.TodoItem) error {
	if todo.TodoID == "" {
		return domain.NewValidationError("todo_id is required")
	}

	query := `
		INSERT INTO todos (
			todo_id, shift_date, title, completed, assignee, due_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		todo.TodoID,
		shiftDate,
		todo.Title,
		todo.Completed,
		nullString(todo.Assignee),
		todo.DueAt,
		todo.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}

	return nil
}

// UpdateTodo 更新任务字段
func (r *PostgresTodosRepository) UpdateTodo(ctx context.Context, todo *domain.TodoItem) error {
	query := `
		UPDATE todos
		SET title = $2, completed = $3, assignee = $4, due_at = $5
		WHERE todo_id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		todo.TodoID,
		todo.Title,
		todo.Completed,
		nullString(todo.Assignee),
		todo.DueAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("todo %s: %w", todo.TodoID, domain.ErrNotFound)
	}

	return nil
}

// DeleteTodo 删除任务
func (r *PostgresTodosRepository) DeleteTodo(ctx context.Context, todoID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE todo_id = $1`, todoID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("todo %s: %w", todoID, domain.ErrNotFound)
	}

	return nil
}

// ListTodos 返回班次日期的任务（按创建顺序）
func (r *PostgresTodosRepository) ListTodos(ctx context.Context, shiftDate time.Time) ([]domain.TodoItem, error) {
	query := `
		SELECT
			todo_id::text, title, completed,
			COALESCE(assignee, '') as assignee,
			due_at, created_at
		FROM todos
		WHERE shift_date = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, shiftDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	var todos []domain.TodoItem
	for rows.Next() {
		var todo domain.TodoItem
		var dueAt sql.NullTime
		if err := rows.Scan(
			&todo.TodoID,
			&todo.Title,
			&todo.Completed,
			&todo.Assignee,
			&dueAt,
			&todo.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		if dueAt.Valid {
			todo.DueAt = &dueAt.Time
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return todos, nil
}

// nullString 空字符串写入 NULL
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
