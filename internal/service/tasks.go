package service

import (
	"context"
	"fmt"
	"time"

	"carewatch/internal/domain"

	"go.uber.org/zap"
)

// AddTodo 添加护理任务
func (s *MonitorService) AddTodo(ctx context.Context, item domain.TodoItem) (domain.TodoItem, error) {
	if item.Title == "" {
		return domain.TodoItem{}, domain.NewValidationError("todo title is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := s.ledger.Add(item)

	if s.todosRepo != nil {
		if err := s.todosRepo.InsertTodo(ctx, shiftDate(time.Now()), &created); err != nil {
			s.logger.Error("Failed to persist todo",
				zap.String("todo_id", created.TodoID),
				zap.Error(err),
			)
			return created, fmt.Errorf("todo added but not persisted: %w", err)
		}
	}

	return created, nil
}

// ToggleTodo 翻转任务完成状态
func (s *MonitorService) ToggleTodo(ctx context.Context, todoID string) (domain.TodoItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	toggled, err := s.ledger.Toggle(todoID)
	if err != nil {
		return domain.TodoItem{}, err
	}

	s.persistTodoUpdate(ctx, &toggled)
	return toggled, nil
}

// UpdateTodo 部分更新任务字段
func (s *MonitorService) UpdateTodo(ctx context.Context, todoID string, update domain.TodoUpdate) (domain.TodoItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.ledger.Update(todoID, update)
	if err != nil {
		return domain.TodoItem{}, err
	}

	s.persistTodoUpdate(ctx, &updated)
	return updated, nil
}

// RemoveTodo 删除任务
func (s *MonitorService) RemoveTodo(ctx context.Context, todoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ledger.Remove(todoID); err != nil {
		return err
	}

	if s.todosRepo != nil {
		if err := s.todosRepo.DeleteTodo(ctx, todoID); err != nil && !domain.IsNotFound(err) {
			s.logger.Error("Failed to delete persisted todo",
				zap.String("todo_id", todoID),
				zap.Error(err),
			)
		}
	}

	return nil
}

// Todos 返回当班全部任务
func (s *MonitorService) Todos() []domain.TodoItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Items()
}

// persistTodoUpdate 任务变更写穿到持久层（失败记录日志，内存状态已生效）
func (s *MonitorService) persistTodoUpdate(ctx context.Context, todo *domain.TodoItem) {
	if s.todosRepo == nil {
		return
	}
	if err := s.todosRepo.UpdateTodo(ctx, todo); err != nil {
		s.logger.Error("Failed to persist todo update",
			zap.String("todo_id", todo.TodoID),
			zap.Error(err),
		)
	}
}

// AppendNote 追加交接班备注
func (s *MonitorService) AppendNote(ctx context.Context, priority, content, author string) (domain.HandoverNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, err := s.handover.Append(priority, content, author)
	if err != nil {
		return domain.HandoverNote{}, err
	}

	if s.notesRepo != nil {
		if err := s.notesRepo.InsertNote(ctx, &note); err != nil {
			s.logger.Error("Failed to persist handover note",
				zap.String("note_id", note.NoteID),
				zap.Error(err),
			)
			return note, fmt.Errorf("note appended but not persisted: %w", err)
		}
	}

	if note.Priority == domain.PriorityUrgent {
		s.logger.Info("Urgent handover note appended",
			zap.String("note_id", note.NoteID),
			zap.String("author", note.Author),
		)
	}

	return note, nil
}

// Notes 返回交接班备注，urgentOnly 为 true 时只返回紧急备注
func (s *MonitorService) Notes(urgentOnly bool) []domain.HandoverNote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if urgentOnly {
		return s.handover.Urgent()
	}
	return s.handover.All()
}
