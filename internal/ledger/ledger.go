package ledger

import (
	"fmt"
	"math"
	"time"

	"carewatch/internal/domain"

	"github.com/google/uuid"
)

// Ledger 护理任务台账（当班有效期内的任务及完成状态）
// 所有统计读操作是基于当前台账状态的纯投影，不缓存
// 写操作由调用方串行化，台账内部不加锁
type Ledger struct {
	items []domain.TodoItem
	now   func() time.Time
	newID func() string
}

// NewLedger 创建任务台账
func NewLedger() *Ledger {
	return &Ledger{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Add 添加任务，分配新 id 并追加
// 除非显式指定，新任务 completed 为 false
func (l *Ledger) Add(item domain.TodoItem) domain.TodoItem {
	item.TodoID = l.newID()
	item.CreatedAt = l.now()
	l.items = append(l.items, item)
	return item
}

// Toggle 翻转任务完成状态，id 不存在返回 ErrNotFound
func (l *Ledger) Toggle(todoID string) (domain.TodoItem, error) {
	for i := range l.items {
		if l.items[i].TodoID == todoID {
			l.items[i].Completed = !l.items[i].Completed
			return l.items[i], nil
		}
	}
	return domain.TodoItem{}, fmt.Errorf("toggle todo %s: %w", todoID, domain.ErrNotFound)
}

// Update 合并部分更新字段（nil 字段不修改），completed 也可以通过此路径变更
func (l *Ledger) Update(todoID string, update domain.TodoUpdate) (domain.TodoItem, error) {
	for i := range l.items {
		if l.items[i].TodoID != todoID {
			continue
		}
		if update.Title != nil {
			l.items[i].Title = *update.Title
		}
		if update.Completed != nil {
			l.items[i].Completed = *update.Completed
		}
		if update.Assignee != nil {
			l.items[i].Assignee = *update.Assignee
		}
		if update.DueAt != nil {
			l.items[i].DueAt = update.DueAt
		}
		return l.items[i], nil
	}
	return domain.TodoItem{}, fmt.Errorf("update todo %s: %w", todoID, domain.ErrNotFound)
}

// Remove 删除任务，id 不存在返回 ErrNotFound 且台账不变
func (l *Ledger) Remove(todoID string) error {
	for i := range l.items {
		if l.items[i].TodoID == todoID {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove todo %s: %w", todoID, domain.ErrNotFound)
}

// Items 返回全部任务快照
func (l *Ledger) Items() []domain.TodoItem {
	out := make([]domain.TodoItem, len(l.items))
	copy(out, l.items)
	return out
}

// Completed 返回已完成任务
func (l *Ledger) Completed() []domain.TodoItem {
	return l.partition(true)
}

// Pending 返回未完成任务
func (l *Ledger) Pending() []domain.TodoItem {
	return l.partition(false)
}

func (l *Ledger) partition(completed bool) []domain.TodoItem {
	var out []domain.TodoItem
	for _, item := range l.items {
		if item.Completed == completed {
			out = append(out, item)
		}
	}
	return out
}

// CompletionRate 完成率（0-100 取整），空台账为 0，避免除零
func (l *Ledger) CompletionRate() int {
	if len(l.items) == 0 {
		return 0
	}
	completed := 0
	for _, item := range l.items {
		if item.Completed {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(l.items))))
}

// Len 当前任务数量
func (l *Ledger) Len() int {
	return len(l.items)
}

// Replace 用持久化数据重建台账（服务启动时回放用）
func (l *Ledger) Replace(items []domain.TodoItem) {
	l.items = make([]domain.TodoItem, len(items))
	copy(l.items, items)
}
