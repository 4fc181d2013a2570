package handover

import (
	"time"

	"carewatch/internal/domain"

	"github.com/google/uuid"
)

// Log 交接班备注日志（只追加）
// 不提供修改和删除：更正以新备注的形式追加，保留完整审计痕迹
// 按创建顺序保存（最新在末尾），倒序展示由渲染方负责
type Log struct {
	notes []domain.HandoverNote
	now   func() time.Time
	newID func() string
}

// NewLog 创建备注日志
func NewLog() *Log {
	return &Log{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Append 追加一条备注，id 和 timestamp 由服务端分配
// priority 必须是 normal 或 urgent，content 不能为空
func (l *Log) Append(priority, content, author string) (domain.HandoverNote, error) {
	if priority != domain.PriorityNormal && priority != domain.PriorityUrgent {
		return domain.HandoverNote{}, domain.NewValidationError("invalid priority %q", priority)
	}
	if content == "" {
		return domain.HandoverNote{}, domain.NewValidationError("note content is required")
	}

	note := domain.HandoverNote{
		NoteID:    l.newID(),
		Timestamp: l.now(),
		Priority:  priority,
		Content:   content,
		Author:    author,
	}
	l.notes = append(l.notes, note)
	return note, nil
}

// All 返回全部备注快照（按创建顺序）
func (l *Log) All() []domain.HandoverNote {
	out := make([]domain.HandoverNote, len(l.notes))
	copy(out, l.notes)
	return out
}

// Urgent 返回紧急备注，保持插入顺序
func (l *Log) Urgent() []domain.HandoverNote {
	var out []domain.HandoverNote
	for _, note := range l.notes {
		if note.Priority == domain.PriorityUrgent {
			out = append(out, note)
		}
	}
	return out
}

// Len 当前备注数量
func (l *Log) Len() int {
	return len(l.notes)
}

// Replace 用持久化数据重建日志（服务启动时回放用）
func (l *Log) Replace(notes []domain.HandoverNote) {
	l.notes = make([]domain.HandoverNote, len(notes))
	copy(l.notes, notes)
}
