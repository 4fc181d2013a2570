package repository

import (
	"context"

	"carewatch/internal/domain"
)

// NotesRepository 交接班备注Repository接口
// 备注是只追加的审计数据，不提供更新和删除
type NotesRepository interface {
	// InsertNote 插入备注
	InsertNote(ctx context.Context, note *domain.HandoverNote) error

	// ListNotes 按创建顺序返回备注，priority 非空时过滤
	ListNotes(ctx context.Context, priority string) ([]domain.HandoverNote, error)
}
