package repository

import (
	"context"
	"time"

	"carewatch/internal/domain"
)

// ObservationsRepository 生命体征观测Repository接口
// 观测记录只插入不更新（不可变审计数据）
type ObservationsRepository interface {
	// InsertObservation 插入观测记录，返回生成的 observation_id
	InsertObservation(ctx context.Context, obs *domain.VitalObservation) (string, error)

	// GetLatest 获取住户最新观测，从未测量返回 ErrNotFound
	GetLatest(ctx context.Context, residentID string) (*domain.VitalObservation, error)

	// ListByTimeRange 按时间范围查询观测历史（从旧到新）
	ListByTimeRange(ctx context.Context, residentID string, start, end *time.Time) ([]*domain.VitalObservation, error)
}
