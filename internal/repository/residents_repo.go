package repository

import (
	"context"

	"carewatch/internal/domain"
)

// ResidentsRepository 住户花名册Repository接口
// 花名册数据归外部目录服务所有，这里只做只读访问；
// 顺序（roster_position）决定测量排程的错开偏移
type ResidentsRepository interface {
	// ListRoster 按花名册顺序返回全部在住住户
	ListRoster(ctx context.Context) ([]domain.Resident, error)

	// GetResident 按 id 获取住户，不存在返回 ErrNotFound
	GetResident(ctx context.Context, residentID string) (*domain.Resident, error)
}
