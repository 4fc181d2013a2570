package evaluator

import (
	"time"

	"carewatch/internal/domain"
)

// ScheduleEntry 单个住户的下次测量时间
type ScheduleEntry struct {
	Resident domain.Resident `json:"resident"`
	DueAt    time.Time       `json:"due_at"`
}

// Scheduler 测量排程器
// 排程不持久化，每次请求基于当前花名册顺序重新计算：
// 花名册重排只影响未来的到期时间，不改写历史
type Scheduler struct {
	source LatestSource
	now    func() time.Time
}

// NewScheduler 创建排程器
func NewScheduler(source LatestSource) *Scheduler {
	return &Scheduler{
		source: source,
		now:    time.Now,
	}
}

// NextDue 计算花名册中每个住户的下次测量时间
// 第 i 个住户（0 起）的到期时间为 now + (i+1) × cadence，
// 按位置错开，避免所有住户同时到期造成测量高峰
// 空花名册返回空排程，不报错
func (s *Scheduler) NextDue(roster []domain.Resident, cadence time.Duration) []ScheduleEntry {
	if len(roster) == 0 {
		return nil
	}

	now := s.now()
	entries := make([]ScheduleEntry, 0, len(roster))
	for i, r := range roster {
		entries = append(entries, ScheduleEntry{
			Resident: r,
			DueAt:    now.Add(time.Duration(i+1) * cadence),
		})
	}
	return entries
}

// IsOverdue 判断住户测量是否已逾期
// 最新观测时间早于（到期时间 - 一个周期窗口）视为逾期；
// 不在花名册中或从未测量过的住户不视为逾期
func (s *Scheduler) IsOverdue(residentID string, roster []domain.Resident, cadence time.Duration) bool {
	index := -1
	for i, r := range roster {
		if r.ResidentID == residentID {
			index = i
			break
		}
	}
	if index < 0 {
		return false
	}

	latest, ok := s.source.Latest(residentID)
	if !ok {
		return false
	}

	due := s.now().Add(time.Duration(index+1) * cadence)
	return latest.Timestamp.Before(due.Add(-cadence))
}
