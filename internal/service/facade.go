package service

import (
	"context"
	"time"

	"carewatch/internal/domain"
)

// OverviewEntry 排程行（住户 + 下次测量时间 + 是否逾期）
type OverviewEntry struct {
	Resident domain.Resident `json:"resident"`
	DueAt    time.Time       `json:"due_at"`
	Overdue  bool            `json:"overdue"`
}

// Overview 班次总览视图
type Overview struct {
	Urgent   []domain.Resident `json:"urgent"`
	Schedule []OverviewEntry   `json:"schedule"`
}

// Progress 当日任务进度
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Rate      int `json:"rate"` // 0-100
}

// WeeklyProgress 周任务进度
type WeeklyProgress struct {
	Completed int `json:"completed"`
	Goal      int `json:"goal"`
	Remaining int `json:"remaining"`
}

// GetOverview 组合紧急列表和测量排程
// 纯读侧组合，每次调用基于当前状态重新计算，无新增状态和失败模式
func (s *MonitorService) GetOverview(ctx context.Context) (*Overview, error) {
	roster, err := s.Roster(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	cadence := s.config.Monitor.Cadence
	schedule := s.scheduler.NextDue(roster, cadence)

	entries := make([]OverviewEntry, 0, len(schedule))
	for _, entry := range schedule {
		entries = append(entries, OverviewEntry{
			Resident: entry.Resident,
			DueAt:    entry.DueAt,
			Overdue:  s.scheduler.IsOverdue(entry.Resident.ResidentID, roster, cadence),
		})
	}

	return &Overview{
		Urgent:   s.evaluator.UrgentResidents(roster),
		Schedule: entries,
	}, nil
}

// DailyProgress 当日任务完成进度
func (s *MonitorService) DailyProgress() Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Progress{
		Completed: len(s.ledger.Completed()),
		Total:     s.ledger.Len(),
		Rate:      s.ledger.CompletionRate(),
	}
}

// GetWeeklyProgress 周任务进度，goal <= 0 时使用配置的周目标
func (s *MonitorService) GetWeeklyProgress(goal int) WeeklyProgress {
	if goal <= 0 {
		goal = s.config.Monitor.WeeklyGoal
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	completed := len(s.ledger.Completed())
	remaining := goal - completed
	if remaining < 0 {
		remaining = 0
	}

	return WeeklyProgress{
		Completed: completed,
		Goal:      goal,
		Remaining: remaining,
	}
}
