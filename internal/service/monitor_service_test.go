package service

import (
	"context"
	"testing"
	"time"

	"carewatch/internal/config"
	"carewatch/internal/domain"
	"carewatch/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func intPtr(v int) *int { return &v }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Monitor.Cadence = 2 * time.Hour
	cfg.Monitor.WeeklyGoal = 10
	cfg.Monitor.Thresholds = domain.UrgencyThresholds{
		domain.MetricHeartRate:        {Low: 60, High: 100},
		domain.MetricOxygenSaturation: {Low: 94, High: 100},
	}
	return cfg
}

func setupService(t *testing.T, roster []domain.Resident) *MonitorService {
	rosterRepo := repository.NewMemoryResidentsRepository()
	rosterRepo.Seed(roster)

	svc, err := NewMonitorService(testConfig(), rosterRepo, nil, nil, nil, nil, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func defaultRoster() []domain.Resident {
	return []domain.Resident{
		{ResidentID: "a", Name: "Alice", Room: "101"},
		{ResidentID: "b", Name: "Bob", Room: "102"},
		{ResidentID: "c", Name: "Carol", Room: "103"},
	}
}

func TestNewMonitorService_RejectsInvalidThresholds(t *testing.T) {
	cfg := testConfig()
	cfg.Monitor.Thresholds = domain.UrgencyThresholds{
		domain.MetricHeartRate: {Low: 100, High: 60},
	}

	_, err := NewMonitorService(cfg, repository.NewMemoryResidentsRepository(), nil, nil, nil, nil, zap.NewNop())

	assert.Error(t, err)
}

func TestRecordObservation_UrgencyVisibleImmediately(t *testing.T) {
	svc := setupService(t, defaultRoster())
	ctx := context.Background()

	assert.False(t, svc.IsUrgent("a"))

	err := svc.RecordObservation(ctx, domain.VitalObservation{
		ResidentID: "a",
		Timestamp:  time.Now(),
		HeartRate:  intPtr(130),
	})
	require.NoError(t, err)

	// 无缓存：写入后下一次读取立即反映
	assert.True(t, svc.IsUrgent("a"))
}

func TestRecordObservation_ValidationError(t *testing.T) {
	svc := setupService(t, defaultRoster())

	err := svc.RecordObservation(context.Background(), domain.VitalObservation{
		ResidentID: "a",
		Timestamp:  time.Now(),
	})

	assert.True(t, domain.IsValidation(err))
}

func TestRecordObservation_DefaultsTimestamp(t *testing.T) {
	svc := setupService(t, defaultRoster())

	err := svc.RecordObservation(context.Background(), domain.VitalObservation{
		ResidentID: "a",
		HeartRate:  intPtr(70),
	})
	require.NoError(t, err)

	latest, ok := svc.Latest("a")
	require.True(t, ok)
	assert.False(t, latest.Timestamp.IsZero())
}

func TestHistory_RangeFilter(t *testing.T) {
	svc := setupService(t, defaultRoster())
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.RecordObservation(ctx, domain.VitalObservation{
			ResidentID: "a",
			Timestamp:  base.Add(time.Duration(i) * time.Hour),
			HeartRate:  intPtr(70 + i),
		}))
	}

	from := base.Add(time.Hour)
	history := svc.History("a", &from, nil)

	require.Len(t, history, 2)
	assert.Equal(t, 71, *history[0].HeartRate)
}

func TestGetOverview(t *testing.T) {
	svc := setupService(t, defaultRoster())
	ctx := context.Background()

	require.NoError(t, svc.RecordObservation(ctx, domain.VitalObservation{
		ResidentID:       "b",
		Timestamp:        time.Now(),
		OxygenSaturation: intPtr(88),
	}))

	overview, err := svc.GetOverview(ctx)
	require.NoError(t, err)

	require.Len(t, overview.Urgent, 1)
	assert.Equal(t, "b", overview.Urgent[0].ResidentID)

	// 排程覆盖全部住户，按花名册顺序错开
	require.Len(t, overview.Schedule, 3)
	assert.Equal(t, "a", overview.Schedule[0].Resident.ResidentID)
	gap := overview.Schedule[1].DueAt.Sub(overview.Schedule[0].DueAt)
	assert.Equal(t, 2*time.Hour, gap)
}

func TestGetOverview_EmptyRoster(t *testing.T) {
	svc := setupService(t, nil)

	overview, err := svc.GetOverview(context.Background())

	require.NoError(t, err)
	assert.Empty(t, overview.Urgent)
	assert.Empty(t, overview.Schedule)
}

func TestDailyProgress(t *testing.T) {
	svc := setupService(t, defaultRoster())
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := svc.AddTodo(ctx, domain.TodoItem{Title: "Task"})
		require.NoError(t, err)
	}
	todos := svc.Todos()
	for _, todo := range todos[:3] {
		_, err := svc.ToggleTodo(ctx, todo.TodoID)
		require.NoError(t, err)
	}

	progress := svc.DailyProgress()

	assert.Equal(t, 3, progress.Completed)
	assert.Equal(t, 4, progress.Total)
	assert.Equal(t, 75, progress.Rate)
}

func TestDailyProgress_Empty(t *testing.T) {
	svc := setupService(t, defaultRoster())

	progress := svc.DailyProgress()

	assert.Equal(t, 0, progress.Rate)
	assert.Equal(t, 0, progress.Total)
}

func TestGetWeeklyProgress(t *testing.T) {
	svc := setupService(t, defaultRoster())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		todo, err := svc.AddTodo(ctx, domain.TodoItem{Title: "Task"})
		require.NoError(t, err)
		_, err = svc.ToggleTodo(ctx, todo.TodoID)
		require.NoError(t, err)
	}

	weekly := svc.GetWeeklyProgress(0) // 使用配置目标 10

	assert.Equal(t, 3, weekly.Completed)
	assert.Equal(t, 10, weekly.Goal)
	assert.Equal(t, 7, weekly.Remaining)
}

func TestGetWeeklyProgress_GoalExceeded(t *testing.T) {
	svc := setupService(t, defaultRoster())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		todo, err := svc.AddTodo(ctx, domain.TodoItem{Title: "Task"})
		require.NoError(t, err)
		_, err = svc.ToggleTodo(ctx, todo.TodoID)
		require.NoError(t, err)
	}

	weekly := svc.GetWeeklyProgress(2)

	// remaining 不为负
	assert.Equal(t, 0, weekly.Remaining)
}

func TestTodoLifecycle(t *testing.T) {
	svc := setupService(t, defaultRoster())
	ctx := context.Background()

	todo, err := svc.AddTodo(ctx, domain.TodoItem{Title: "Check room 101"})
	require.NoError(t, err)

	newTitle := "Check room 101 (AM)"
	updated, err := svc.UpdateTodo(ctx, todo.TodoID, domain.TodoUpdate{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)

	require.NoError(t, svc.RemoveTodo(ctx, todo.TodoID))

	err = svc.RemoveTodo(ctx, todo.TodoID)
	assert.True(t, domain.IsNotFound(err))
}

func TestAppendNote_AndFilter(t *testing.T) {
	svc := setupService(t, defaultRoster())
	ctx := context.Background()

	_, err := svc.AppendNote(ctx, domain.PriorityNormal, "quiet night", "nurse-kim")
	require.NoError(t, err)
	_, err = svc.AppendNote(ctx, domain.PriorityUrgent, "201 refused medication", "nurse-lee")
	require.NoError(t, err)

	all := svc.Notes(false)
	urgent := svc.Notes(true)

	require.Len(t, all, 2)
	require.Len(t, urgent, 1)
	assert.Equal(t, "201 refused medication", urgent[0].Content)
}
