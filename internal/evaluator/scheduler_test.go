package evaluator

import (
	"testing"
	"time"

	"carewatch/internal/domain"
	"carewatch/internal/vitals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestNextDue_StaggeredOffsets(t *testing.T) {
	store := vitals.NewStore()
	scheduler := NewScheduler(store)

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	scheduler.now = fixedClock(now)

	roster := []domain.Resident{
		{ResidentID: "a"},
		{ResidentID: "b"},
		{ResidentID: "c"},
	}

	entries := scheduler.NextDue(roster, 2*time.Hour)

	require.Len(t, entries, 3)
	assert.Equal(t, now.Add(2*time.Hour), entries[0].DueAt)
	assert.Equal(t, now.Add(4*time.Hour), entries[1].DueAt)
	assert.Equal(t, now.Add(6*time.Hour), entries[2].DueAt)
	assert.Equal(t, "a", entries[0].Resident.ResidentID)
	assert.Equal(t, "c", entries[2].Resident.ResidentID)
}

func TestNextDue_EmptyRoster(t *testing.T) {
	scheduler := NewScheduler(vitals.NewStore())

	entries := scheduler.NextDue(nil, 2*time.Hour)

	assert.Empty(t, entries)
}

func TestNextDue_RosterReorderChangesDueTimes(t *testing.T) {
	scheduler := NewScheduler(vitals.NewStore())
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	scheduler.now = fixedClock(now)

	cadence := time.Hour
	orderAB := scheduler.NextDue([]domain.Resident{{ResidentID: "a"}, {ResidentID: "b"}}, cadence)
	orderBA := scheduler.NextDue([]domain.Resident{{ResidentID: "b"}, {ResidentID: "a"}}, cadence)

	// 排程每次按花名册顺序重新计算，重排立即生效
	assert.Equal(t, orderAB[0].DueAt, orderBA[0].DueAt)
	assert.Equal(t, "a", orderAB[0].Resident.ResidentID)
	assert.Equal(t, "b", orderBA[0].Resident.ResidentID)
}

func TestIsOverdue(t *testing.T) {
	store := vitals.NewStore()
	scheduler := NewScheduler(store)
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	scheduler.now = fixedClock(now)

	roster := []domain.Resident{
		{ResidentID: "a"},
		{ResidentID: "b"},
	}
	cadence := 2 * time.Hour

	// a 的窗口下限是 now（索引0：due-窗口 = now+2h-2h），旧观测即逾期
	hr := 70
	require.NoError(t, store.Record(domain.VitalObservation{
		ResidentID: "a",
		Timestamp:  now.Add(-time.Minute),
		HeartRate:  &hr,
	}))
	assert.True(t, scheduler.IsOverdue("a", roster, cadence))

	// b 的窗口下限是 now+2h，刚刚测量过不逾期
	require.NoError(t, store.Record(domain.VitalObservation{
		ResidentID: "b",
		Timestamp:  now.Add(3 * time.Hour),
		HeartRate:  &hr,
	}))
	assert.False(t, scheduler.IsOverdue("b", roster, cadence))
}

func TestIsOverdue_NeverMeasured(t *testing.T) {
	scheduler := NewScheduler(vitals.NewStore())

	roster := []domain.Resident{{ResidentID: "a"}}

	assert.False(t, scheduler.IsOverdue("a", roster, time.Hour))
}

func TestIsOverdue_NotInRoster(t *testing.T) {
	scheduler := NewScheduler(vitals.NewStore())

	assert.False(t, scheduler.IsOverdue("ghost", []domain.Resident{{ResidentID: "a"}}, time.Hour))
}
