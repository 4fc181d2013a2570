package vitals

import (
	"testing"
	"time"

	"carewatch/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func observation(residentID string, ts time.Time, heartRate int) domain.VitalObservation {
	return domain.VitalObservation{
		ResidentID: residentID,
		Timestamp:  ts,
		HeartRate:  intPtr(heartRate),
	}
}

func TestRecord_Success(t *testing.T) {
	store := NewStore()
	now := time.Now()

	err := store.Record(observation("resident-1", now, 72))
	require.NoError(t, err)

	latest, ok := store.Latest("resident-1")
	require.True(t, ok)
	assert.Equal(t, 72, *latest.HeartRate)
	assert.Equal(t, now, latest.Timestamp)
}

func TestRecord_EmptyObservation(t *testing.T) {
	store := NewStore()

	err := store.Record(domain.VitalObservation{
		ResidentID: "resident-1",
		Timestamp:  time.Now(),
	})

	assert.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, ok := store.Latest("resident-1")
	assert.False(t, ok)
}

func TestRecord_BackdatedTimestamp(t *testing.T) {
	store := NewStore()
	now := time.Now()

	require.NoError(t, store.Record(observation("resident-1", now, 72)))

	// 时间戳早于已有最新观测，应失败且存储不变
	err := store.Record(observation("resident-1", now.Add(-time.Hour), 80))
	assert.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	latest, ok := store.Latest("resident-1")
	require.True(t, ok)
	assert.Equal(t, 72, *latest.HeartRate)
}

func TestRecord_EqualTimestampAllowed(t *testing.T) {
	store := NewStore()
	now := time.Now()

	require.NoError(t, store.Record(observation("resident-1", now, 72)))
	require.NoError(t, store.Record(observation("resident-1", now, 75)))

	latest, ok := store.Latest("resident-1")
	require.True(t, ok)
	assert.Equal(t, 75, *latest.HeartRate)
}

func TestLatest_NeverMeasured(t *testing.T) {
	store := NewStore()

	_, ok := store.Latest("resident-unknown")
	assert.False(t, ok)
}

func TestHistory_OrderAndRange(t *testing.T) {
	store := NewStore()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(observation("resident-1", base.Add(time.Duration(i)*time.Hour), 70+i)))
	}

	// 全量：从旧到新
	var rates []int
	for obs := range store.History("resident-1", nil, nil) {
		rates = append(rates, *obs.HeartRate)
	}
	assert.Equal(t, []int{70, 71, 72, 73, 74}, rates)

	// 范围过滤
	from := base.Add(1 * time.Hour)
	to := base.Add(3 * time.Hour)
	rates = nil
	for obs := range store.History("resident-1", &from, &to) {
		rates = append(rates, *obs.HeartRate)
	}
	assert.Equal(t, []int{71, 72, 73}, rates)
}

func TestHistory_Restartable(t *testing.T) {
	store := NewStore()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, store.Record(observation("resident-1", base, 70)))
	require.NoError(t, store.Record(observation("resident-1", base.Add(time.Hour), 71)))

	seq := store.History("resident-1", nil, nil)

	count := 0
	for range seq {
		count++
	}
	assert.Equal(t, 2, count)

	// 同一序列可以重复遍历
	count = 0
	for range seq {
		count++
	}
	assert.Equal(t, 2, count)
}
