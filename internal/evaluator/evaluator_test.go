package evaluator

import (
	"testing"
	"time"

	"carewatch/internal/domain"
	"carewatch/internal/vitals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func defaultThresholds() domain.UrgencyThresholds {
	return domain.UrgencyThresholds{
		domain.MetricHeartRate:        {Low: 60, High: 100},
		domain.MetricSystolicBP:       {Low: 90, High: 140},
		domain.MetricTemperature:      {Low: 35.5, High: 37.5},
		domain.MetricOxygenSaturation: {Low: 94, High: 100},
	}
}

func setupEvaluator(t *testing.T) (*vitals.Store, *Evaluator) {
	store := vitals.NewStore()
	thresholds := defaultThresholds()
	require.NoError(t, thresholds.Validate())
	return store, NewEvaluator(store, thresholds, zap.NewNop())
}

func TestIsUrgent_NoObservation(t *testing.T) {
	_, eval := setupEvaluator(t)

	// 无数据不是紧急状态
	assert.False(t, eval.IsUrgent("resident-1"))
}

func TestIsUrgent_NormalVitals(t *testing.T) {
	store, eval := setupEvaluator(t)

	require.NoError(t, store.Record(domain.VitalObservation{
		ResidentID: "resident-1",
		Timestamp:  time.Now(),
		HeartRate:  intPtr(72),
	}))

	assert.False(t, eval.IsUrgent("resident-1"))
}

func TestIsUrgent_MetricOutsideBound(t *testing.T) {
	store, eval := setupEvaluator(t)

	require.NoError(t, store.Record(domain.VitalObservation{
		ResidentID: "resident-1",
		Timestamp:  time.Now(),
		HeartRate:  intPtr(120),
	}))

	assert.True(t, eval.IsUrgent("resident-1"))
}

func TestIsUrgent_OnlyLatestObservationCounts(t *testing.T) {
	store, eval := setupEvaluator(t)
	now := time.Now()

	// 先记录异常，再记录正常：只看最新观测
	require.NoError(t, store.Record(domain.VitalObservation{
		ResidentID: "resident-1",
		Timestamp:  now.Add(-time.Hour),
		HeartRate:  intPtr(130),
	}))
	require.NoError(t, store.Record(domain.VitalObservation{
		ResidentID: "resident-1",
		Timestamp:  now,
		HeartRate:  intPtr(75),
	}))

	assert.False(t, eval.IsUrgent("resident-1"))
}

func TestIsUrgent_UnconfiguredMetricIgnored(t *testing.T) {
	store := vitals.NewStore()
	// 只配置心率阈值
	eval := NewEvaluator(store, domain.UrgencyThresholds{
		domain.MetricHeartRate: {Low: 60, High: 100},
	}, zap.NewNop())

	require.NoError(t, store.Record(domain.VitalObservation{
		ResidentID:  "resident-1",
		Timestamp:   time.Now(),
		Temperature: floatPtr(39.5), // 无阈值，不参与判断
	}))

	assert.False(t, eval.IsUrgent("resident-1"))
}

func TestIsUrgent_BoundaryValuesNotUrgent(t *testing.T) {
	store, eval := setupEvaluator(t)

	// 正好落在边界上不算超出（严格超出才紧急）
	require.NoError(t, store.Record(domain.VitalObservation{
		ResidentID: "resident-1",
		Timestamp:  time.Now(),
		HeartRate:  intPtr(100),
	}))

	assert.False(t, eval.IsUrgent("resident-1"))
}

func TestUrgentResidents_PreservesRosterOrder(t *testing.T) {
	store := vitals.NewStore()
	eval := NewEvaluator(store, domain.UrgencyThresholds{
		domain.MetricHeartRate: {Low: 60, High: 100},
	}, zap.NewNop())

	roster := []domain.Resident{
		{ResidentID: "a", Name: "Alice", Room: "101"},
		{ResidentID: "b", Name: "Bob", Room: "102"},
		{ResidentID: "c", Name: "Carol", Room: "103"},
	}

	now := time.Now()
	require.NoError(t, store.Record(domain.VitalObservation{
		ResidentID: "c", Timestamp: now, HeartRate: intPtr(45),
	}))
	require.NoError(t, store.Record(domain.VitalObservation{
		ResidentID: "a", Timestamp: now, HeartRate: intPtr(120),
	}))
	require.NoError(t, store.Record(domain.VitalObservation{
		ResidentID: "b", Timestamp: now, HeartRate: intPtr(80),
	}))

	urgent := eval.UrgentResidents(roster)

	require.Len(t, urgent, 2)
	assert.Equal(t, "a", urgent[0].ResidentID)
	assert.Equal(t, "c", urgent[1].ResidentID)
}

func TestUrgentResidents_ScenarioSingleBreach(t *testing.T) {
	store := vitals.NewStore()
	eval := NewEvaluator(store, domain.UrgencyThresholds{
		domain.MetricHeartRate: {Low: 60, High: 100},
	}, zap.NewNop())

	roster := []domain.Resident{
		{ResidentID: "a"},
		{ResidentID: "b"},
	}

	require.NoError(t, store.Record(domain.VitalObservation{
		ResidentID: "a",
		Timestamp:  time.Now(),
		HeartRate:  intPtr(120),
	}))

	urgent := eval.UrgentResidents(roster)

	require.Len(t, urgent, 1)
	assert.Equal(t, "a", urgent[0].ResidentID)
}
