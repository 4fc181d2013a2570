package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"carewatch/internal/domain"

	"github.com/google/uuid"
)

// PostgresObservationsRepository 生命体征观测Repository实现
type PostgresObservationsRepository struct {
	db *sql.DB
}

// NewPostgresObservationsRepository 创建观测Repository
func NewPostgresObservationsRepository(db *sql.DB) *PostgresObservationsRepository {
	return &PostgresObservationsRepository{db: db}
}

// 确保实现了接口
var _ ObservationsRepository = (*PostgresObservationsRepository)(nil)

// InsertObservation 插入观测记录
func (r *PostgresObservationsRepository) InsertObservation(ctx context.Context, obs *domain.VitalObservation) (string, error) {
	if obs.ResidentID == "" {
		return "", domain.NewValidationError("resident_id is required")
	}

	observationID := uuid.NewString()
	query := `
		INSERT INTO vital_observations (
			observation_id, resident_id, timestamp,
			systolic_bp, diastolic_bp, heart_rate, temperature, oxygen_saturation
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		observationID,
		obs.ResidentID,
		obs.Timestamp,
		obs.SystolicBP,
		obs.DiastolicBP,
		obs.HeartRate,
		obs.Temperature,
		obs.OxygenSaturation,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert observation: %w", err)
	}

	return observationID, nil
}

// GetLatest 获取住户最新观测
func (r *PostgresObservationsRepository) GetLatest(ctx context.Context, residentID string) (*domain.VitalObservation, error) {
	query := `
		SELECT
			resident_id::text, timestamp,
			systolic_bp, diastolic_bp, heart_rate, temperature, oxygen_saturation
		FROM vital_observations
		WHERE resident_id = $1
		ORDER BY timestamp DESC
		LIMIT 1
	`

	obs, err := scanObservation(r.db.QueryRowContext(ctx, query, residentID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("observations for resident %s: %w", residentID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get latest observation: %w", err)
	}
	return obs, nil
}

// ListByTimeRange 按时间范围查询观测历史（从旧到新）
// start/end 为 nil 表示不限制
func (r *PostgresObservationsRepository) ListByTimeRange(ctx context.Context, residentID string, start, end *time.Time) ([]*domain.VitalObservation, error) {
	query := `
		SELECT
			resident_id::text, timestamp,
			systolic_bp, diastolic_bp, heart_rate, temperature, oxygen_saturation
		FROM vital_observations
		WHERE resident_id = $1
	`
	args := []any{residentID}

	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(" AND timestamp >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(" AND timestamp <= $%d", len(args))
	}
	query += " ORDER BY timestamp ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list observations: %w", err)
	}
	defer rows.Close()

	var out []*domain.VitalObservation
	for rows.Next() {
		obs, err := scanObservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		out = append(out, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate observations: %w", err)
	}

	return out, nil
}

// rowScanner 兼容 *sql.Row 和 *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanObservation 扫描单条观测记录，可空指标列转换为指针字段
func scanObservation(row rowScanner) (*domain.VitalObservation, error) {
	var obs domain.VitalObservation
	var systolic, diastolic, heartRate, spo2 sql.NullInt64
	var temperature sql.NullFloat64

	err := row.Scan(
		&obs.ResidentID,
		&obs.Timestamp,
		&systolic,
		&diastolic,
		&heartRate,
		&temperature,
		&spo2,
	)
	if err != nil {
		return nil, err
	}

	if systolic.Valid {
		v := int(systolic.Int64)
		obs.SystolicBP = &v
	}
	if diastolic.Valid {
		v := int(diastolic.Int64)
		obs.DiastolicBP = &v
	}
	if heartRate.Valid {
		v := int(heartRate.Int64)
		obs.HeartRate = &v
	}
	if temperature.Valid {
		v := temperature.Float64
		obs.Temperature = &v
	}
	if spo2.Valid {
		v := int(spo2.Int64)
		obs.OxygenSaturation = &v
	}

	return &obs, nil
}
