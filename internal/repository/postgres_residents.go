package repository

import (
	"context"
	"database/sql"
	"fmt"

	"carewatch/internal/domain"
)

// PostgresResidentsRepository 住户花名册Repository实现
type PostgresResidentsRepository struct {
	db *sql.DB
}

// NewPostgresResidentsRepository 创建花名册Repository
func NewPostgresResidentsRepository(db *sql.DB) *PostgresResidentsRepository {
	return &PostgresResidentsRepository{db: db}
}

// 确保实现了接口
var _ ResidentsRepository = (*PostgresResidentsRepository)(nil)

// ListRoster 按 roster_position 顺序返回在住住户
func (r *PostgresResidentsRepository) ListRoster(ctx context.Context) ([]domain.Resident, error) {
	query := `
		SELECT
			resident_id::text,
			name,
			COALESCE(room, '') as room
		FROM residents
		WHERE status = 'active'
		ORDER BY roster_position ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}
	defer rows.Close()

	var roster []domain.Resident
	for rows.Next() {
		var resident domain.Resident
		if err := rows.Scan(&resident.ResidentID, &resident.Name, &resident.Room); err != nil {
			return nil, fmt.Errorf("failed to scan resident: %w", err)
		}
		roster = append(roster, resident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster: %w", err)
	}

	return roster, nil
}

// GetResident 按 resident_id 获取住户
func (r *PostgresResidentsRepository) GetResident(ctx context.Context, residentID string) (*domain.Resident, error) {
	if residentID == "" {
		return nil, domain.NewValidationError("resident_id is required")
	}

	query := `
		SELECT
			resident_id::text,
			name,
			COALESCE(room, '') as room
		FROM residents
		WHERE resident_id = $1
	`

	var resident domain.Resident
	err := r.db.QueryRowContext(ctx, query, residentID).Scan(
		&resident.ResidentID,
		&resident.Name,
		&resident.Room,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("resident %s: %w", residentID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get resident: %w", err)
	}

	return &resident, nil
}
