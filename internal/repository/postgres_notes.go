package repository

import (
	"context"
	"database/sql"
	"fmt"

	"carewatch/internal/domain"
)

// PostgresNotesRepository 交接班备注Repository实现
type PostgresNotesRepository struct {
	db *sql.DB
}

// NewPostgresNotesRepository 创建备注Repository
func NewPostgresNotesRepository(db *sql.DB) *PostgresNotesRepository {
	return &PostgresNotesRepository{db: db}
}

// 确保实现了接口
var _ NotesRepository = (*PostgresNotesRepository)(nil)

// InsertNote 插入备注
func (r *PostgresNotesRepository) InsertNote(ctx context.Context, note *domain.HandoverNote) error {
	if note.NoteID == "" {
		return domain.NewValidationError("note_id is required")
	}

	query := `
		INSERT INTO handover_notes (
			note_id, timestamp, priority, content, author
		) VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		note.NoteID,
		note.Timestamp,
		note.Priority,
		note.Content,
		note.Author,
	)
	if err != nil {
		return fmt.Errorf("failed to insert handover note: %w", err)
	}

	return nil
}

// ListNotes 按创建顺序返回备注，priority 非空时按优先级过滤
func (r *PostgresNotesRepository) ListNotes(ctx context.Context, priority string) ([]domain.HandoverNote, error) {
	query := `
		SELECT
			note_id::text, timestamp, priority, content,
			COALESCE(author, '') as author
		FROM handover_notes
	`
	var args []any
	if priority != "" {
		query += " WHERE priority = $1"
		args = append(args, priority)
	}
	query += " ORDER BY timestamp ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list handover notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.HandoverNote
	for rows.Next() {
		var note domain.HandoverNote
		if err := rows.Scan(
			&note.NoteID,
			&note.Timestamp,
			&note.Priority,
			&note.Content,
			&note.Author,
		); err != nil {
			return nil, fmt.Errorf("failed to scan handover note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate handover notes: %w", err)
	}

	return notes, nil
}
