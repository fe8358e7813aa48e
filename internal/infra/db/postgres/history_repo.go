package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/bryanwahyu/leadscope/internal/domain/history"
)

type HistoryRepository struct{ db *sql.DB }

func NewHistoryRepository(db *sql.DB) *HistoryRepository { return &HistoryRepository{db: db} }

func (r *HistoryRepository) Append(ctx context.Context, rec *domain.Record) error {
	const q = `
INSERT INTO analysis_history (id, username, profile, report, archive_url, created_at)
VALUES ($1,$2,$3,$4,$5,$6);`
	prof, err := json.Marshal(rec.Profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	rep, err := json.Marshal(rec.Report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = r.db.ExecContext(ctx, q, string(rec.ID), rec.Username, prof, rep, rec.ArchiveURL, rec.CreatedAt)
	return err
}

// ListRecent newest first
func (r *HistoryRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Record, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `
SELECT id, username, profile, report, archive_url, created_at
FROM analysis_history
ORDER BY created_at DESC, id DESC
LIMIT $1;`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *HistoryRepository) GetByID(ctx context.Context, id domain.RecordID) (*domain.Record, error) {
	const q = `
SELECT id, username, profile, report, archive_url, created_at
FROM analysis_history
WHERE id=$1;`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, q, string(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rec, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(s rowScanner) (*domain.Record, error) {
	var (
		rec       domain.Record
		id        string
		prof, rep []byte
	)
	if err := s.Scan(&id, &rec.Username, &prof, &rep, &rec.ArchiveURL, &rec.CreatedAt); err != nil {
		return nil, err
	}
	rec.ID = domain.RecordID(id)
	if err := json.Unmarshal(prof, &rec.Profile); err != nil {
		return nil, fmt.Errorf("decode profile of %s: %w", id, err)
	}
	if err := json.Unmarshal(rep, &rec.Report); err != nil {
		return nil, fmt.Errorf("decode report of %s: %w", id, err)
	}
	return &rec, nil
}
