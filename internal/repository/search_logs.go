package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/employee-search/api/internal/entity"
)

// ErrSearchLogNotStored is returned when the insert reports no affected rows.
var ErrSearchLogNotStored = errors.New("search log not stored")

const createSearchLogsTable = `CREATE TABLE IF NOT EXISTS search_logs (
	id UUID PRIMARY KEY,
	provider TEXT NOT NULL,
	company TEXT NOT NULL DEFAULT '',
	job_title TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	status INTEGER NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	total INTEGER NOT NULL DEFAULT 0,
	returned INTEGER NOT NULL DEFAULT 0,
	latency_ms BIGINT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const insertSearchLog = `INSERT INTO search_logs
	(id, provider, company, job_title, location, status, category, total, returned, latency_ms, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// SearchLogRepository persists search audit entries.
type SearchLogRepository interface {
	EnsureSchema(ctx context.Context) error
	Record(ctx context.Context, entry entity.SearchLog) error
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PGXSearchLogRepository implements SearchLogRepository with pgx.
type PGXSearchLogRepository struct {
	db execer
}

// NewPGXSearchLogRepository instantiates a search log repository.
func NewPGXSearchLogRepository(pool *pgxpool.Pool) *PGXSearchLogRepository {
	return &PGXSearchLogRepository{db: pool}
}

// EnsureSchema creates the search_logs table when missing.
func (r *PGXSearchLogRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createSearchLogsTable); err != nil {
		return fmt.Errorf("create search_logs table: %w", err)
	}
	return nil
}

// Record inserts one entry, assigning an ID and timestamp when unset.
func (r *PGXSearchLogRepository) Record(ctx context.Context, entry entity.SearchLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	tag, err := r.db.Exec(ctx, insertSearchLog,
		entry.ID,
		entry.Provider,
		entry.Company,
		entry.JobTitle,
		entry.Location,
		entry.Status,
		entry.Category,
		entry.Total,
		entry.Returned,
		entry.LatencyMS,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert search log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSearchLogNotStored
	}
	return nil
}

var _ SearchLogRepository = (*PGXSearchLogRepository)(nil)
