package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/octobees/employee-search/api/internal/entity"
)

type stubExecer struct {
	sql  string
	args []any
	tag  pgconn.CommandTag
	err  error
}

func (s *stubExecer) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.sql = sql
	s.args = args
	return s.tag, s.err
}

func TestSearchLogRecord(t *testing.T) {
	db := &stubExecer{tag: pgconn.NewCommandTag("INSERT 0 1")}
	repo := &PGXSearchLogRepository{db: db}

	entry := entity.SearchLog{Provider: "pdl", Company: "Acme", Status: 429, Category: "RateLimited"}
	if err := repo.Record(context.Background(), entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(db.sql, "INSERT INTO search_logs") {
		t.Fatalf("unexpected sql: %s", db.sql)
	}
	if len(db.args) != 11 {
		t.Fatalf("expected 11 args, got %d", len(db.args))
	}
	if id, ok := db.args[0].(uuid.UUID); !ok || id == uuid.Nil {
		t.Fatalf("expected generated id, got %v", db.args[0])
	}
	if db.args[1] != "pdl" || db.args[5] != 429 || db.args[6] != "RateLimited" {
		t.Fatalf("unexpected args: %v", db.args)
	}
}

func TestSearchLogRecordErrors(t *testing.T) {
	t.Run("exec error", func(t *testing.T) {
		boom := errors.New("boom")
		repo := &PGXSearchLogRepository{db: &stubExecer{err: boom}}
		if err := repo.Record(context.Background(), entity.SearchLog{}); !errors.Is(err, boom) {
			t.Fatalf("expected wrapped error, got %v", err)
		}
	})

	t.Run("no rows affected", func(t *testing.T) {
		repo := &PGXSearchLogRepository{db: &stubExecer{tag: pgconn.NewCommandTag("INSERT 0 0")}}
		if err := repo.Record(context.Background(), entity.SearchLog{}); !errors.Is(err, ErrSearchLogNotStored) {
			t.Fatalf("expected ErrSearchLogNotStored, got %v", err)
		}
	})
}

func TestSearchLogEnsureSchema(t *testing.T) {
	db := &stubExecer{tag: pgconn.NewCommandTag("CREATE TABLE")}
	repo := &PGXSearchLogRepository{db: db}
	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(db.sql, "CREATE TABLE IF NOT EXISTS search_logs") {
		t.Fatalf("unexpected sql: %s", db.sql)
	}
}
