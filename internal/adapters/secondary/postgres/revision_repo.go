package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"model-config-service/internal/core/domain"
	output "model-config-service/internal/core/ports/output"
)

const revisionSchema = `
	CREATE TABLE IF NOT EXISTS config_revision (
		id         UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		digest     TEXT NOT NULL,
		origin     TEXT NOT NULL,
		warnings   INTEGER NOT NULL DEFAULT 0,
		partial    BOOLEAN NOT NULL DEFAULT FALSE,
		raw        BYTEA NOT NULL
	);
	CREATE INDEX IF NOT EXISTS config_revision_created_at_idx ON config_revision (created_at DESC);
`

// DB is the subset of *pgxpool.Pool used by the repository.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ DB = (*pgxpool.Pool)(nil)

type revisionRepo struct {
	db DB
}

// NewRevisionRepository creates a new RevisionRepository
func NewRevisionRepository(db DB) output.RevisionRepository {
	return &revisionRepo{db: db}
}

// EnsureSchema creates the revision table when it does not exist yet.
func EnsureSchema(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, revisionSchema); err != nil {
		return fmt.Errorf("create config_revision table: %w", err)
	}
	return nil
}

func (r *revisionRepo) Create(ctx context.Context, rev *domain.Revision) error {
	query := `
		INSERT INTO config_revision
			(id, created_at, digest, origin, warnings, partial, raw)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		rev.ID, rev.CreatedAt, rev.Digest,
		rev.Origin, rev.Warnings, rev.Partial, rev.Raw,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("revision %s already stored: %w", rev.ID, err)
		}
		return fmt.Errorf("create config revision: %w", err)
	}
	return nil
}

func (r *revisionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Revision, error) {
	query := `
		SELECT id, created_at, digest, origin, warnings, partial, raw
		FROM config_revision
		WHERE id = $1
	`

	rev, err := scanRevision(r.db.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRevisionNotFound
		}
		return nil, fmt.Errorf("get config revision by id: %w", err)
	}
	return rev, nil
}

// List returns revisions newest first. Raw documents are not loaded.
func (r *revisionRepo) List(ctx context.Context, filter output.RevisionListFilter) ([]*domain.Revision, int, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	if filter.Origin != "" {
		conditions = append(conditions, fmt.Sprintf("origin = $%d", argPos))
		args = append(args, filter.Origin)
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	// Count
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM config_revision WHERE %s", whereClause)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count config revisions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, created_at, digest, origin, warnings, partial
		FROM config_revision
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list config revisions: %w", err)
	}
	defer rows.Close()

	var revisions []*domain.Revision
	for rows.Next() {
		rev, err := scanRevision(rows, false)
		if err != nil {
			return nil, 0, fmt.Errorf("scan config revision row: %w", err)
		}
		revisions = append(revisions, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate config revision rows: %w", err)
	}

	return revisions, total, nil
}

func scanRevision(row pgx.Row, withRaw bool) (*domain.Revision, error) {
	rev := &domain.Revision{}
	dest := []any{&rev.ID, &rev.CreatedAt, &rev.Digest, &rev.Origin, &rev.Warnings, &rev.Partial}
	if withRaw {
		dest = append(dest, &rev.Raw)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return rev, nil
}
