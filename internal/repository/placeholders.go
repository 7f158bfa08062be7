package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"docfill/internal/entity"
)

type PlaceholderRepository interface {
	CreateBatch(ctx context.Context, phs []*entity.Placeholder) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*entity.Placeholder, error)
	GetByKey(ctx context.Context, sessionID uuid.UUID, key string) (*entity.Placeholder, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Placeholder, error)
	SetValue(ctx context.Context, sessionID uuid.UUID, key, value string) error
	ClearValue(ctx context.Context, sessionID uuid.UUID, key string) error
	CountUnfilled(ctx context.Context, sessionID uuid.UUID) (int, error)
}

type placeholderRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPlaceholderRepository(pool *pgxpool.Pool, logger *slog.Logger) PlaceholderRepository {
	return &placeholderRepository{pool: pool, logger: logger}
}

func (r *placeholderRepository) CreateBatch(ctx context.Context, phs []*entity.Placeholder) error {
	batch := &pgx.Batch{}
	for _, p := range phs {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		batch.Queue(
			`INSERT INTO placeholders (id, session_id, key, normalized_key, type, hint, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.ID, p.SessionID, p.Key, p.NormalizedKey, p.Type, p.Hint, p.Position)
	}
	br := r.pool.SendBatch(ctx, batch)
	defer func() {
		if err := br.Close(); err != nil {
			r.logger.Warn("closing placeholder batch", "error", err)
		}
	}()
	for range phs {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert placeholder: %w", err)
		}
	}
	return nil
}

func (r *placeholderRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*entity.Placeholder, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, session_id, key, normalized_key, type, hint, position, is_filled, value, created_at, updated_at
		 FROM placeholders WHERE session_id = $1 ORDER BY position`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list placeholders: %w", err)
	}
	defer rows.Close()

	var out []*entity.Placeholder
	for rows.Next() {
		p := &entity.Placeholder{}
		if err := rows.Scan(&p.ID, &p.SessionID, &p.Key, &p.NormalizedKey, &p.Type, &p.Hint,
			&p.Position, &p.IsFilled, &p.Value, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan placeholder: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *placeholderRepository) GetByKey(ctx context.Context, sessionID uuid.UUID, key string) (*entity.Placeholder, error) {
	p := &entity.Placeholder{}
	row := r.pool.QueryRow(ctx,
		`SELECT id, session_id, key, normalized_key, type, hint, position, is_filled, value, created_at, updated_at
		 FROM placeholders WHERE session_id = $1 AND key = $2`, sessionID, key)
	err := row.Scan(&p.ID, &p.SessionID, &p.Key, &p.NormalizedKey, &p.Type, &p.Hint,
		&p.Position, &p.IsFilled, &p.Value, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select placeholder: %w", err)
	}
	return p, nil
}

func (r *placeholderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Placeholder, error) {
	p := &entity.Placeholder{}
	row := r.pool.QueryRow(ctx,
		`SELECT id, session_id, key, normalized_key, type, hint, position, is_filled, value, created_at, updated_at
		 FROM placeholders WHERE id = $1`, id)
	err := row.Scan(&p.ID, &p.SessionID, &p.Key, &p.NormalizedKey, &p.Type, &p.Hint,
		&p.Position, &p.IsFilled, &p.Value, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select placeholder: %w", err)
	}
	return p, nil
}

func (r *placeholderRepository) SetValue(ctx context.Context, sessionID uuid.UUID, key, value string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE placeholders SET value = $3, is_filled = TRUE, updated_at = now()
		 WHERE session_id = $1 AND key = $2`, sessionID, key, value)
	if err != nil {
		return fmt.Errorf("set placeholder value: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *placeholderRepository) ClearValue(ctx context.Context, sessionID uuid.UUID, key string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE placeholders SET value = NULL, is_filled = FALSE, updated_at = now()
		 WHERE session_id = $1 AND key = $2`, sessionID, key)
	if err != nil {
		return fmt.Errorf("clear placeholder value: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *placeholderRepository) CountUnfilled(ctx context.Context, sessionID uuid.UUID) (int, error) {
	var n int
	row := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM placeholders WHERE session_id = $1 AND NOT is_filled`, sessionID)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count unfilled placeholders: %w", err)
	}
	return n, nil
}
