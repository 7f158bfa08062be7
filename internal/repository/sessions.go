package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"docfill/constants"
	"docfill/internal/entity"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type SessionRepository interface {
	Create(ctx context.Context, filename string) (*entity.Session, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	List(ctx context.Context) ([]*entity.Session, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status constants.SessionStatus) error
}

type sessionRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewSessionRepository(pool *pgxpool.Pool, logger *slog.Logger) SessionRepository {
	return &sessionRepository{pool: pool, logger: logger}
}

func (r *sessionRepository) Create(ctx context.Context, filename string) (*entity.Session, error) {
	s := &entity.Session{ID: uuid.New(), Filename: filename, Status: constants.SessionUploaded}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO sessions (id, filename, status) VALUES ($1, $2, $3)
		 RETURNING created_at, updated_at`,
		s.ID, s.Filename, s.Status)
	if err := row.Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	r.logger.Info("session created", "session_id", s.ID, "filename", filename)
	return s, nil
}

func (r *sessionRepository) Get(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	s := &entity.Session{}
	row := r.pool.QueryRow(ctx,
		`SELECT id, filename, status, created_at, updated_at FROM sessions WHERE id = $1`, id)
	if err := row.Scan(&s.ID, &s.Filename, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select session: %w", err)
	}
	return s, nil
}

func (r *sessionRepository) List(ctx context.Context) ([]*entity.Session, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, filename, status, created_at, updated_at FROM sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []*entity.Session
	for rows.Next() {
		s := &entity.Session{}
		if err := rows.Scan(&s.ID, &s.Filename, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *sessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status constants.SessionStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE sessions SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update session status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
