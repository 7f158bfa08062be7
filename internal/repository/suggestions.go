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

type SuggestionRepository interface {
	Create(ctx context.Context, s *entity.Suggestion) (*entity.Suggestion, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Suggestion, error)
	ListPending(ctx context.Context, sessionID uuid.UUID) ([]*entity.Suggestion, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status constants.SuggestionStatus) error
}

type suggestionRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewSuggestionRepository(pool *pgxpool.Pool, logger *slog.Logger) SuggestionRepository {
	return &suggestionRepository{pool: pool, logger: logger}
}

func (r *suggestionRepository) Create(ctx context.Context, s *entity.Suggestion) (*entity.Suggestion, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = constants.SuggestionPending
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO suggestions (id, session_id, placeholder_id, message_id, value, status)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at, updated_at`,
		s.ID, s.SessionID, s.PlaceholderID, s.MessageID, s.Value, s.Status)
	if err := row.Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert suggestion: %w", err)
	}
	return s, nil
}

func (r *suggestionRepository) Get(ctx context.Context, id uuid.UUID) (*entity.Suggestion, error) {
	s := &entity.Suggestion{}
	row := r.pool.QueryRow(ctx,
		`SELECT id, session_id, placeholder_id, message_id, value, status, created_at, updated_at
		 FROM suggestions WHERE id = $1`, id)
	err := row.Scan(&s.ID, &s.SessionID, &s.PlaceholderID, &s.MessageID, &s.Value, &s.Status,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select suggestion: %w", err)
	}
	return s, nil
}

func (r *suggestionRepository) ListPending(ctx context.Context, sessionID uuid.UUID) ([]*entity.Suggestion, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, session_id, placeholder_id, message_id, value, status, created_at, updated_at
		 FROM suggestions WHERE session_id = $1 AND status = $2 ORDER BY created_at`,
		sessionID, constants.SuggestionPending)
	if err != nil {
		return nil, fmt.Errorf("list pending suggestions: %w", err)
	}
	defer rows.Close()

	var out []*entity.Suggestion
	for rows.Next() {
		s := &entity.Suggestion{}
		if err := rows.Scan(&s.ID, &s.SessionID, &s.PlaceholderID, &s.MessageID, &s.Value, &s.Status,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *suggestionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status constants.SuggestionStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE suggestions SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update suggestion status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
