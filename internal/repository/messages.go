package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"docfill/internal/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, sessionID uuid.UUID, role, content string) (*entity.Message, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*entity.Message, error)
}

type messageRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewMessageRepository(pool *pgxpool.Pool, logger *slog.Logger) MessageRepository {
	return &messageRepository{pool: pool, logger: logger}
}

func (r *messageRepository) Create(ctx context.Context, sessionID uuid.UUID, role, content string) (*entity.Message, error) {
	m := &entity.Message{ID: uuid.New(), SessionID: sessionID, Role: role, Content: content}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO messages (id, session_id, role, content) VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		m.ID, m.SessionID, m.Role, m.Content)
	if err := row.Scan(&m.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return m, nil
}

func (r *messageRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*entity.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, session_id, role, content, created_at
		 FROM messages WHERE session_id = $1 ORDER BY created_at`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var out []*entity.Message
	for rows.Next() {
		m := &entity.Message{}
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
