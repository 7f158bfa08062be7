package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"docfill/internal/entity"
)

type DocumentRepository interface {
	Create(ctx context.Context, sessionID uuid.UUID, templateJSON json.RawMessage) (*entity.Document, error)
	GetBySession(ctx context.Context, sessionID uuid.UUID) (*entity.Document, error)
	UpdateWorking(ctx context.Context, sessionID uuid.UUID, workingJSON json.RawMessage) error
}

type documentRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewDocumentRepository(pool *pgxpool.Pool, logger *slog.Logger) DocumentRepository {
	return &documentRepository{pool: pool, logger: logger}
}

func (r *documentRepository) Create(ctx context.Context, sessionID uuid.UUID, templateJSON json.RawMessage) (*entity.Document, error) {
	d := &entity.Document{
		ID:           uuid.New(),
		SessionID:    sessionID,
		TemplateJSON: templateJSON,
		WorkingJSON:  templateJSON,
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO documents (id, session_id, template_json, working_json)
		 VALUES ($1, $2, $3, $4) RETURNING created_at, updated_at`,
		d.ID, d.SessionID, d.TemplateJSON, d.WorkingJSON)
	if err := row.Scan(&d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}
	r.logger.Info("document stored", "session_id", sessionID, "bytes", len(templateJSON))
	return d, nil
}

func (r *documentRepository) GetBySession(ctx context.Context, sessionID uuid.UUID) (*entity.Document, error) {
	d := &entity.Document{}
	row := r.pool.QueryRow(ctx,
		`SELECT id, session_id, template_json, working_json, created_at, updated_at
		 FROM documents WHERE session_id = $1`, sessionID)
	err := row.Scan(&d.ID, &d.SessionID, &d.TemplateJSON, &d.WorkingJSON, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select document: %w", err)
	}
	return d, nil
}

func (r *documentRepository) UpdateWorking(ctx context.Context, sessionID uuid.UUID, workingJSON json.RawMessage) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE documents SET working_json = $2, updated_at = now() WHERE session_id = $1`,
		sessionID, workingJSON)
	if err != nil {
		return fmt.Errorf("update working document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
