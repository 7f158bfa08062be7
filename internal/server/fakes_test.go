package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"docfill/constants"
	"docfill/internal/entity"
	"docfill/internal/repository"
)

// In-memory repositories backing handler tests.

type memSessions struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*entity.Session
}

func newMemSessions() *memSessions {
	return &memSessions{rows: map[uuid.UUID]*entity.Session{}}
}

func (m *memSessions) Create(_ context.Context, filename string) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &entity.Session{
		ID: uuid.New(), Filename: filename, Status: constants.SessionUploaded,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	m.rows[s.ID] = s
	return s, nil
}

func (m *memSessions) Get(_ context.Context, id uuid.UUID) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSessions) List(_ context.Context) ([]*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Session, 0, len(m.rows))
	for _, s := range m.rows {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memSessions) UpdateStatus(_ context.Context, id uuid.UUID, status constants.SessionStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.Status = status
	s.UpdatedAt = time.Now()
	return nil
}

type memDocuments struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*entity.Document // by session id
}

func newMemDocuments() *memDocuments {
	return &memDocuments{rows: map[uuid.UUID]*entity.Document{}}
}

func (m *memDocuments) Create(_ context.Context, sessionID uuid.UUID, templateJSON json.RawMessage) (*entity.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := &entity.Document{
		ID: uuid.New(), SessionID: sessionID,
		TemplateJSON: templateJSON, WorkingJSON: templateJSON,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	m.rows[sessionID] = d
	return d, nil
}

func (m *memDocuments) GetBySession(_ context.Context, sessionID uuid.UUID) (*entity.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[sessionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memDocuments) UpdateWorking(_ context.Context, sessionID uuid.UUID, workingJSON json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[sessionID]
	if !ok {
		return repository.ErrNotFound
	}
	d.WorkingJSON = workingJSON
	d.UpdatedAt = time.Now()
	return nil
}

type memPlaceholders struct {
	mu   sync.Mutex
	rows []*entity.Placeholder
}

func newMemPlaceholders() *memPlaceholders { return &memPlaceholders{} }

func (m *memPlaceholders) CreateBatch(_ context.Context, phs []*entity.Placeholder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range phs {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		cp := *p
		m.rows = append(m.rows, &cp)
	}
	return nil
}

func (m *memPlaceholders) ListBySession(_ context.Context, sessionID uuid.UUID) ([]*entity.Placeholder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Placeholder
	for _, p := range m.rows {
		if p.SessionID == sessionID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memPlaceholders) GetByKey(_ context.Context, sessionID uuid.UUID, key string) (*entity.Placeholder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.rows {
		if p.SessionID == sessionID && p.Key == key {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memPlaceholders) GetByID(_ context.Context, id uuid.UUID) (*entity.Placeholder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.rows {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memPlaceholders) SetValue(_ context.Context, sessionID uuid.UUID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.rows {
		if p.SessionID == sessionID && p.Key == key {
			v := value
			p.Value = &v
			p.IsFilled = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memPlaceholders) ClearValue(_ context.Context, sessionID uuid.UUID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.rows {
		if p.SessionID == sessionID && p.Key == key {
			p.Value = nil
			p.IsFilled = false
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memPlaceholders) CountUnfilled(_ context.Context, sessionID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, p := range m.rows {
		if p.SessionID == sessionID && !p.IsFilled {
			n++
		}
	}
	return n, nil
}

type memMessages struct {
	mu   sync.Mutex
	rows []*entity.Message
}

func newMemMessages() *memMessages { return &memMessages{} }

func (m *memMessages) Create(_ context.Context, sessionID uuid.UUID, role, content string) (*entity.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := &entity.Message{
		ID: uuid.New(), SessionID: sessionID, Role: role, Content: content, CreatedAt: time.Now(),
	}
	m.rows = append(m.rows, msg)
	return msg, nil
}

func (m *memMessages) ListBySession(_ context.Context, sessionID uuid.UUID) ([]*entity.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Message
	for _, msg := range m.rows {
		if msg.SessionID == sessionID {
			cp := *msg
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memSuggestions struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*entity.Suggestion
}

func newMemSuggestions() *memSuggestions {
	return &memSuggestions{rows: map[uuid.UUID]*entity.Suggestion{}}
}

func (m *memSuggestions) Create(_ context.Context, s *entity.Suggestion) (*entity.Suggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = constants.SuggestionPending
	}
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
	cp := *s
	m.rows[s.ID] = &cp
	return s, nil
}

func (m *memSuggestions) Get(_ context.Context, id uuid.UUID) (*entity.Suggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSuggestions) ListPending(_ context.Context, sessionID uuid.UUID) ([]*entity.Suggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Suggestion
	for _, s := range m.rows {
		if s.SessionID == sessionID && s.Status == constants.SuggestionPending {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memSuggestions) UpdateStatus(_ context.Context, id uuid.UUID, status constants.SuggestionStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.Status = status
	s.UpdatedAt = time.Now()
	return nil
}
