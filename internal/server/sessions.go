package server

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"

	"docfill/internal/common"
	"docfill/internal/discovery"
	"docfill/internal/document"
	"docfill/internal/entity"
	"docfill/internal/placeholder"
	"docfill/internal/repository"
)

type createSessionRequest struct {
	Filename string          `json:"filename"`
	Document json.RawMessage `json:"document"`
}

type placeholderView struct {
	Key      string `json:"key"`
	Type     string `json:"type"`
	Hint     string `json:"hint"`
	Position int    `json:"position"`
	IsFilled bool   `json:"is_filled"`
	Value    string `json:"value,omitempty"`
}

type createSessionResponse struct {
	Session      *entity.Session   `json:"session"`
	Placeholders []placeholderView `json:"placeholders"`
}

func (s *Service) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.InvalidInputError("invalid JSON body"))
		return
	}
	v := common.NewValidator()
	v.Field("filename", req.Filename, common.Required)
	if err := common.ValidateAndReturnError(v); err != nil {
		respondError(c, err)
		return
	}
	doc, err := document.Parse(req.Document)
	if err != nil {
		respondError(c, common.InvalidInputError("document must be parsed document JSON"))
		return
	}
	doc.Filename = req.Filename

	keys := discovery.Run(doc)

	ctx := c.Request.Context()
	sess, err := s.sessions.Create(ctx, req.Filename)
	if err != nil {
		respondError(c, common.WrapError(err, "create session"))
		return
	}

	encoded, err := doc.Encode()
	if err != nil {
		respondError(c, common.WrapError(err, "encode document"))
		return
	}
	if _, err := s.documents.Create(ctx, sess.ID, encoded); err != nil {
		respondError(c, common.WrapError(err, "store document"))
		return
	}

	phs := make([]*entity.Placeholder, 0, len(keys))
	views := make([]placeholderView, 0, len(keys))
	for i, key := range keys {
		t := placeholder.Classify(key)
		hint := placeholder.Hint(key)
		phs = append(phs, &entity.Placeholder{
			SessionID:     sess.ID,
			Key:           key,
			NormalizedKey: placeholder.Normalize(key),
			Type:          t,
			Hint:          hint,
			Position:      i,
		})
		views = append(views, placeholderView{Key: key, Type: string(t), Hint: hint, Position: i})
	}
	if err := s.placeholders.CreateBatch(ctx, phs); err != nil {
		respondError(c, common.WrapError(err, "store placeholders"))
		return
	}

	s.logger.Info("session.created",
		"req_id", common.RequestIDFromContext(ctx),
		"session_id", sess.ID,
		"placeholders", len(keys),
	)
	respondCreated(c, createSessionResponse{Session: sess, Placeholders: views})
}

func (s *Service) listSessions(c *gin.Context) {
	out, err := s.sessions.List(c.Request.Context())
	if err != nil {
		respondError(c, common.WrapError(err, "list sessions"))
		return
	}
	respondOK(c, gin.H{"sessions": out})
}

func (s *Service) getSession(c *gin.Context) {
	id, ok := s.sessionID(c)
	if !ok {
		return
	}
	sess, err := s.sessions.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, mapRepoErr(err, "session"))
		return
	}
	respondOK(c, gin.H{"session": sess})
}

func (s *Service) listPlaceholders(c *gin.Context) {
	id, ok := s.sessionID(c)
	if !ok {
		return
	}
	phs, err := s.placeholders.ListBySession(c.Request.Context(), id)
	if err != nil {
		respondError(c, common.WrapError(err, "list placeholders"))
		return
	}
	views := make([]placeholderView, 0, len(phs))
	for _, p := range phs {
		pv := placeholderView{
			Key:      p.Key,
			Type:     string(p.Type),
			Hint:     p.Hint,
			Position: p.Position,
			IsFilled: p.IsFilled,
		}
		if p.Value != nil {
			pv.Value = *p.Value
		}
		views = append(views, pv)
	}
	respondOK(c, gin.H{"placeholders": views})
}

func (s *Service) getDocument(c *gin.Context) {
	id, ok := s.sessionID(c)
	if !ok {
		return
	}
	doc, err := s.documents.GetBySession(c.Request.Context(), id)
	if err != nil {
		respondError(c, mapRepoErr(err, "document"))
		return
	}
	respondOK(c, gin.H{"document": doc.WorkingJSON})
}

func (s *Service) listMessages(c *gin.Context) {
	id, ok := s.sessionID(c)
	if !ok {
		return
	}
	msgs, err := s.messages.ListBySession(c.Request.Context(), id)
	if err != nil {
		respondError(c, common.WrapError(err, "list messages"))
		return
	}
	respondOK(c, gin.H{"messages": msgs})
}

func mapRepoErr(err error, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return common.NotFoundError(what + " not found")
	}
	return common.WrapError(err, "load "+what)
}
