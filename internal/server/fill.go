package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docfill/constants"
	"docfill/internal/common"
	"docfill/internal/document"
)

type fillRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type fillBulkRequest struct {
	Values map[string]string `json:"values"`
}

func (s *Service) fill(c *gin.Context) {
	id, ok := s.sessionID(c)
	if !ok {
		return
	}
	var req fillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.InvalidInputError("invalid JSON body"))
		return
	}
	v := common.NewValidator()
	v.Field("key", req.Key, common.Required, common.PlaceholderKey)
	v.Field("value", req.Value, common.Required)
	if err := common.ValidateAndReturnError(v); err != nil {
		respondError(c, err)
		return
	}

	mu := s.sessionLock(id)
	mu.Lock()
	defer mu.Unlock()

	ctx := c.Request.Context()
	if err := s.setValues(ctx, id, map[string]string{req.Key: req.Value}); err != nil {
		respondError(c, err)
		return
	}
	s.respondFillState(c, id)
}

func (s *Service) fillBulk(c *gin.Context) {
	id, ok := s.sessionID(c)
	if !ok {
		return
	}
	var req fillBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.InvalidInputError("invalid JSON body"))
		return
	}
	if len(req.Values) == 0 {
		respondError(c, common.InvalidInputError("values must not be empty"))
		return
	}
	for key, value := range req.Values {
		v := common.NewValidator()
		v.Field("key", key, common.Required, common.PlaceholderKey)
		v.Field("value", value, common.Required)
		if err := common.ValidateAndReturnError(v); err != nil {
			respondError(c, err)
			return
		}
	}

	mu := s.sessionLock(id)
	mu.Lock()
	defer mu.Unlock()

	ctx := c.Request.Context()
	if err := s.setValues(ctx, id, req.Values); err != nil {
		respondError(c, err)
		return
	}
	s.respondFillState(c, id)
}

// setValues stores the values, rebuilds the working document from the
// pristine template, and advances the session status.
func (s *Service) setValues(ctx context.Context, sessionID uuid.UUID, values map[string]string) error {
	for key, value := range values {
		if err := s.placeholders.SetValue(ctx, sessionID, key, value); err != nil {
			return mapRepoErr(err, fmt.Sprintf("placeholder %q", key))
		}
	}
	return s.rebuildWorking(ctx, sessionID)
}

// rebuildWorking re-substitutes every filled value into a fresh copy of the
// template so repeated fills of the same key overwrite cleanly.
func (s *Service) rebuildWorking(ctx context.Context, sessionID uuid.UUID) error {
	doc, err := s.documents.GetBySession(ctx, sessionID)
	if err != nil {
		return mapRepoErr(err, "document")
	}
	template, err := document.Parse(doc.TemplateJSON)
	if err != nil {
		return common.WrapError(err, "parse template")
	}

	phs, err := s.placeholders.ListBySession(ctx, sessionID)
	if err != nil {
		return common.WrapError(err, "list placeholders")
	}
	mapping := map[string]string{}
	unfilled := 0
	for _, p := range phs {
		if p.IsFilled && p.Value != nil {
			mapping[p.Key] = *p.Value
		} else {
			unfilled++
		}
	}

	working := template.Clone()
	working.ReplaceAll(mapping)
	encoded, err := working.Encode()
	if err != nil {
		return common.WrapError(err, "encode document")
	}
	if err := s.documents.UpdateWorking(ctx, sessionID, encoded); err != nil {
		return mapRepoErr(err, "document")
	}

	status := constants.SessionInProgress
	if unfilled == 0 {
		status = constants.SessionCompleted
	}
	if err := s.sessions.UpdateStatus(ctx, sessionID, status); err != nil {
		return mapRepoErr(err, "session")
	}
	return nil
}

func (s *Service) respondFillState(c *gin.Context, sessionID uuid.UUID) {
	ctx := c.Request.Context()
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		respondError(c, mapRepoErr(err, "session"))
		return
	}
	unfilled, err := s.placeholders.CountUnfilled(ctx, sessionID)
	if err != nil {
		respondError(c, common.WrapError(err, "count placeholders"))
		return
	}
	respondOK(c, gin.H{"session": sess, "unfilled": unfilled})
}

type suggestionActionRequest struct {
	SuggestionID string `json:"suggestion_id"`
}

func (s *Service) applySuggestion(c *gin.Context) {
	s.resolveSuggestion(c, constants.SuggestionAccepted)
}

func (s *Service) rejectSuggestion(c *gin.Context) {
	s.resolveSuggestion(c, constants.SuggestionRejected)
}

func (s *Service) resolveSuggestion(c *gin.Context, status constants.SuggestionStatus) {
	id, ok := s.sessionID(c)
	if !ok {
		return
	}
	var req suggestionActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.InvalidInputError("invalid JSON body"))
		return
	}
	sugID, err := uuid.Parse(req.SuggestionID)
	if err != nil {
		respondError(c, common.InvalidInputError("suggestion_id must be a UUID"))
		return
	}

	mu := s.sessionLock(id)
	mu.Lock()
	defer mu.Unlock()

	ctx := c.Request.Context()
	sug, err := s.suggestions.Get(ctx, sugID)
	if err != nil {
		respondError(c, mapRepoErr(err, "suggestion"))
		return
	}
	if sug.SessionID != id {
		respondError(c, common.NotFoundError("suggestion not found"))
		return
	}
	if sug.Status != constants.SuggestionPending {
		respondError(c, common.NewAppError("CONFLICT", "suggestion already resolved", common.ErrConflict))
		return
	}

	if err := s.suggestions.UpdateStatus(ctx, sugID, status); err != nil {
		respondError(c, mapRepoErr(err, "suggestion"))
		return
	}

	if status == constants.SuggestionAccepted {
		ph, err := s.placeholders.GetByID(ctx, sug.PlaceholderID)
		if err != nil {
			respondError(c, mapRepoErr(err, "placeholder"))
			return
		}
		if err := s.setValues(ctx, id, map[string]string{ph.Key: sug.Value}); err != nil {
			respondError(c, err)
			return
		}
	}
	s.respondFillState(c, id)
}

func (s *Service) exportSession(c *gin.Context) {
	id, ok := s.sessionID(c)
	if !ok {
		return
	}
	out, err := s.exporter.ExportSessionXLSX(c.Request.Context(), id)
	if err != nil {
		respondError(c, mapRepoErr(err, "session"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="session-%s.xlsx"`, id))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", out)
}
