package server

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"docfill/constants"
	"docfill/internal/common"
	"docfill/internal/entity"
)

type chatRequest struct {
	Message string `json:"message"`
}

type suggestionView struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

type chatResponse struct {
	Reply       string           `json:"reply"`
	Suggestions []suggestionView `json:"suggestions"`
	Pending     []string         `json:"pending"`
}

func (s *Service) chat(c *gin.Context) {
	id, ok := s.sessionID(c)
	if !ok {
		return
	}
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.InvalidInputError("invalid JSON body"))
		return
	}
	v := common.NewValidator()
	v.Field("message", req.Message, common.Required)
	if err := common.ValidateAndReturnError(v); err != nil {
		respondError(c, err)
		return
	}

	mu := s.sessionLock(id)
	mu.Lock()
	defer mu.Unlock()

	ctx := c.Request.Context()
	if _, err := s.sessions.Get(ctx, id); err != nil {
		respondError(c, mapRepoErr(err, "session"))
		return
	}

	userMsg, err := s.messages.Create(ctx, id, constants.RoleUser, req.Message)
	if err != nil {
		respondError(c, common.WrapError(err, "store message"))
		return
	}

	phs, err := s.placeholders.ListBySession(ctx, id)
	if err != nil {
		respondError(c, common.WrapError(err, "list placeholders"))
		return
	}
	byKey := make(map[string]*entity.Placeholder, len(phs))
	var pending []string
	for _, p := range phs {
		byKey[p.Key] = p
		if !p.IsFilled {
			pending = append(pending, p.Key)
		}
	}

	extracted := s.pipeline.Extract(ctx, req.Message, pending)

	views := make([]suggestionView, 0, len(extracted))
	for _, key := range pending {
		value, found := extracted[key]
		if !found {
			continue
		}
		sug, err := s.suggestions.Create(ctx, &entity.Suggestion{
			SessionID:     id,
			PlaceholderID: byKey[key].ID,
			MessageID:     &userMsg.ID,
			Value:         value,
		})
		if err != nil {
			respondError(c, common.WrapError(err, "store suggestion"))
			return
		}
		views = append(views, suggestionView{ID: sug.ID.String(), Key: key, Value: value})
	}

	accepted := make(map[string]string, len(views))
	for _, v := range views {
		accepted[v.Key] = v.Value
	}
	reply := buildReply(accepted, len(pending))
	if _, err := s.messages.Create(ctx, id, constants.RoleAssistant, reply); err != nil {
		respondError(c, common.WrapError(err, "store reply"))
		return
	}

	s.logger.Info("chat.turn",
		"req_id", common.RequestIDFromContext(ctx),
		"session_id", id,
		"pending", len(pending),
		"suggested", len(views),
	)
	respondOK(c, chatResponse{Reply: reply, Suggestions: views, Pending: pending})
}

func buildReply(accepted map[string]string, pendingCount int) string {
	if len(accepted) == 0 {
		if pendingCount == 0 {
			return "All placeholders are already filled."
		}
		return "No valid placeholder values detected."
	}
	b, _ := json.MarshalIndent(accepted, "", "  ")
	return "Suggested values: " + string(b)
}
