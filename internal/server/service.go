package server

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docfill/internal/common"
	"docfill/internal/export"
	"docfill/internal/extract"
	"docfill/internal/repository"
)

// Service wires the HTTP handlers to repositories and the extraction
// pipeline. Chat turns for one session are serialized through a per-session
// mutex; different sessions proceed independently.
type Service struct {
	sessions     repository.SessionRepository
	documents    repository.DocumentRepository
	placeholders repository.PlaceholderRepository
	messages     repository.MessageRepository
	suggestions  repository.SuggestionRepository
	pipeline     *extract.Pipeline
	exporter     *export.Service
	logger       *slog.Logger

	locks sync.Map // session id -> *sync.Mutex
}

type Deps struct {
	Sessions     repository.SessionRepository
	Documents    repository.DocumentRepository
	Placeholders repository.PlaceholderRepository
	Messages     repository.MessageRepository
	Suggestions  repository.SuggestionRepository
	Pipeline     *extract.Pipeline
	Exporter     *export.Service
}

func NewService(deps Deps, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		sessions:     deps.Sessions,
		documents:    deps.Documents,
		placeholders: deps.Placeholders,
		messages:     deps.Messages,
		suggestions:  deps.Suggestions,
		pipeline:     deps.Pipeline,
		exporter:     deps.Exporter,
		logger:       logger,
	}
}

func (s *Service) sessionLock(id uuid.UUID) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Router builds the gin engine with all routes registered.
func (s *Service) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestID())
	router.Use(s.accessLog())

	router.GET("/healthcheck", func(c *gin.Context) {
		respondOK(c, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/sessions", s.createSession)
		api.GET("/sessions", s.listSessions)
		api.GET("/sessions/:id", s.getSession)
		api.GET("/sessions/:id/placeholders", s.listPlaceholders)
		api.GET("/sessions/:id/document", s.getDocument)
		api.GET("/sessions/:id/messages", s.listMessages)
		api.POST("/sessions/:id/chat", s.chat)
		api.POST("/sessions/:id/fill", s.fill)
		api.POST("/sessions/:id/fill-bulk", s.fillBulk)
		api.POST("/sessions/:id/suggestions/apply", s.applySuggestion)
		api.POST("/sessions/:id/suggestions/reject", s.rejectSuggestion)
		api.GET("/sessions/:id/export", s.exportSession)
	}

	return router
}

func (s *Service) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), rid))
		c.Header("X-Request-ID", rid)
		c.Next()
	}
}

func (s *Service) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http.request",
			"req_id", common.RequestIDFromContext(c.Request.Context()),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}
}

// sessionID parses the :id path param, writing the error response itself on
// failure.
func (s *Service) sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, common.InvalidInputError("session id must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}
