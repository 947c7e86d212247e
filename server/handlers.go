package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/poiesic/grantmatch/ai"
	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/match"
)

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ChatResponse is the reply to POST /chat.
type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
}

// CorpusStatus describes the published corpus.
type CorpusStatus struct {
	Status  string     `json:"status"`
	Buyers  int        `json:"buyers"`
	Grants  int        `json:"grants"`
	BuiltAt *time.Time `json:"built_at,omitempty"`
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "grantmatch API is running"})
}

func (s *Server) handleHealth(c *gin.Context) {
	corpus := s.service.Corpus()
	if corpus == nil {
		c.JSON(http.StatusServiceUnavailable, CorpusStatus{Status: "loading"})
		return
	}
	builtAt := corpus.BuiltAt
	c.JSON(http.StatusOK, CorpusStatus{
		Status:  "ok",
		Buyers:  corpus.Buyers.Len(),
		Grants:  corpus.Grants.Len(),
		BuiltAt: &builtAt,
	})
}

func (s *Server) handleMatch(c *gin.Context) {
	topKBuyers, err := queryInt(c, "top_k_buyers", DefaultTopK)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	topKGrants, err := queryInt(c, "top_k_grants", DefaultTopK)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	var query core.RepQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		abort(c, http.StatusBadRequest, errors.New("request body is missing or invalid"))
		return
	}

	results, err := s.service.Match(c.Request.Context(), query, topKBuyers, topKGrants)
	if err != nil {
		abort(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) handleReload(c *gin.Context) {
	corpus, err := s.service.Reload(c.Request.Context())
	if err != nil {
		abort(c, statusFor(err), err)
		return
	}
	builtAt := corpus.BuiltAt
	c.JSON(http.StatusOK, CorpusStatus{
		Status:  "reloaded",
		Buyers:  corpus.Buyers.Len(),
		Grants:  corpus.Grants.Len(),
		BuiltAt: &builtAt,
	})
}

func (s *Server) handleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		abort(c, http.StatusBadRequest, errors.New("message is required"))
		return
	}

	id := req.ConversationID
	if id == "" {
		id = uuid.NewString()
	}

	user := ai.Message{Role: ai.RoleUser, Content: req.Message}
	reply, err := s.conversations.Exchange(id, user, func(history []ai.Message) (string, error) {
		return s.advisor.Reply(c.Request.Context(), history)
	})
	if err != nil {
		s.logger.Error("advisor failed", "conversation", id, "err", err)
		abort(c, http.StatusBadGateway, err)
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Response: reply, ConversationID: id})
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return v, nil
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, match.ErrIndexUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, match.ErrEmbeddingFailed):
		return http.StatusBadGateway
	case errors.Is(err, core.ErrInvalidTopK):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abort(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"detail": err.Error()})
}
