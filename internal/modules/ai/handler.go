// Package ai is a thin pass-through to an OpenAI-compatible chat API.
// No prompt handling lives here; the upstream answer is forwarded as-is
// and upstream failures never leak their internals to the client.
package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"berrystore/internal/pkg/response"
)

var ErrUpstream = errors.New("upstream AI request failed")

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AskRequest struct {
	Question string    `json:"question" binding:"required"`
	History  []Message `json:"history"`
}

type Handler struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewHandler(apiKey, baseURL, model string) *Handler {
	return &Handler{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ai/ask", h.Ask)
}

// Ask godoc
// @Summary Ask the product assistant
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AskRequest true "Question with optional chat history"
// @Success 200 {object} map[string]string
// @Failure 400,401,500 {object} map[string]string
// @Router /api/ai/ask [post]
func (h *Handler) Ask(c *gin.Context) {
	if h.apiKey == "" {
		response.Error(c, http.StatusInternalServerError, "AI API key is not set")
		return
	}

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := h.ask(c, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "AI request failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

func (h *Handler) ask(c *gin.Context, req AskRequest) (string, error) {
	messages := append(req.History, Message{Role: "user", Content: req.Question})

	payload, err := json.Marshal(map[string]any{
		"model":    h.model,
		"messages": messages,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	upstreamReq, err := http.NewRequestWithContext(
		c.Request.Context(),
		http.MethodPost,
		h.baseURL+"/chat/completions",
		bytes.NewReader(payload),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	upstreamReq.Header.Set("Content-Type", "application/json")
	upstreamReq.Header.Set("Authorization", "Bearer "+h.apiKey)

	resp, err := h.client.Do(upstreamReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message Message `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: bad response shape", ErrUpstream)
	}

	return out.Choices[0].Message.Content, nil
}
