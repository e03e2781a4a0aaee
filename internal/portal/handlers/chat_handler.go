package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/medchain/portal/internal/portal/dto"
)

// ChatUpstream is the slice of the upstream client the chat view needs.
type ChatUpstream interface {
	AskChatbot(ctx context.Context, credential, recordID, message string) (json.RawMessage, error)
}

// ChatHandler forwards record-scoped questions to the chat assistant. The
// assistant's reasoning is opaque to the portal; answers pass through as-is.
type ChatHandler struct {
	upstream ChatUpstream
}

// NewChatHandler constructs handler.
func NewChatHandler(upstream ChatUpstream) *ChatHandler {
	return &ChatHandler{upstream: upstream}
}

// Ask handles POST /chat.
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Message == "" {
		return fiber.NewError(http.StatusBadRequest, "message required")
	}

	_, _, cred, err := currentSession(c)
	if err != nil {
		return err
	}

	payload, err := h.upstream.AskChatbot(c.UserContext(), cred, req.RecordID, req.Message)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": payload})
}
