package handlers

import (
	"context"
	"time"

	"campus-hub/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MessageService interface {
	Start(ctx context.Context, userID uuid.UUID, req *dto.StartConversationRequest) (*dto.ConversationResponse, error)
	Conversations(ctx context.Context, userID uuid.UUID) ([]dto.ConversationResponse, error)
	Send(ctx context.Context, userID, conversationID uuid.UUID, body string) (*dto.MessageResponse, error)
	Messages(ctx context.Context, userID, conversationID uuid.UUID, before time.Time, limit int) ([]dto.MessageResponse, error)
}

type MessageHandler struct {
	msgService MessageService
	logger     *zap.Logger
}

func NewMessageHandler(msgService MessageService, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{msgService: msgService, logger: logger}
}

func (h *MessageHandler) Start(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req dto.StartConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	resp, err := h.msgService.Start(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to start conversation")
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *MessageHandler) Conversations(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	convs, err := h.msgService.Conversations(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load conversations")
	}
	return c.JSON(fiber.Map{"conversations": convs})
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	convID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	resp, err := h.msgService.Send(c.Context(), userID, convID, req.Body)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to send message")
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Messages pages with ?before=<RFC3339 timestamp>&limit=.
func (h *MessageHandler) Messages(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	convID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}
	var before time.Time
	if raw := c.Query("before"); raw != "" {
		if before, err = time.Parse(time.RFC3339Nano, raw); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid before",
			})
		}
	}
	msgs, err := h.msgService.Messages(c.Context(), userID, convID, before, queryInt(c, "limit"))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load messages")
	}
	return c.JSON(fiber.Map{"messages": msgs})
}
