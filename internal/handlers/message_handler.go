package handlers

import (
	"context"
	"errors"
	"strings"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/kumarharsh15334/alumni-connect-backend/internal/models"
	"github.com/kumarharsh15334/alumni-connect-backend/internal/services"
	chatws "github.com/kumarharsh15334/alumni-connect-backend/internal/websocket"
)

type messagingApplicationService interface {
	SendMessage(ctx context.Context, fromIdentity, toIdentity, body string) (*services.MessageDelivery, error)
	ListThreads(ctx context.Context, identity, role string) ([]models.ThreadSummary, error)
	OpenThread(ctx context.Context, identity, peerIdentity string) ([]models.ThreadMessage, error)
}

type MessageHandler struct {
	service messagingApplicationService
	hub     *chatws.Hub
}

func NewMessageHandler(service messagingApplicationService, hub *chatws.Hub) *MessageHandler {
	return &MessageHandler{
		service: service,
		hub:     hub,
	}
}

type sendMessageRequest struct {
	Body string `json:"body"`
}

func (h *MessageHandler) ListThreads(c *fiber.Ctx) error {
	threads, err := h.service.ListThreads(c.Context(), c.Params("identity"), c.Params("role"))
	if err != nil {
		return mapMessageError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"threads": threads})
}

// OpenThread returns the whole conversation and, as a side effect, marks
// the peer's unread messages to the caller as read.
func (h *MessageHandler) OpenThread(c *fiber.Ctx) error {
	messages, err := h.service.OpenThread(c.Context(), c.Params("identity"), c.Params("peer"))
	if err != nil {
		return mapMessageError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"messages": messages})
}

func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Body) == "" {
		return respondError(c, fiber.StatusBadRequest, "Missing body")
	}

	delivery, err := h.service.SendMessage(c.Context(), c.Params("identity"), c.Params("peer"), req.Body)
	if err != nil {
		return mapMessageError(c, err)
	}

	h.hub.Broadcast(&chatws.Event{
		Type:      "message",
		Sender:    delivery.SenderIdentity,
		Recipient: delivery.RecipientIdentity,
		Body:      delivery.Message.Content,
		Timestamp: services.FormatChatTimestamp(delivery.Message.SentAt),
	})

	return respond(c, fiber.StatusCreated, fiber.Map{
		"message": fiber.Map{
			"sender":    delivery.SenderIdentity,
			"body":      delivery.Message.Content,
			"timestamp": delivery.Message.SentAt,
		},
	})
}

// RequireSocketUpgrade guards the websocket route: the connection must be an
// upgrade request carrying the caller's identity.
func (h *MessageHandler) RequireSocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return respondError(c, fiber.StatusUpgradeRequired, "WebSocket upgrade required")
	}
	identity := strings.TrimSpace(c.Query("identity"))
	if identity == "" {
		return respondError(c, fiber.StatusBadRequest, "identity is required")
	}
	c.Locals("identity", identity)
	return c.Next()
}

func (h *MessageHandler) HandleSocket(conn *websocket.Conn) {
	identity, _ := conn.Locals("identity").(string)
	client := chatws.NewClient(h.hub, conn, identity)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump(h.service)
}

func mapMessageError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, "Invalid request")
	case errors.Is(err, services.ErrProfileNotFound):
		return respondError(c, fiber.StatusNotFound, "Profile not found")
	default:
		return respondError(c, fiber.StatusInternalServerError, "Failed to process message request")
	}
}
