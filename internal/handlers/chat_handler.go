package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jeelTecheniac/chat-demo-backend/internal/middleware"
	"github.com/jeelTecheniac/chat-demo-backend/internal/services"
)

type ChatHandler struct {
	svc *services.ChatService
}

func NewChatHandler(svc *services.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

func (h *ChatHandler) CreateGroup(c *fiber.Ctx) error {
	var req struct {
		Name    string   `json:"name"`
		Members []string `json:"members"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	chat, err := h.svc.CreateGroupChat(c.Context(), middleware.UserID(c), req.Name, req.Members)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "chat": chat})
}
