package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jeelTecheniac/chat-demo-backend/internal/middleware"
	"github.com/jeelTecheniac/chat-demo-backend/internal/services"
)

type FriendHandler struct {
	svc *services.FriendService
}

func NewFriendHandler(svc *services.FriendService) *FriendHandler {
	return &FriendHandler{svc: svc}
}

func (h *FriendHandler) SendRequest(c *fiber.Ctx) error {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if req.UserID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "userId required")
	}
	if err := h.svc.SendFriendRequest(c.Context(), middleware.UserID(c), req.UserID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Friend request sent"})
}

func (h *FriendHandler) AcceptRequest(c *fiber.Ctx) error {
	var req struct {
		RequestID string `json:"requestId"`
		Accept    bool   `json:"accept"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if req.RequestID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "requestId required")
	}
	if err := h.svc.RespondToFriendRequest(c.Context(), req.RequestID, middleware.UserID(c), req.Accept); err != nil {
		return err
	}
	message := "Friend request rejected"
	if req.Accept {
		message = "Friend request accepted"
	}
	return c.JSON(fiber.Map{"success": true, "message": message})
}

func (h *FriendHandler) Notifications(c *fiber.Ctx) error {
	notifications, err := h.svc.ListNotifications(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "allRequests": notifications})
}
