package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jeelTecheniac/chat-demo-backend/internal/middleware"
	"github.com/jeelTecheniac/chat-demo-backend/internal/services"
)

type OrgHandler struct {
	svc *services.OrgService
}

func NewOrgHandler(svc *services.OrgService) *OrgHandler {
	return &OrgHandler{svc: svc}
}

func (h *OrgHandler) Create(c *fiber.Ctx) error {
	var req struct {
		OrganizationName string `json:"organizationName"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	org, err := h.svc.CreateOrganization(c.Context(), middleware.UserID(c), req.OrganizationName)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "organization": org})
}

func (h *OrgHandler) Join(c *fiber.Ctx) error {
	var req struct {
		OrganizationID string `json:"organizationId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := h.svc.JoinOrganization(c.Context(), middleware.UserID(c), req.OrganizationID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Organization joined"})
}

func (h *OrgHandler) Owned(c *fiber.Ctx) error {
	orgs, err := h.svc.ListOwnedOrganizations(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "organizations": orgs})
}

func (h *OrgHandler) Joined(c *fiber.Ctx) error {
	orgs, err := h.svc.ListJoinedOrganizations(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "organizations": orgs})
}
