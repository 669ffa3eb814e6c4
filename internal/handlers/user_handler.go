package handlers

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jeelTecheniac/chat-demo-backend/internal/auth"
	"github.com/jeelTecheniac/chat-demo-backend/internal/middleware"
	"github.com/jeelTecheniac/chat-demo-backend/internal/models"
	"github.com/jeelTecheniac/chat-demo-backend/internal/services"
)

type UserHandler struct {
	svc      *services.UserService
	tokens   *auth.TokenManager
	tokenTTL time.Duration
}

func NewUserHandler(svc *services.UserService, tokens *auth.TokenManager, tokenTTL time.Duration) *UserHandler {
	return &UserHandler{svc: svc, tokens: tokens, tokenTTL: tokenTTL}
}

// Register handles the multipart signup form: profile fields plus the
// avatar file.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	in := services.RegisterInput{
		Name:           c.FormValue("name"),
		Username:       c.FormValue("username"),
		Password:       c.FormValue("password"),
		Bio:            c.FormValue("bio"),
		OrganizationID: c.FormValue("organization"),
	}

	if file, err := c.FormFile("avatar"); err == nil {
		f, err := file.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not read avatar upload")
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not read avatar upload")
		}
		in.Avatar = data
		in.AvatarType = file.Header.Get("Content-Type")
	}

	user, err := h.svc.Register(c.Context(), in)
	if err != nil {
		return err
	}
	return h.sendToken(c, user, fiber.StatusCreated, "User created")
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	user, err := h.svc.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return h.sendToken(c, user, fiber.StatusOK, "Welcome back, "+user.Name)
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.svc.Profile(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "user": user})
}

func (h *UserHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteNoneMode,
		Secure:   true,
	})
	return c.JSON(fiber.Map{"success": true, "message": "Logged out successfully"})
}

func (h *UserHandler) Search(c *fiber.Ctx) error {
	users, err := h.svc.SearchUsers(c.Context(), middleware.UserID(c), c.Query("name"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "users": users})
}

func (h *UserHandler) Friends(c *fiber.Ctx) error {
	friends, err := h.svc.ListFriends(c.Context(), middleware.UserID(c), c.Query("chatId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "friends": friends})
}

func (h *UserHandler) sendToken(c *fiber.Ctx, user *models.User, status int, message string) error {
	token, err := h.tokens.Generate(user.ID.Hex())
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Expires:  time.Now().Add(h.tokenTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteNoneMode,
		Secure:   true,
	})
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"token":   token,
		"user":    user,
	})
}
