package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/jeelTecheniac/chat-demo-backend/internal/auth"
	"github.com/jeelTecheniac/chat-demo-backend/internal/handlers"
	"github.com/jeelTecheniac/chat-demo-backend/internal/middleware"
	"github.com/jeelTecheniac/chat-demo-backend/internal/ws"
)

type Deps struct {
	Users   *handlers.UserHandler
	Friends *handlers.FriendHandler
	Orgs    *handlers.OrgHandler
	Chats   *handlers.ChatHandler
	Hub     *ws.Hub
	Tokens  *auth.TokenManager
	Log     *zap.SugaredLogger
}

func Register(app *fiber.App, d Deps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	requireAuth := middleware.Auth(d.Tokens)

	user := app.Group("/api/v1/user")
	user.Post("/new", d.Users.Register)
	user.Post("/login", d.Users.Login)
	user.Get("/me", requireAuth, d.Users.Me)
	user.Get("/logout", requireAuth, d.Users.Logout)
	user.Get("/search", requireAuth, d.Users.Search)
	user.Get("/friends", requireAuth, d.Users.Friends)
	user.Put("/sendrequest", requireAuth, d.Friends.SendRequest)
	user.Put("/acceptrequest", requireAuth, d.Friends.AcceptRequest)
	user.Get("/notifications", requireAuth, d.Friends.Notifications)

	org := app.Group("/api/v1/org", requireAuth)
	org.Post("/new", d.Orgs.Create)
	org.Put("/join", d.Orgs.Join)
	org.Get("/my", d.Orgs.Owned)
	org.Get("/joined", d.Orgs.Joined)

	chat := app.Group("/api/v1/chat", requireAuth)
	chat.Post("/group", d.Chats.CreateGroup)

	app.Use("/ws", ws.Upgrade)
	app.Get("/ws", ws.Handler(d.Hub, d.Tokens, d.Log))
}
