package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/jeelTecheniac/chat-demo-backend/internal/apperr"
	"github.com/jeelTecheniac/chat-demo-backend/internal/auth"
	cfgpkg "github.com/jeelTecheniac/chat-demo-backend/internal/config"
	"github.com/jeelTecheniac/chat-demo-backend/internal/database"
	"github.com/jeelTecheniac/chat-demo-backend/internal/handlers"
	"github.com/jeelTecheniac/chat-demo-backend/internal/logger"
	"github.com/jeelTecheniac/chat-demo-backend/internal/repository"
	"github.com/jeelTecheniac/chat-demo-backend/internal/routes"
	"github.com/jeelTecheniac/chat-demo-backend/internal/services"
	"github.com/jeelTecheniac/chat-demo-backend/internal/storage"
	"github.com/jeelTecheniac/chat-demo-backend/internal/ws"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := cfgpkg.Load(*configPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}
	if cfg.App.JWTSecret == "" {
		log.Fatal("app.jwt_secret is required")
	}

	zlog, err := logger.New(cfg.Development())
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, mongoClient, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, zlog)
	if err != nil {
		zlog.Fatalf("mongo init: %v", err)
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	var presence *ws.Presence
	if cfg.Redis.Addr != "" {
		rdb, err := database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, zlog)
		if err != nil {
			zlog.Fatalf("redis init: %v", err)
		}
		defer rdb.Close()
		presence = ws.NewPresence(rdb, cfg.Redis.Prefix)
	}

	avatars, err := storage.NewS3Store(context.Background(), cfg.S3.Region, cfg.S3.Bucket)
	if err != nil {
		zlog.Fatalf("s3 init: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserMongoRepository(db.Collection("users"))
	orgRepo := repository.NewOrganizationMongoRepository(db.Collection("organizations"))
	chatRepo := repository.NewChatMongoRepository(db.Collection("chats"))
	requestRepo := repository.NewRequestMongoRepository(db.Collection("requests"), db.Collection("chats"))

	// Real-time hub and services
	hub := ws.NewHub(presence, zlog)
	guard := services.NewOrgGuard(userRepo)
	userSvc := services.NewUserService(userRepo, orgRepo, chatRepo, avatars, cfg.Search.AllOrganizations)
	friendSvc := services.NewFriendService(userRepo, requestRepo, guard, hub, zlog)
	orgSvc := services.NewOrgService(userRepo, orgRepo)
	chatSvc := services.NewChatService(chatRepo, guard, hub)

	tokens := auth.NewTokenManager(cfg.App.JWTSecret, cfg.TokenTTL)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173, http://localhost:4173",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type, Authorization",
		AllowCredentials: true,
	}))

	routes.Register(app, routes.Deps{
		Users:   handlers.NewUserHandler(userSvc, tokens, cfg.TokenTTL),
		Friends: handlers.NewFriendHandler(friendSvc),
		Orgs:    handlers.NewOrgHandler(orgSvc),
		Chats:   handlers.NewChatHandler(chatSvc),
		Hub:     hub,
		Tokens:  tokens,
		Log:     zlog,
	})

	go func() {
		if err := app.Listen(cfg.Addr()); err != nil {
			zlog.Fatalf("server listen: %v", err)
		}
	}()
	zlog.Infof("server started on %s", cfg.Addr())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		zlog.Errorf("shutdown: %v", err)
	}
	zlog.Info("server stopped")
}

// errorHandler turns service-layer taxonomy errors and fiber errors into the
// structured failure shape; everything else becomes a 500.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"

	var ae *apperr.Error
	var fe *fiber.Error
	switch {
	case errors.As(err, &ae):
		status = ae.Status
		message = ae.Message
	case errors.As(err, &fe):
		status = fe.Code
		message = fe.Message
	}
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}
