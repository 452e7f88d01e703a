package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/event-planner/internal/ai"
	"github.com/iliyamo/event-planner/internal/config"
	"github.com/iliyamo/event-planner/internal/database"
	"github.com/iliyamo/event-planner/internal/handler"
	"github.com/iliyamo/event-planner/internal/queue"
	"github.com/iliyamo/event-planner/internal/repository"
	"github.com/iliyamo/event-planner/internal/router"
	queuepublisher "github.com/iliyamo/event-planner/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using system environment")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	users := repository.NewUserRepo(db)
	events := repository.NewEventRepo(db)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, public event cache disabled")
	}
	cacheCfg := config.LoadCacheConfig()

	// Background consumer that appends guest registrations to
	// logs/registration.log; it reconnects on its own if the broker drops.
	go func() { _ = queue.StartRegistrationConsumer() }()

	auth := handler.NewAuthHandler(cfg, users, events)

	eventHandler := handler.NewEventHandler(events)
	eventHandler.OwnerOnlySubresources = cfg.OwnerOnlySubresources
	eventHandler.Notify = func(ctx context.Context, ev queue.GuestRegisteredEvent) {
		_ = queuepublisher.PublishGuestRegistered(ctx, ev)
	}

	aiHandler := handler.NewAIHandler(ai.NewClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL))

	e := echo.New()
	e.Use(echomw.CORS())

	router.RegisterRoutes(e)
	router.RegisterUsers(e, auth, cfg.JWTSecret, users)
	router.RegisterEvents(e, eventHandler, cfg.JWTSecret, users, rdb, cacheCfg)
	router.RegisterAI(e, aiHandler, cfg.JWTSecret, users)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
