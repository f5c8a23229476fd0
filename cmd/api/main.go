package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/lancehub-id/lancehub_be/internal/config"
	"github.com/lancehub-id/lancehub_be/internal/db"
	"github.com/lancehub-id/lancehub_be/internal/handlers"
	"github.com/lancehub-id/lancehub_be/internal/middleware"
	"github.com/lancehub-id/lancehub_be/internal/services/ranking"
)

func main() {
	_ = godotenv.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	// Redis is optional; without it listing requests just hit the DB.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logrus.WithField("error", err.Error()).Warn("Redis not reachable, listing cache disabled")
			rdb = nil
		}
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	authH := &handlers.AuthHandler{
		DB:        gdb,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
	}
	googleH := &handlers.GoogleOAuthHandler{
		DB:              gdb,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}

	rankingService := ranking.NewRankingService(gdb)

	userH := handlers.NewUserHandler(gdb)
	projectH := handlers.NewProjectHandler(gdb, rdb)
	bidH := handlers.NewBidHandler(gdb)
	reviewH := handlers.NewReviewHandler(gdb, rankingService)

	api := app.Group("/api")

	// public
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)
	api.Get("/users/:id", userH.GetProfile)
	api.Get("/projects", projectH.List)
	api.Get("/projects/:id", projectH.Get)

	// protected (JWT)
	protected := api.Group("/",
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Get("/profile", userH.Me)
	protected.Put("/profile", userH.UpdateMe)

	protected.Post("/projects", projectH.Create)
	protected.Put("/projects/:id", projectH.Update)
	protected.Post("/projects/:id/accept-bid", projectH.AcceptBid)

	protected.Post("/projects/:id/bids",
		middleware.RequireFreelancer(),
		bidH.Place,
	)
	protected.Post("/projects/:id/reviews", reviewH.Create)

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
