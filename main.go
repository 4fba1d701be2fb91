package main

import (
	"context"
	"net/http"
	"time"

	"aidea-server/configs"
	"aidea-server/controllers"
	middleware "aidea-server/middlewares"
	"aidea-server/repository"
	"aidea-server/routes"
	service "aidea-server/services"

	fiberprometheus "github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	log "github.com/sirupsen/logrus"
)

const serviceName = "aidea-server"

func main() {
	cfg := configs.Load()

	logger := log.New()
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	if cfg.GoogleAPIKey == "" {
		logger.Fatal("GOOGLE_API_KEY not set")
	}

	// The server still starts without MongoDB; board calls then fail fast.
	var boardRepo repository.BoardRepositoryInterface
	if client, err := configs.ConnectMongo(cfg); err != nil {
		logger.WithError(err).Error("MongoDB connection failed, board storage disabled")
	} else {
		logger.Info("Connected to MongoDB")
		boardRepo = repository.NewBoardRepository(configs.BoardsCollection(client, cfg), cfg.MongoTimeout)
		if redisClient := configs.NewRedisClient(cfg); redisClient != nil {
			boardRepo = repository.NewBoardCache(boardRepo, redisClient, cfg.BoardCacheTTL, logger)
			logger.WithField("addr", cfg.RedisAddr).Info("Board cache enabled")
		}
	}

	hub := service.NewBoardHub(logger)
	boardService := service.NewBoardService(boardRepo, hub, logger)
	aiClient := service.NewGenerativeClient(cfg.AIAPIURL, cfg.GoogleAPIKey, cfg.AITimeout, &http.Client{}, logger)
	ideaService := service.NewIdeaService(aiClient)
	clusterService := service.NewClusterService()

	boardController := controllers.NewBoardController(boardService, logger)
	aiController := controllers.NewAIController(ideaService, clusterService, logger)
	socketController := controllers.NewBoardSocketController(hub, logger)

	app := fiber.New(configs.FiberConfig())

	p := fiberprometheus.New(serviceName)
	p.RegisterAt(app, "/metrics")
	app.Use(p.Middleware)
	app.Use(middleware.RequestLogger(logger))
	app.Use(middleware.UserContext(cfg.DemoUserID))

	api := app.Group("/api", cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,OPTIONS",
	}))
	routes.BoardRoutes(api, boardController)
	routes.AIRoutes(api, aiController)
	routes.WebSocketRoutes(app, socketController)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "UP",
		})
	})

	if cfg.ConsulAddress != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := configs.RegisterService(ctx, nil, cfg.ConsulAddress, configs.NewConsulService(serviceName, cfg))
		cancel()
		if err != nil {
			logger.WithError(err).Fatal("Consul service registration failed")
		}
		logger.Info("Service registered with Consul")
	}

	logger.Infof("Starting server on port %s...", cfg.Port)
	if err := app.Listen(cfg.ListenAddr()); err != nil {
		logger.WithError(err).Fatal("Failed to start server")
	}
}
