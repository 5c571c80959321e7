package main

import (
	"flag"
	"log"
	"strings"

	"github.com/benbeisheim/chess-backend/internal/config"
	"github.com/benbeisheim/chess-backend/internal/controller"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	addr := flag.String("addr", "", "listen address, overrides the config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	setup, err := cfg.Setup()
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowOrigins, ", "),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager, setup)

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	controller.RegisterRoutes(app, gameController, wsController, websocket.Config{
		ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: cfg.WebSocket.WriteBufferSize,
		Origins:         cfg.AllowOrigins,
	})

	log.Printf("chess server listening on %s", cfg.Addr)
	log.Fatal(app.Listen(cfg.Addr))
}
