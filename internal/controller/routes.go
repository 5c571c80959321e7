package controller

import (
	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the REST and websocket endpoints on app.
func RegisterRoutes(app *fiber.App, gameController *GameController, wsController *WebSocketController, wsConfig websocket.Config) {
	// WebSocket routes
	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, wsConfig))

	// REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves", gameController.GetLegalMoves)
	gameRoutes.Get("/:gameId/board", gameController.GetBoard)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
	gameRoutes.Post("/:gameId/promote", gameController.Promote)
}
