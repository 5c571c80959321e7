package controller

import (
	"errors"
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// createGameRequest optionally overrides the default setup. Either field may
// be left out.
type createGameRequest struct {
	StartingSide string   `json:"startingSide"`
	Layout       []string `json:"layout"`
}

// statusOf maps service and session errors to HTTP statuses.
func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotInGame), errors.Is(err, model.ErrNotAuthorized):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrGameOver),
		errors.Is(err, model.ErrPromotionPending),
		errors.Is(err, model.ErrNoPromotion),
		errors.Is(err, service.ErrGameExists):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrIllegalMove),
		errors.Is(err, model.ErrInvalidPromotion),
		errors.Is(err, chess.ErrInvalidSquare),
		errors.Is(err, chess.ErrInvalidLayout):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func sendError(c *fiber.Ctx, err error) error {
	return c.Status(statusOf(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var override *model.Setup
	if len(c.Body()) > 0 {
		var req createGameRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		setup := gc.gameService.DefaultSetup()
		if req.StartingSide != "" {
			side, ok := chess.ParseSide(req.StartingSide)
			if !ok {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": fmt.Sprintf("unknown side %q", req.StartingSide),
				})
			}
			setup.StartingSide = side
		}
		if len(req.Layout) > 0 {
			setup.Layout = req.Layout
		}
		override = &setup
	}

	gameID, err := gc.gameService.CreateGame(override)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(gameState)
}

// GetLegalMoves answers ?from=e2 with the check-safe destinations of the
// piece on that square.
func (gc *GameController) GetLegalMoves(c *fiber.Ctx) error {
	from, err := chess.ParsePos(c.Query("from"))
	if err != nil {
		return sendError(c, err)
	}

	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), from)
	if err != nil {
		return sendError(c, err)
	}
	if moves == nil {
		moves = []model.Position{}
	}

	return c.JSON(fiber.Map{
		"from":  from.String(),
		"moves": moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move model.WSMove
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move",
		})
	}

	gameID := c.Params("gameId")
	if err := gc.gameService.HandleMove(gameID, c.Locals("playerID").(string), move); err != nil {
		return sendError(c, err)
	}
	return gc.GetGameState(c)
}

func (gc *GameController) Promote(c *fiber.Ctx) error {
	var promotion model.WSPromotion
	if err := c.BodyParser(&promotion); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid promotion",
		})
	}

	gameID := c.Params("gameId")
	if err := gc.gameService.HandlePromotion(gameID, c.Locals("playerID").(string), promotion.Piece); err != nil {
		return sendError(c, err)
	}
	return gc.GetGameState(c)
}

// GetBoard returns the text diagram of the board.
func (gc *GameController) GetBoard(c *fiber.Ctx) error {
	diagram, err := gc.gameService.Diagram(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}

	return c.SendString(diagram)
}
