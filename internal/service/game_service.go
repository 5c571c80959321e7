package service

import (
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
	setup       model.Setup
}

// NewGameService returns a service whose games start from setup unless a
// request overrides it.
func NewGameService(gameManager *GameManager, setup model.Setup) *GameService {
	return &GameService{
		gameManager: gameManager,
		setup:       setup,
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.PlayerColor, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

// CreateGame starts a game under a fresh ID. A nil override uses the
// service's default setup.
func (gs *GameService) CreateGame(override *model.Setup) (string, error) {
	setup := gs.setup
	if override != nil {
		setup = *override
	}
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID, setup); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) DefaultSetup() model.Setup {
	return gs.setup
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) Diagram(gameID string) (string, error) {
	return gs.gameManager.Diagram(gameID)
}

func (gs *GameService) LegalMoves(gameID string, from chess.Pos) ([]model.Position, error) {
	return gs.gameManager.LegalMoves(gameID, from)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.WSMove) error {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) HandlePromotion(gameID string, playerID string, piece model.PieceType) error {
	return gs.gameManager.Promote(gameID, playerID, piece)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}
