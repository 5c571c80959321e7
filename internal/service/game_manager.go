package service

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/model"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// GameManager owns every live game, keyed by ID.
type GameManager struct {
	games map[string]*model.Game
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
	}
}

func (gm *GameManager) CreateGame(gameID string, setup model.Setup) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return fmt.Errorf("%w: %s", ErrGameExists, gameID)
	}

	game, err := model.NewGame(gameID, setup)
	if err != nil {
		return err
	}
	gm.games[gameID] = game
	log.Printf("created game %s (%s to move)", gameID, setup.StartingSide)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	return game, nil
}

// RemoveGame forgets a game. Open connections are left to close on their own.
func (gm *GameManager) RemoveGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; !exists {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	delete(gm.games, gameID)
	return nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.PlayerColor, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}

	return game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	return game.GetState(), nil
}

func (gm *GameManager) Diagram(gameID string) (string, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}

	return game.Diagram(), nil
}

func (gm *GameManager) LegalMoves(gameID string, from chess.Pos) ([]model.Position, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}

	return game.LegalMoves(from), nil
}

// MakeMove looks the game up under the read lock only; the game serializes
// its own moves.
func (gm *GameManager) MakeMove(gameID string, playerID string, move model.WSMove) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	return game.MakeMove(playerID, move)
}

func (gm *GameManager) Promote(gameID string, playerID string, piece model.PieceType) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	return game.Promote(playerID, piece)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}

	game.UnregisterConnection(playerID, conn)
}
