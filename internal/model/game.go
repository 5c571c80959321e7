package model

import (
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

// Setup describes how a new game starts. An empty layout means the standard
// starting position.
type Setup struct {
	StartingSide chess.Side
	Layout       []string
}

// NewEngine builds a fresh engine game for the setup.
func (s Setup) NewEngine() (*chess.Game, error) {
	board := chess.DefaultSetup()
	if len(s.Layout) > 0 {
		var err error
		if board, err = chess.LayoutFromRows(s.Layout); err != nil {
			return nil, err
		}
	}
	return chess.NewGame(board, s.StartingSide), nil
}

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.Mutex
}

// Game is one match: the engine game plus seats and observers. The engine is
// not safe for concurrent use, so every access goes through mu.
type Game struct {
	ID          string
	mu          sync.Mutex
	engine      *chess.Game
	seats       [2]string // playerID per chess.Side, "" when open
	connections *GameConnections
}

type GameState struct {
	Sound           string                `json:"sound"`
	Board           *BoardState           `json:"boardState"`
	ToMove          PlayerColor           `json:"toMove"`
	MoveHistory     []Ply                 `json:"moveHistory"`
	CapturedPieces  CapturedPieces        `json:"capturedPieces"`
	IsCheck         bool                  `json:"isCheck"`
	LegalMoves      map[string][]Position `json:"legalMoves"` // keyed by origin square
	Result          string                `json:"result"`
	Resolve         *string               `json:"resolve"` // "checkmate" or "stalemate"
	Winner          *PlayerColor          `json:"winner"`
	Players         struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
	PromotionSquare *Position   `json:"promotionSquare"`
	LastMove        *SimpleMove `json:"lastMove"`
	Diagram         string      `json:"diagram"`
}

// CapturedPieces lists, per color, the enemy pieces that color has taken.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func NewGame(id string, setup Setup) (*Game, error) {
	engine, err := setup.NewEngine()
	if err != nil {
		return nil, err
	}
	return &Game{
		ID:          id,
		engine:      engine,
		connections: NewGameConnections(),
	}, nil
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// AddPlayer seats playerID, White first. A player already seated gets the
// same color back.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, side := range []chess.Side{chess.White, chess.Black} {
		if g.seats[side] == playerID {
			return colorOf(side), nil
		}
	}
	for _, side := range []chess.Side{chess.White, chess.Black} {
		if g.seats[side] == "" {
			g.seats[side] = playerID
			return colorOf(side), nil
		}
	}
	return "", ErrGameFull
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	return playerID != "" && (g.seats[chess.White] == playerID || g.seats[chess.Black] == playerID)
}

func (g *Game) canSpectate() bool {
	return g.seats[chess.White] == "" || g.seats[chess.Black] == ""
}

// authorize checks that playerID may move for the side to move. A side
// without a player can be moved by anyone seated, which gives hot-seat play
// from a single client.
func (g *Game) authorize(playerID string) error {
	if !g.isPlayerInGame(playerID) {
		return ErrNotInGame
	}
	seat := g.seats[g.engine.CurrentSide()]
	if seat != "" && seat != playerID {
		return ErrNotYourTurn
	}
	return nil
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state()
}

// Diagram returns the text rendering of the board.
func (g *Game) Diagram() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.engine.Board().String()
}

// LegalMoves returns the check-safe destinations of the piece on from.
func (g *Game) LegalMoves(from chess.Pos) []Position {
	g.mu.Lock()
	defer g.mu.Unlock()

	rows := g.engine.Board().Rows()
	var out []Position
	for _, to := range g.engine.LegalMovesWithCheck(from) {
		out = append(out, positionOf(to, rows))
	}
	return out
}

// MakeMove validates the move for playerID, plays it and broadcasts the new
// state.
func (g *Game) MakeMove(playerID string, move WSMove) error {
	state, err := g.makeMove(playerID, move)
	if err != nil {
		return err
	}
	g.connections.broadcast(state)
	return nil
}

func (g *Game) makeMove(playerID string, move WSMove) (GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.authorize(playerID); err != nil {
		return GameState{}, err
	}
	if g.engine.Result().Terminal() {
		return GameState{}, ErrGameOver
	}
	if _, pending := g.engine.PromotionPending(); pending {
		return GameState{}, ErrPromotionPending
	}

	var promotion chess.Kind
	if move.Promotion != "" {
		kind, ok := move.Promotion.kind()
		if !ok || !promotable(kind) {
			return GameState{}, fmt.Errorf("%w: %q", ErrInvalidPromotion, move.Promotion)
		}
		promotion = kind
	}

	rows := g.engine.Board().Rows()
	from, to := move.From.toPos(rows), move.To.toPos(rows)
	if !slices.Contains(g.engine.ValidFroms(), from) {
		return GameState{}, fmt.Errorf("%w: no movable piece on %s", ErrIllegalMove, from)
	}
	if !slices.Contains(g.engine.LegalMovesWithCheck(from), to) {
		return GameState{}, fmt.Errorf("%w: %s to %s", ErrIllegalMove, from, to)
	}

	g.engine.MakeMove(from, to)
	log.Printf("game %s: %s played %s%s", g.ID, g.engine.CurrentSide().Opponent(), from, to)
	if _, pending := g.engine.PromotionPending(); pending && promotion != 0 {
		g.engine.Promote(promotion)
	}
	return g.state(), nil
}

// Promote resolves a pending promotion for playerID.
func (g *Game) Promote(playerID string, piece PieceType) error {
	state, err := g.promote(playerID, piece)
	if err != nil {
		return err
	}
	g.connections.broadcast(state)
	return nil
}

func (g *Game) promote(playerID string, piece PieceType) (GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	at, pending := g.engine.PromotionPending()
	if !pending {
		return GameState{}, ErrNoPromotion
	}
	// The pawn belongs to the side that just moved.
	seat := g.seats[g.engine.Board().Get(at).Side()]
	if !g.isPlayerInGame(playerID) {
		return GameState{}, ErrNotInGame
	}
	if seat != "" && seat != playerID {
		return GameState{}, ErrNotYourTurn
	}
	kind, ok := piece.kind()
	if !ok || !promotable(kind) || !g.engine.Promote(kind) {
		return GameState{}, fmt.Errorf("%w: %q", ErrInvalidPromotion, piece)
	}
	log.Printf("game %s: pawn on %s promoted to %s", g.ID, at, piece)
	return g.state(), nil
}

func (g *Game) state() GameState {
	board := g.engine.Board()
	rows := board.Rows()
	side := g.engine.CurrentSide()

	state := GameState{
		Board:          newBoardState(board),
		ToMove:         colorOf(side),
		MoveHistory:    make([]Ply, 0),
		CapturedPieces: CapturedPieces{White: make([]Piece, 0), Black: make([]Piece, 0)},
		IsCheck:        board.KingInCheck(side),
		LegalMoves:     make(map[string][]Position),
		Result:         g.engine.Result().String(),
		Diagram:        board.String(),
	}
	state.Players.White = ClientPlayer{ID: g.seats[chess.White], Color: PlayerColorWhite}
	state.Players.Black = ClientPlayer{ID: g.seats[chess.Black], Color: PlayerColorBlack}

	for _, m := range board.History() {
		ply := newPly(board, m)
		state.MoveHistory = append(state.MoveHistory, ply)
		if ply.CapturedPiece == nil {
			continue
		}
		if m.Piece().Side() == chess.White {
			state.CapturedPieces.White = append(state.CapturedPieces.White, *ply.CapturedPiece)
		} else {
			state.CapturedPieces.Black = append(state.CapturedPieces.Black, *ply.CapturedPiece)
		}
	}

	if n := len(state.MoveHistory); n > 0 {
		last := state.MoveHistory[n-1]
		state.LastMove = &SimpleMove{From: last.From, To: last.To}
		switch {
		case state.IsCheck:
			state.Sound = "check"
		case last.CapturedPiece != nil:
			state.Sound = "capture"
		default:
			state.Sound = "move"
		}
	}

	if at, ok := g.engine.PromotionPending(); ok {
		pos := positionOf(at, rows)
		state.PromotionSquare = &pos
	} else if !g.engine.Result().Terminal() {
		for _, from := range g.engine.ValidFroms() {
			var dests []Position
			for _, to := range g.engine.LegalMovesWithCheck(from) {
				dests = append(dests, positionOf(to, rows))
			}
			state.LegalMoves[from.String()] = dests
		}
	}

	switch result := g.engine.Result(); result {
	case chess.WhiteWon, chess.BlackWon:
		resolve := "checkmate"
		winner := colorOf(side.Opponent())
		state.Resolve, state.Winner = &resolve, &winner
	case chess.Draw:
		resolve := "stalemate"
		state.Resolve = &resolve
	}
	return state
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID) || g.canSpectate()
	state := g.state()
	g.mu.Unlock()

	if !isAuthorized {
		return ErrNotAuthorized
	}

	if !g.connections.add(playerID, conn) {
		// Keep the existing healthy connection and reject the new one.
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		conn.Close()
		return nil
	}
	log.Printf("game %s: registered connection for player %s", g.ID, playerID)

	g.connections.send(playerID, state)
	return nil
}

// UnregisterConnection drops conn if it is still the registered connection
// for playerID.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		log.Printf("game %s: unregistered connection for player %s", g.ID, playerID)
	}
}

func (gc *GameConnections) add(playerID string, conn Conn) bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	if _, exists := gc.connections[playerID]; exists {
		return false
	}
	gc.connections[playerID] = conn
	return true
}

func (gc *GameConnections) send(playerID string, state GameState) {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	if conn, ok := gc.connections[playerID]; ok {
		gc.write(playerID, conn, state)
	}
}

// broadcast sends state to every connection. Writes happen under mu so a
// connection never has two concurrent writers.
func (gc *GameConnections) broadcast(state GameState) {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	for playerID, conn := range gc.connections {
		gc.write(playerID, conn, state)
	}
}

func (gc *GameConnections) write(playerID string, conn Conn, state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("failed to marshal state: %v", err)
		return
	}
	if err := conn.WriteJSON(ws.Message{Type: ws.MessageTypeGameState, Payload: payload}); err != nil {
		log.Printf("failed to send state to player %s: %v", playerID, err)
		delete(gc.connections, playerID)
	}
}
