package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// lockedConn serializes writes to a websocket connection, which allows only
// one concurrent writer. Game broadcasts and error replies share it.
type lockedConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (l *lockedConn) WriteJSON(v interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conn.WriteJSON(v)
}

func (l *lockedConn) WriteMessage(messageType int, data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conn.WriteMessage(messageType, data)
}

func (l *lockedConn) Close() error {
	return l.conn.Close()
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Locals("wsGameID").(string)
	playerID := c.Locals("wsPlayerID").(string)
	conn := &lockedConn{conn: c}

	// Register this connection with the game
	if err := wsc.gameService.RegisterConnection(gameID, playerID, conn); err != nil {
		log.Printf("Failed to register connection: %v", err)
		wsc.sendError(conn, err)
		conn.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, conn)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("read error: %v", err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("parse error: %v", err)
			wsc.sendError(conn, fmt.Errorf("malformed message: %w", err))
			continue
		}

		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Printf("handle error: %v", err)
			wsc.sendError(conn, err)
		}
	}
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, move)

	case ws.MessageTypePromote:
		var promotion model.WSPromotion
		if err := json.Unmarshal(msg.Payload, &promotion); err != nil {
			return err
		}
		return wsc.gameService.HandlePromotion(gameID, playerID, promotion.Piece)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// sendError replies to the sender only.
func (wsc *WebSocketController) sendError(c model.Conn, err error) {
	msg, mErr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if mErr != nil {
		log.Printf("failed to marshal error: %v", mErr)
		return
	}
	if wErr := c.WriteJSON(msg); wErr != nil {
		log.Printf("failed to send error: %v", wErr)
	}
}
