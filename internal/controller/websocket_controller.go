package controller

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
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

// lockedConn serialises writes; broadcasts and replies come from different goroutines.
type lockedConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (lc *lockedConn) WriteJSON(v interface{}) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.WriteJSON(v)
}

func (lc *lockedConn) Close() error {
	return lc.conn.Close()
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals("wsGameID").(string)
	connID, _ := c.Locals("wsConnID").(string)
	conn := &lockedConn{conn: c}

	// Register this connection with the game
	if err := wsc.gameService.RegisterConnection(gameID, connID, conn); err != nil {
		log.Warnf("failed to register connection: %v", err)
		c.Close()
		return
	}
	log.Debugf("websocket %s opened for game %s", connID, gameID)

	// Start message handling loop
	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("read error: %v", err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(conn, fmt.Errorf("parse error: %w", err))
			continue
		}
		if err := wsc.handleMessage(gameID, conn, msg); err != nil {
			log.Debugf("handle error: %v", err)
			wsc.sendError(conn, err)
		}
	}

	// Clean up when connection closes
	wsc.gameService.UnregisterConnection(gameID, connID)
}

// Handle different types of incoming messages. State changes reach the
// client through the game's broadcast; only queries are answered directly.
func (wsc *WebSocketController) handleMessage(gameID string, conn model.Conn, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleMove(gameID, move)
		return err

	case ws.MessageTypeReset:
		var payload ws.ResetPayload
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				return err
			}
		}
		mode, color, err := gameRequest{Mode: payload.Mode, Color: payload.Color}.parse()
		if err != nil {
			return err
		}
		_, err = wsc.gameService.ResetGame(gameID, mode, color)
		return err

	case ws.MessageTypeLegalMoves:
		var req ws.LegalMovesPayload
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		moves, err := wsc.gameService.LegalMoves(gameID, req.Square)
		if err != nil {
			return err
		}
		reply := ws.LegalMovesPayload{Square: req.Square, Targets: make([]string, 0, len(moves))}
		for _, m := range moves {
			reply.Targets = append(reply.Targets, m.To.String())
		}
		out, err := ws.NewMessage(ws.MessageTypeLegalMoves, reply)
		if err != nil {
			return err
		}
		return conn.WriteJSON(out)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(conn model.Conn, err error) {
	out, mErr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if mErr != nil {
		return
	}
	if wErr := conn.WriteJSON(out); wErr != nil {
		log.Debugf("failed to send error: %v", wErr)
	}
}
