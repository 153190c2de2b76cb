package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/dmaloney/gochess-server/internal/model"
	"github.com/dmaloney/gochess-server/internal/service"
	"github.com/dmaloney/gochess-server/internal/ws"
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

// HandleConnection runs the read loop for one websocket connection until
// it closes.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("register connection: %v", err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("read error: %v", err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("parse error: %v", err)
			continue
		}

		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			wsc.sendError(c, err)
		}
	}
}

// handleMessage dispatches one inbound message into the game session.
// Errors are relayed back to the sender, not broadcast.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, move)

	case ws.MessageTypeResign:
		return wsc.gameService.HandleResign(gameID, playerID)

	case ws.MessageTypeDrawOffer:
		return wsc.gameService.HandleDrawOffer(gameID, playerID)

	case ws.MessageTypeDrawAccept:
		return wsc.gameService.HandleDrawAccept(gameID, playerID)

	case ws.MessageTypeDrawDecline:
		return wsc.gameService.HandleDrawDecline(gameID, playerID)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(c *websocket.Conn, sendErr error) {
	payload, err := json.Marshal(ws.ErrorPayload{Message: sendErr.Error()})
	if err != nil {
		log.Printf("marshal error payload: %v", err)
		return
	}
	if err := c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: payload,
	}); err != nil {
		log.Printf("send error payload: %v", err)
	}
}
