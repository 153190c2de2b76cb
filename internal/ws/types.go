package ws

import (
	"encoding/json"
)

// MessageType discriminates the websocket messages exchanged with clients.
type MessageType string

const (
	MessageTypeMove        MessageType = "move"
	MessageTypeGameState   MessageType = "gameState"
	MessageTypeDrawOffer   MessageType = "drawOffer"
	MessageTypeDrawAccept  MessageType = "drawAccept"
	MessageTypeDrawDecline MessageType = "drawDecline"
	MessageTypeResign      MessageType = "resign"
	MessageTypeError       MessageType = "error"
)

// Message is the envelope for every websocket frame.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ErrorPayload carries a rejected action back to the client that sent it.
type ErrorPayload struct {
	Message string `json:"message"`
}
