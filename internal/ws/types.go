package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove       MessageType = "move"
	MessageTypeReset      MessageType = "reset"
	MessageTypeLegalMoves MessageType = "legalMoves"
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

// ResetPayload is the body of a reset request.
type ResetPayload struct {
	Mode  string `json:"mode"`
	Color string `json:"color"`
}

// LegalMovesPayload asks for, and answers with, the legal destinations of one square.
type LegalMovesPayload struct {
	Square  string   `json:"square"`
	Targets []string `json:"targets"`
}

// ErrorPayload carries a failed request's reason back to the client.
type ErrorPayload struct {
	Error string `json:"error"`
}
