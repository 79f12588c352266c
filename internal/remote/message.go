package remote

import (
	"encoding/json"
	"time"

	"github.com/lox/timestables/internal/quiz"
)

// MessageType represents a WebSocket message type with type safety
type MessageType string

const (
	// Client to server messages
	MessageTypeToggleTable MessageType = "toggle_table"
	MessageTypeSetTier     MessageType = "set_tier"
	MessageTypeStart       MessageType = "start"
	MessageTypeSubmitGuess MessageType = "submit_guess"
	MessageTypeAdvance     MessageType = "advance"
	MessageTypeReset       MessageType = "reset"
	MessageTypeGetState    MessageType = "get_state"

	// Server to client messages
	MessageTypeState MessageType = "state"
	MessageTypeError MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Error codes sent in ErrorData.
const (
	ErrCodeInvalidMessage     = "invalid_message"
	ErrCodeUnknownMessageType = "unknown_message_type"
	ErrCodeSessionBusy        = "session_busy"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data any) (*Message, error) {
	msg := &Message{
		Type:      messageType,
		Timestamp: time.Now(),
	}
	if data == nil {
		return msg, nil
	}

	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	msg.Data = dataBytes
	return msg, nil
}

// Client → Server Messages

type ToggleTableData struct {
	Index int `json:"index"`
}

type SetTierData struct {
	Tier quiz.Tier `json:"tier"`
}

type SubmitGuessData struct {
	Position int `json:"position"`
}

// Server → Client Messages

// StateData is the full readout pushed after every change.
type StateData struct {
	Intent   string        `json:"intent,omitempty"`
	Snapshot quiz.Snapshot `json:"snapshot"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
