package remote

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/timestables/internal/quiz"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	sendBufferSize = 64
)

var ErrConnectionClosed = errors.New("connection closed")

// Connection binds one websocket client to its own quiz engine. Engine
// events are pushed to the client as state messages; client messages are
// applied to the engine as intents.
type Connection struct {
	conn   *websocket.Conn
	engine *quiz.Engine
	send   chan *Message
	logger *log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, engine *quiz.Engine, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		engine: engine,
		send:   make(chan *Message, sendBufferSize),
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start subscribes to the engine, sends the initial state and begins
// pumping messages.
func (c *Connection) Start() {
	c.engine.Subscribe(c)
	c.sendState("")
	go c.writePump()
	go c.readPump()
}

// Done is closed once the connection has shut down.
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close closes the connection and its engine
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.engine.Unsubscribe(c)
		c.engine.Close()

		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()

		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// OnEvent forwards engine state changes to the client.
func (c *Connection) OnEvent(event quiz.GameEvent) {
	if e, ok := event.(quiz.StateChangedEvent); ok {
		c.sendSnapshot(e.Intent, e.Snapshot)
	}
}

// SendMessage queues a message for the client
func (c *Connection) SendMessage(msg *Message) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrConnectionClosed
	}

	select {
	case c.send <- msg:
		return nil
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		go func() { _ = c.Close() }()
		return ErrConnectionClosed
	}
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError(ErrCodeInvalidMessage, "Message is not valid JSON")
			continue
		}
		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage applies a client message to the engine. Intents the engine
// ignores publish nothing, so the unchanged state is sent back instead.
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type)

	var applied bool
	switch msg.Type {
	case MessageTypeToggleTable:
		var data ToggleTableData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(ErrCodeInvalidMessage, "Failed to parse toggle table data")
			return
		}
		applied = c.engine.ToggleTable(data.Index)

	case MessageTypeSetTier:
		var data SetTierData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(ErrCodeInvalidMessage, "Failed to parse set tier data: "+err.Error())
			return
		}
		applied = c.engine.SetTier(data.Tier)

	case MessageTypeStart:
		applied = c.engine.Start()

	case MessageTypeSubmitGuess:
		var data SubmitGuessData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(ErrCodeInvalidMessage, "Failed to parse submit guess data")
			return
		}
		applied = c.engine.SubmitGuess(data.Position)

	case MessageTypeAdvance:
		applied = c.engine.Advance()

	case MessageTypeReset:
		applied = c.engine.Reset()

	case MessageTypeGetState:

	default:
		c.sendError(ErrCodeUnknownMessageType, "Unknown message type: "+msg.Type.String())
		return
	}

	if !applied {
		c.sendState(msg.Type.String())
	}
}

func (c *Connection) sendState(intent string) {
	c.sendSnapshot(intent, c.engine.Snapshot())
}

func (c *Connection) sendSnapshot(intent string, snapshot quiz.Snapshot) {
	msg, err := NewMessage(MessageTypeState, StateData{Intent: intent, Snapshot: snapshot})
	if err != nil {
		c.logger.Error("Failed to create state message", "error", err)
		return
	}
	_ = c.SendMessage(msg)
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg)
}
