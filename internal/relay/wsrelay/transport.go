package wsrelay

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/KirkDiggler/saves-helper/internal/relay"
)

// Transport is a relay.Transport connected to a Hub.
type Transport struct {
	conn   *websocket.Conn
	logger *zap.Logger

	writeMu sync.Mutex

	mu       sync.RWMutex
	nextID   int
	handlers map[string]map[int]relay.Handler

	done chan struct{}
}

// Dial connects to a hub at url, e.g. ws://localhost:8089/relay
func Dial(ctx context.Context, url string, logger *zap.Logger) (*Transport, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial relay hub %s: %w", url, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &Transport{
		conn:     conn,
		logger:   logger,
		handlers: make(map[string]map[int]relay.Handler),
		done:     make(chan struct{}),
	}
	go t.readLoop()
	return t, nil
}

// Done is closed once the connection to the hub is lost
func (t *Transport) Done() <-chan struct{} {
	return t.done
}

// Close disconnects from the hub
func (t *Transport) Close() error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	_ = t.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
	return t.conn.Close()
}

// Publish implements relay.Transport
func (t *Transport) Publish(_ context.Context, topic string, payload []byte) error {
	data, err := json.Marshal(Frame{Topic: topic, Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	if err := t.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	if err := t.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe implements relay.Transport
func (t *Transport) Subscribe(_ context.Context, topic string, handler relay.Handler) (func(), error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	id := t.nextID
	if t.handlers[topic] == nil {
		t.handlers[topic] = make(map[int]relay.Handler)
	}
	t.handlers[topic][id] = handler

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.handlers[topic], id)
	}, nil
}

func (t *Transport) readLoop() {
	defer close(t.done)

	for {
		_, data, err := t.conn.ReadMessage()
		if err != nil {
			t.logger.Debug("relay hub connection closed", zap.Error(err))
			return
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			t.logger.Warn("dropping malformed frame", zap.Error(err))
			continue
		}

		t.mu.RLock()
		handlers := make([]relay.Handler, 0, len(t.handlers[frame.Topic]))
		for _, h := range t.handlers[frame.Topic] {
			handlers = append(handlers, h)
		}
		t.mu.RUnlock()

		for _, h := range handlers {
			h(context.Background(), frame.Payload)
		}
	}
}
