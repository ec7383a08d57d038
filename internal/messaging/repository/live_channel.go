package repository

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"time"

	"elevator_pitch_messaging/internal/messaging/domain"
	"elevator_pitch_messaging/pkg/config"
	"elevator_pitch_messaging/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second

	defaultPingPeriod      = 54 * time.Second
	defaultInitialInterval = 500 * time.Millisecond
	defaultMaxInterval     = 30 * time.Second
)

// ChannelState live channel connection state
type ChannelState int

const (
	// StateDisconnected no connection and no retry in flight
	StateDisconnected ChannelState = iota
	// StateConnecting first dial in progress
	StateConnecting
	// StateConnected receiving pushes
	StateConnected
	// StateReconnecting connection lost, redialing with backoff
	StateReconnecting
)

// String state name for logging
func (s ChannelState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	default:
		return "disconnected"
	}
}

// EventHandler consumer callback for newMessage pushes
type EventHandler func(ev domain.NewMessageEvent)

// LiveChannel single websocket ingress for server pushes. It owns the
// connection lifecycle only; business state lives in the stores that
// subscribe to it. Connection drops are not surfaced to consumers — the
// channel redials silently and the next room/page load heals any gap.
type LiveChannel struct {
	url             string
	token           string
	pingPeriod      time.Duration
	initialInterval time.Duration
	maxInterval     time.Duration

	mu       sync.Mutex
	state    ChannelState
	handlers map[string]EventHandler
}

// NewLiveChannel create LiveChannel
func NewLiveChannel(cfg config.LiveConfig, token string) *LiveChannel {
	c := &LiveChannel{
		url:             cfg.URL,
		token:           token,
		pingPeriod:      cfg.PingPeriod,
		initialInterval: cfg.InitialRetryInterval,
		maxInterval:     cfg.MaxRetryInterval,
		handlers:        map[string]EventHandler{},
	}
	if c.pingPeriod <= 0 {
		c.pingPeriod = defaultPingPeriod
	}
	if c.initialInterval <= 0 {
		c.initialInterval = defaultInitialInterval
	}
	if c.maxInterval <= 0 {
		c.maxInterval = defaultMaxInterval
	}
	return c
}

// Subscribe registers a handler under key. Subscribing an existing key
// replaces the previous handler, so a key acts as a single slot — the open
// message feed reuses one key and switching rooms swaps the handler.
func (c *LiveChannel) Subscribe(key string, handler EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[key] = handler
}

// Unsubscribe removes the handler registered under key
func (c *LiveChannel) Unsubscribe(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handlers, key)
}

// State current connection state
func (c *LiveChannel) State() ChannelState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *LiveChannel) setState(s ChannelState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Run dials the channel and keeps it alive until ctx is cancelled.
// Blocking; callers run it on its own goroutine.
func (c *LiveChannel) Run(ctx context.Context) {
	defer c.setState(StateDisconnected)

	first := true
	for {
		if ctx.Err() != nil {
			return
		}
		if first {
			c.setState(StateConnecting)
			first = false
		} else {
			c.setState(StateReconnecting)
		}

		conn, err := c.dial(ctx)
		if err != nil {
			// only ctx cancellation stops the redial loop
			return
		}

		c.setState(StateConnected)
		logger.Log.Info("live channel connected", zap.String("url", c.url))

		c.readPump(ctx, conn)
	}
}

// dial retries with exponential backoff until connected or ctx cancelled
func (c *LiveChannel) dial(ctx context.Context) (*websocket.Conn, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.initialInterval
	bo.MaxInterval = c.maxInterval
	bo.MaxElapsedTime = 0

	var conn *websocket.Conn
	op := func() error {
		ws, _, err := websocket.DefaultDialer.DialContext(ctx, c.dialURL(), nil)
		if err != nil {
			logger.Log.Warn("live channel dial failed", zap.Error(err))
			return err
		}
		conn = ws
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return conn, nil
}

func (c *LiveChannel) dialURL() string {
	return c.url + "?auth=" + url.QueryEscape(c.token)
}

// readPump consumes frames until the connection drops
func (c *LiveChannel) readPump(ctx context.Context, conn *websocket.Conn) {
	pingCtx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		conn.Close()
	}()

	// unblock ReadMessage when the surrounding context is cancelled
	go func() {
		<-pingCtx.Done()
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go c.pingLoop(pingCtx, conn)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Log.Warn("live channel read error", zap.Error(err))
			}
			return
		}

		var env domain.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			logger.Log.Warn("live channel bad frame", zap.Error(err))
			continue
		}

		switch env.Event {
		case domain.EventNewMessage:
			var ev domain.NewMessageEvent
			if err := json.Unmarshal(env.Data, &ev); err != nil {
				logger.Log.Warn("live channel bad newMessage payload", zap.Error(err))
				continue
			}
			c.dispatch(ev)
		default:
			logger.Log.Debug("live channel ignoring event", zap.String("event", env.Event))
		}
	}
}

func (c *LiveChannel) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(c.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// dispatch fans the event out to every subscribed handler
func (c *LiveChannel) dispatch(ev domain.NewMessageEvent) {
	c.mu.Lock()
	handlers := make([]EventHandler, 0, len(c.handlers))
	for _, h := range c.handlers {
		handlers = append(handlers, h)
	}
	c.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}
