package network

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/automoto/composite/shared/gamestate"
	"github.com/automoto/composite/shared/messages"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateJoinedGame:
		return "joined"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("ClientState(%d)", int(s))
}

// Client manages a WebSocket connection to the game server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state     ClientState
	lastError error
	accepted  *messages.JoinAccepted
	conn      *websocket.Conn

	snapshotCh chan messages.Snapshot // size-1 buffered; latest wins
	doorCh     chan messages.DoorChangedEvent
	clearedCh  chan messages.LevelClearedEvent
	leftCh     chan messages.PlayerLeftEvent
}

func NewClient() *Client {
	return &Client{
		state:      StateDisconnected,
		snapshotCh: make(chan messages.Snapshot, 1),
		doorCh:     make(chan messages.DoorChangedEvent, 8),
		clearedCh:  make(chan messages.LevelClearedEvent, 2),
		leftCh:     make(chan messages.PlayerLeftEvent, 2),
	}
}

// Connect dials the server in a background goroutine and sends req once connected.
func (c *Client) Connect(address string, req messages.JoinRequest) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.accepted = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[client] connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		if err := c.SendMessage(req); err != nil {
			c.setError(fmt.Errorf("send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		log.Printf("[client] join accepted: session=%s side=%s level=%s tickRate=%d",
			msg.Session, msg.Side, msg.Level, msg.TickRate)
		c.mu.Lock()
		c.accepted = &msg
		c.state = StateJoinedGame
		c.mu.Unlock()
		c.pushSnapshot(msg.Snapshot)
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[client] join rejected: %s", msg.Reason)
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snapshot messages.Snapshot) {
		c.pushSnapshot(snapshot)
	})

	router.On(func(_ *router.NetworkClient, evt messages.DoorChangedEvent) {
		offer(c.doorCh, evt)
	})

	router.On(func(_ *router.NetworkClient, evt messages.LevelClearedEvent) {
		offer(c.clearedCh, evt)
	})

	router.On(func(_ *router.NetworkClient, evt messages.PlayerLeftEvent) {
		offer(c.leftCh, evt)
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// Accepted returns the join acknowledgement, or nil before the server accepted.
func (c *Client) Accepted() *messages.JoinAccepted {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accepted
}

// Side is the side the server assigned, empty before the join was accepted.
func (c *Client) Side() gamestate.Side {
	if a := c.Accepted(); a != nil {
		return a.Side
	}
	return ""
}

// LatestSnapshot returns the most recent Snapshot, or nil. Non-blocking.
func (c *Client) LatestSnapshot() *messages.Snapshot {
	select {
	case snap := <-c.snapshotCh:
		return &snap
	default:
		return nil
	}
}

// SendInput sends one predicted input to the server.
func (c *Client) SendInput(in messages.GamePlayerInputPayload) error {
	return c.SendMessage(in)
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) pushSnapshot(snap messages.Snapshot) {
	select { // drain stale, push latest
	case <-c.snapshotCh:
	default:
	}
	select {
	case c.snapshotCh <- snap:
	default:
	}
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

// DrainDoorEvents returns all pending door events, non-blocking.
func (c *Client) DrainDoorEvents() []messages.DoorChangedEvent {
	return drainChan(c.doorCh)
}

// DrainClearedEvents returns all pending level cleared events, non-blocking.
func (c *Client) DrainClearedEvents() []messages.LevelClearedEvent {
	return drainChan(c.clearedCh)
}

// DrainLeftEvents returns all pending player left events, non-blocking.
func (c *Client) DrainLeftEvents() []messages.PlayerLeftEvent {
	return drainChan(c.leftCh)
}

func offer[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
