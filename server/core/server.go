package core

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/automoto/composite/shared/gamestate"
	"github.com/automoto/composite/shared/messages"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

var (
	ErrVersionMismatch = errors.New("client version does not match server")
	ErrServerFull      = errors.New("server has no free sessions")
	ErrAlreadyJoined   = errors.New("client already joined a session")
)

// Server hosts game sessions and routes client messages to them.
type Server struct {
	cfg       Config
	catalog   *LevelCatalog
	loop      *GameLoop
	transport *transports.WsServerTransport

	mu       sync.RWMutex
	sessions map[string]*Session
	clients  map[Peer]*Session
	nextCode int
}

// NewServer creates a server for cfg. Call Start to accept connections.
func NewServer(cfg Config, catalog *LevelCatalog) *Server {
	s := &Server{
		cfg:      cfg,
		catalog:  catalog,
		sessions: make(map[string]*Session),
		clients:  make(map[Peer]*Session),
	}
	s.loop = NewGameLoop(s, cfg.TickRate)
	return s
}

// Start begins the game loop and serves WebSocket clients on port.
func (s *Server) Start(port uint) error {
	s.setupRouterCallbacks()
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop halts the game loop.
func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("[server] client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		if err != nil {
			log.Printf("[server] client %s disconnected with error: %v", client.Id(), err)
		} else {
			log.Printf("[server] client %s disconnected", client.Id())
		}
		s.Leave(client)
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		accepted, err := s.Join(client, req)
		if err != nil {
			log.Printf("[server] join from %s rejected: %v", client.Id(), err)
			if sendErr := client.SendMessage(messages.JoinRejected{Reason: err.Error()}); sendErr != nil {
				log.Printf("[server] send rejection to %s: %v", client.Id(), sendErr)
			}
			return
		}
		if err := client.SendMessage(accepted); err != nil {
			log.Printf("[server] send acceptance to %s: %v", client.Id(), err)
		}
	})

	router.On(func(client *router.NetworkClient, in messages.GamePlayerInputPayload) {
		if err := s.Submit(client, in); err != nil && s.cfg.Dev {
			log.Printf("[server] input from %s: %v", client.Id(), err)
		}
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[server] client error: %v", err)
	})
}

// Join seats peer in the requested session, creating it when needed. An
// empty session code matches any open session on the requested level.
func (s *Server) Join(peer Peer, req messages.JoinRequest) (messages.JoinAccepted, error) {
	if s.cfg.Version != "" && req.Version != s.cfg.Version {
		return messages.JoinAccepted{}, fmt.Errorf("%w: server %q, client %q", ErrVersionMismatch, s.cfg.Version, req.Version)
	}

	levelID := req.Level
	if levelID == "" {
		levelID = gamestate.LevelID(s.cfg.Level)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[peer]; ok {
		return messages.JoinAccepted{}, ErrAlreadyJoined
	}

	session, err := s.findSessionLocked(req.Session, levelID)
	if err != nil {
		return messages.JoinAccepted{}, err
	}
	accepted, err := session.Join(peer, req.Side)
	if err != nil {
		if session.Members() == 0 {
			delete(s.sessions, session.Code())
		}
		return messages.JoinAccepted{}, err
	}
	accepted.TickRate = s.cfg.TickRate
	s.clients[peer] = session
	return accepted, nil
}

func (s *Server) findSessionLocked(code string, levelID gamestate.LevelID) (*Session, error) {
	if code != "" {
		if session, ok := s.sessions[code]; ok {
			return session, nil
		}
		return s.createSessionLocked(code, levelID)
	}
	for _, session := range s.sessions {
		if session.Level() == levelID && session.Members() < len(gamestate.Sides) {
			return session, nil
		}
	}
	for {
		s.nextCode++
		code = fmt.Sprintf("S%04d", s.nextCode)
		if _, taken := s.sessions[code]; !taken {
			break
		}
	}
	return s.createSessionLocked(code, levelID)
}

func (s *Server) createSessionLocked(code string, levelID gamestate.LevelID) (*Session, error) {
	if len(s.sessions) >= s.cfg.MaxSessions {
		return nil, ErrServerFull
	}
	level, err := s.catalog.Get(levelID)
	if err != nil {
		return nil, err
	}
	session, err := NewSession(code, level, SessionConfig{
		Delta:         s.cfg.Delta(),
		SnapshotEvery: s.cfg.SnapshotEvery,
		InputBuffer:   s.cfg.InputBuffer,
		Dev:           s.cfg.Dev,
		FreeMovement:  s.cfg.FreeMovement,
	}, NewDoorAnimator(level.Elements, s.cfg.DoorTween))
	if err != nil {
		return nil, err
	}
	s.sessions[code] = session
	log.Printf("[server] session %s created on %s", code, levelID)
	return session, nil
}

// Leave removes peer from its session and closes the session once empty.
func (s *Server) Leave(peer Peer) {
	s.mu.Lock()
	session, ok := s.clients[peer]
	delete(s.clients, peer)
	s.mu.Unlock()
	if !ok {
		return
	}

	if _, remaining := session.Leave(peer); remaining == 0 {
		s.mu.Lock()
		if session.Members() == 0 {
			delete(s.sessions, session.Code())
			log.Printf("[server] session %s closed", session.Code())
		}
		s.mu.Unlock()
	}
}

// Submit routes an input to the peer's session.
func (s *Server) Submit(peer Peer, in messages.GamePlayerInputPayload) error {
	s.mu.RLock()
	session, ok := s.clients[peer]
	s.mu.RUnlock()
	if !ok {
		return ErrNotJoined
	}
	return session.Submit(peer, in)
}

// Tick advances every session by one step.
func (s *Server) Tick() {
	s.mu.RLock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.RUnlock()

	for _, session := range sessions {
		session.Tick()
	}
}

// Session returns the session with the given code.
func (s *Server) Session(code string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[code]
	return session, ok
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
