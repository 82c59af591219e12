package network

import (
	"fmt"
	"log"
	"os"
	"path"

	"github.com/automoto/composite/assets"
	"github.com/automoto/composite/shared/gamestate"
	"github.com/automoto/composite/shared/leveldata"
	"github.com/automoto/composite/shared/messages"
)

// Match is a running game as the client scene sees it: it takes the local
// inputs once per tick and exposes the state to draw.
type Match interface {
	Update(inputs map[gamestate.Side]messages.Inputs, nowMillis int64) error
	State() *gamestate.GameState
	Doors() []messages.DoorView
	LocalSides() []gamestate.Side
	Status() MatchStatus
	Close()
}

// MatchStatus is what the HUD reports about a match.
type MatchStatus struct {
	Online          bool
	Session         string
	Level           gamestate.LevelID
	Tick            int64
	Cleared         bool
	PartnerLeft     bool
	LastDoor        *messages.DoorChangedEvent
	PredictionError float64
	Replayed        int
	Checksum        string
}

// LoadLevel reads a level bundled with the game by id.
func LoadLevel(id gamestate.LevelID) (*leveldata.LevelData, error) {
	return leveldata.LoadLevel(assets.FS(), path.Join(assets.LevelsDir, string(id)+".tmx"))
}

// OnlineMatch predicts the local side and follows the server for the rest.
type OnlineMatch struct {
	client    *Client
	predictor *Predictor
	status    MatchStatus
}

// NewOnlineMatch starts predicting for a client whose join was accepted.
func NewOnlineMatch(client *Client, dev bool) (*OnlineMatch, error) {
	accepted := client.Accepted()
	if accepted == nil {
		return nil, fmt.Errorf("online match: join not accepted")
	}
	level, err := LoadLevel(accepted.Level)
	if err != nil {
		return nil, fmt.Errorf("online match: %w", err)
	}
	tickRate := accepted.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}

	var logger *log.Logger
	if dev {
		logger = log.New(os.Stderr, "[predict] ", log.LstdFlags)
	}
	predictor, err := NewPredictor(level, accepted.Side, 1/float64(tickRate), logger)
	if err != nil {
		return nil, fmt.Errorf("online match: %w", err)
	}
	if _, err := predictor.Reconcile(accepted.Snapshot); err != nil {
		return nil, fmt.Errorf("online match: %w", err)
	}
	return &OnlineMatch{
		client:    client,
		predictor: predictor,
		status: MatchStatus{
			Online:   true,
			Session:  accepted.Session,
			Level:    accepted.Level,
			Tick:     accepted.Snapshot.Tick,
			Checksum: accepted.Snapshot.Checksum,
		},
	}, nil
}

// Update folds in everything the server sent since the last tick, then
// predicts and sends the local input.
func (m *OnlineMatch) Update(inputs map[gamestate.Side]messages.Inputs, nowMillis int64) error {
	switch m.client.State() {
	case StateError:
		if err := m.client.LastError(); err != nil {
			return fmt.Errorf("connection lost: %w", err)
		}
		return fmt.Errorf("connection lost")
	case StateDisconnected:
		return fmt.Errorf("disconnected from server")
	}

	if snap := m.client.LatestSnapshot(); snap != nil {
		replayed, err := m.predictor.Reconcile(*snap)
		if err != nil {
			return err
		}
		m.status.Tick = snap.Tick
		m.status.Replayed = replayed
		m.status.Checksum = snap.Checksum
		m.status.PredictionError = m.predictor.LastError()
	}
	for _, evt := range m.client.DrainDoorEvents() {
		m.status.LastDoor = &evt
	}
	if len(m.client.DrainClearedEvents()) > 0 {
		m.status.Cleared = true
	}
	if len(m.client.DrainLeftEvents()) > 0 {
		m.status.PartnerLeft = true
	}

	payload := m.predictor.Next(inputs[m.predictor.Side()], nowMillis)
	if err := m.client.SendInput(payload); err != nil {
		return fmt.Errorf("send input %d: %w", payload.Sequence, err)
	}
	return nil
}

func (m *OnlineMatch) State() *gamestate.GameState { return m.predictor.State() }

func (m *OnlineMatch) Doors() []messages.DoorView { return m.predictor.Doors() }

func (m *OnlineMatch) LocalSides() []gamestate.Side { return []gamestate.Side{m.predictor.Side()} }

func (m *OnlineMatch) Status() MatchStatus { return m.status }

func (m *OnlineMatch) Close() { m.client.Disconnect() }
