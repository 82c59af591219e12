package physics

import (
	"log"

	"github.com/automoto/composite/shared/gamestate"
	"github.com/automoto/composite/shared/geometry"
)

// Context tells the pipeline whether it runs authoritatively.
type Context uint8

const (
	// ContextClient is prediction: world state changes, external door signals are suppressed.
	ContextClient Context = iota
	// ContextServer is the authoritative simulation.
	ContextServer
)

func (c Context) String() string {
	if c == ContextServer {
		return "server"
	}
	return "client"
}

// Obstacles answers nearest-intersection queries. *geometry.Geometry implements it.
type Obstacles interface {
	Query(pos gamestate.Vec2, probe geometry.Probe) geometry.Nearest
}

// DoorSignaler receives door open/closed transitions in the server context.
type DoorSignaler interface {
	SetDoorOpen(key string, open bool)
}

// DoorSignalers fans one transition out to several receivers in order.
type DoorSignalers []DoorSignaler

func (ds DoorSignalers) SetDoorOpen(key string, open bool) {
	for _, d := range ds {
		d.SetDoorOpen(key, open)
	}
}

// Env carries everything the pipeline reads besides the game state.
type Env struct {
	Obstacles Obstacles
	Context   Context
	// Doors is only signalled in ContextServer. May be nil.
	Doors DoorSignaler
	// FreeMovement disables gravity and lets Top/Bottom drive vertical velocity.
	FreeMovement bool
	// Dev traces every applied input to Logger.
	Dev    bool
	Logger *log.Logger
}

func (e *Env) logf(format string, args ...any) {
	if e.Logger != nil {
		e.Logger.Printf(format, args...)
	}
}
