package physics

import (
	"github.com/automoto/composite/shared/gamestate"
	"github.com/automoto/composite/shared/geometry"
	"github.com/automoto/composite/shared/messages"
)

// ApplySingleInput advances one player by delta seconds under in: velocity
// integration, collision resolution and world update, in that order.
// A non-positive delta changes nothing.
func ApplySingleInput(delta float64, side gamestate.Side, in messages.Inputs, gs *gamestate.GameState, env *Env) {
	p := gs.Player(side)
	if p == nil || delta <= 0 {
		return
	}

	p.Velocity.X = ComputeVelocityX(delta, in, p.State, p.Velocity.X)
	if env.FreeMovement {
		p.Velocity.Y = ComputeVelocityY(delta, in, p.Velocity.Y)
	}

	var hits geometry.Nearest
	if env.Obstacles != nil {
		hits = env.Obstacles.Query(p.Position, probeFor(p, delta, env.FreeMovement))
	}
	resolveCollisions(delta, in, hits, p, env.FreeMovement)
	updateWorld(side, hits, gs, env)
}

// ApplyInputList applies every input buffered for this tick in order. When the
// batch is empty the last applied input is re-applied once so the player keeps
// moving as it last did. It returns the new last applied input.
func ApplyInputList(delta float64, last *messages.GamePlayerInputPayload, batch []messages.GamePlayerInputPayload, gs *gamestate.GameState, env *Env) *messages.GamePlayerInputPayload {
	if len(batch) == 0 {
		if last != nil {
			apply(delta, last, gs, env)
		}
		return last
	}

	for i := range batch {
		apply(delta, &batch[i], gs, env)
	}
	cursor := batch[len(batch)-1]
	return &cursor
}

func apply(delta float64, in *messages.GamePlayerInputPayload, gs *gamestate.GameState, env *Env) {
	p := gs.Player(in.Player)
	if env.Dev && p != nil {
		env.logf("[sim] t=%d apply %s seq=%d time=%d from pos=%+v vel=%+v",
			gs.GameTime, in.Player, in.Sequence, in.Time, p.Position, p.Velocity)
	}
	ApplySingleInput(delta, in.Player, in.Inputs, gs, env)
	if env.Dev && p != nil {
		env.logf("[sim] t=%d applied %s seq=%d to pos=%+v vel=%+v state=%s",
			gs.GameTime, in.Player, in.Sequence, p.Position, p.Velocity, p.State)
	}
}

// AdvanceTick runs one simulation tick: each side's batch is applied in
// gamestate.Sides order, cursors is updated in place and GameTime advances.
func AdvanceTick(delta float64, cursors map[gamestate.Side]*messages.GamePlayerInputPayload, batches map[gamestate.Side][]messages.GamePlayerInputPayload, gs *gamestate.GameState, env *Env) {
	for _, side := range gamestate.Sides {
		cursor := ApplyInputList(delta, cursors[side], batches[side], gs, env)
		if cursor != nil {
			cursors[side] = cursor
		}
	}
	gs.GameTime++
}
