package physics

import (
	"github.com/automoto/composite/shared/gamestate"
	"github.com/automoto/composite/shared/geometry"
	"github.com/automoto/composite/shared/messages"
)

// probeFor extends the fixed ranges by the displacement the player can cover
// this tick so fast movement cannot step over a surface.
func probeFor(p *gamestate.PlayerState, delta float64, free bool) geometry.Probe {
	step := delta * ReferenceRate
	pr := geometry.Probe{Left: RangeX, Right: RangeX, Up: RangeY, Down: RangeY}

	if dx := float64(p.Velocity.X * step); dx > 0 {
		pr.Right += dx
	} else {
		pr.Left -= dx
	}

	vy := p.Velocity.Y
	if !free {
		vy -= float64(Gravity * delta)
	}
	if dy := float64(vy * step); dy > 0 {
		pr.Up += dy
	} else {
		pr.Down -= dy
	}
	return pr
}

// resolveCollisions applies contact responses, jump and gravity to p, then
// integrates its position.
func resolveCollisions(delta float64, in messages.Inputs, hits geometry.Nearest, p *gamestate.PlayerState, free bool) {
	v := &p.Velocity
	pos := &p.Position
	state := gamestate.OnFloor

	if h := hits.Left; h != nil {
		if h.Element.Bounce {
			v.Y = BouncePower
			v.X = BouncePush
		} else {
			v.X = 0
			pos.X = h.Point.X + RangeX
		}
	}

	if h := hits.Right; h != nil {
		if h.Element.Bounce {
			v.Y = BouncePower
			v.X = -BouncePush
		} else {
			v.X = 0
			pos.X = h.Point.X - RangeX
		}
	}

	if h := hits.Up; h != nil {
		if h.Element.Bounce {
			v.Y = -BouncePower
		} else {
			v.Y = 0
		}
		pos.Y = h.Point.Y - RangeY
	}

	if h := hits.Down; h != nil {
		if h.Element.Bounce {
			v.Y = BouncePower
		} else {
			v.Y = 0
			pos.Y = h.Point.Y + RangeY
		}
	} else if hits.Inside != nil {
		state = gamestate.Inside
	} else {
		state = gamestate.InAir
	}

	if in.Jump && state == gamestate.OnFloor {
		v.Y = JumpPower
	}

	if state == gamestate.InAir && !free {
		if v.Y <= -MaxFallSpeed {
			v.Y = -MaxFallSpeed
		} else {
			v.Y -= float64(Gravity * delta)
		}
	}

	step := delta * ReferenceRate
	pos.X += float64(v.X * step)
	pos.Y += float64(v.Y * step)
	p.State = state
}
