package physics

import (
	"math"

	"github.com/automoto/composite/shared/gamestate"
	"github.com/automoto/composite/shared/messages"
)

// approach moves v a 1/speed fraction of the way to target.
func approach(speed, target, v float64) float64 {
	return v + (target-v)/speed
}

// effectiveSpeed scales the base speed to delta so convergence per second is
// the same at any tick rate. It never drops below 1: a step never overshoots.
func effectiveSpeed(delta, base float64) float64 {
	deltaInverse := 1 / delta / (ReferenceRate * ReferenceRate)
	s := float64(base*deltaInverse) * ReferenceRate
	if s < 1 {
		return 1
	}
	return s
}

// IntegrateAxis eases velocity along one axis toward ±maxVelocity while a
// direction is held, or toward zero (snapping below SnapThreshold) when none is.
// Both limits are checked against the incoming velocity, so holding both
// directions applies the negative then the positive step.
func IntegrateAxis(delta float64, negative, positive bool, v, maxVelocity, baseSpeed float64) float64 {
	if delta <= 0 {
		return v
	}
	speed := effectiveSpeed(delta, baseSpeed)
	pastMin := v < -maxVelocity
	pastMax := v > maxVelocity

	if negative {
		if pastMin {
			v = -maxVelocity
		} else {
			v = approach(speed, -maxVelocity, v)
		}
	}
	if positive {
		if pastMax {
			v = maxVelocity
		} else {
			v = approach(speed, maxVelocity, v)
		}
	}
	if !negative && !positive {
		v = approach(speed, 0, v)
		if math.Abs(v) < SnapThreshold {
			v = 0
		}
	}
	return v
}

// ComputeVelocityX integrates horizontal velocity. Embedded players move with
// the inside speed.
func ComputeVelocityX(delta float64, in messages.Inputs, state gamestate.MovableState, vx float64) float64 {
	base := Speed
	if state == gamestate.Inside {
		base = SpeedInside
	}
	return IntegrateAxis(delta, in.Left, in.Right, vx, MaxVelocity, base)
}

// ComputeVelocityY integrates vertical velocity. Only used in free movement.
func ComputeVelocityY(delta float64, in messages.Inputs, vy float64) float64 {
	return IntegrateAxis(delta, in.Bottom, in.Top, vy, MaxVelocity, Speed)
}
