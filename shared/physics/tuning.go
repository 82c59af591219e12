package physics

// Simulation tuning. Client and server must compile identical values or
// replays diverge.
const (
	MaxVelocity   = 10.0
	Speed         = 20.0
	SpeedInside   = 40.0
	SnapThreshold = 0.001

	Gravity      = 20.0
	JumpPower    = 15.0
	BouncePower  = 15.0
	BouncePush   = 10.0
	MaxFallSpeed = 20.0

	// RangeX and RangeY are the player's half extents; rays reach this far
	// from the player's center before extension by the tick's displacement.
	RangeX = 20.0
	RangeY = 20.0

	// ReferenceRate is the tick rate velocities are expressed in.
	ReferenceRate = 60.0
)
