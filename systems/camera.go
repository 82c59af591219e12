package systems

import (
	"math"

	"github.com/automoto/composite/components"
	"github.com/automoto/composite/config"
	"github.com/automoto/composite/shared/gamestate"
	"github.com/automoto/composite/tags"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
)

// UpdateCamera follows the first local player. Camera positions are in
// world coordinates (y-up).
func UpdateCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)

	target, player, ps, ok := cameraTarget(e)
	if !ok {
		return
	}

	// Only update look-ahead when player is moving - freeze offset when idle
	if math.Abs(ps.Velocity.X) > config.Camera.LookAheadSpeedThreshold {
		targetLookAhead := player.Direction * config.Camera.LookAheadDistanceX
		camera.LookAheadX += (targetLookAhead - camera.LookAheadX) * config.Camera.LookAheadSmoothing
	}
	target.X += camera.LookAheadX
	target = clampToLevel(e, target)

	camera.Position.X += (target.X - camera.Position.X) * config.Camera.FollowSmoothing
	camera.Position.Y += (target.Y - camera.Position.Y) * config.Camera.FollowSmoothing
}

// SnapCamera centres the camera on the first local player immediately.
func SnapCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	target, _, _, ok := cameraTarget(e)
	if !ok {
		return
	}
	components.Camera.Get(cameraEntry).Position = clampToLevel(e, target)
}

func cameraTarget(e *ecs.ECS) (dmath.Vec2, *components.PlayerData, *gamestate.PlayerState, bool) {
	match := CurrentMatch(e)
	if match == nil || match.Match == nil {
		return dmath.Vec2{}, nil, nil, false
	}
	playerEntry, ok := tags.Local.First(e.World)
	if !ok {
		return dmath.Vec2{}, nil, nil, false
	}
	player := components.Player.Get(playerEntry)
	ps := match.Match.State().Player(player.Side)
	if ps == nil {
		return dmath.Vec2{}, nil, nil, false
	}
	return dmath.Vec2{X: ps.Position.X, Y: ps.Position.Y}, player, ps, true
}

func clampToLevel(e *ecs.ECS, target dmath.Vec2) dmath.Vec2 {
	levelEntry, ok := components.Level.First(e.World)
	if !ok {
		return target
	}
	level := components.Level.Get(levelEntry).CurrentLevel
	if level == nil {
		return target
	}
	return ClampCamera(target,
		float64(config.C.Width), float64(config.C.Height),
		float64(level.MapWidth), float64(level.MapHeight))
}

// ClampCamera keeps the view inside the level; a level smaller than the
// screen is centred.
func ClampCamera(target dmath.Vec2, screenW, screenH, levelW, levelH float64) dmath.Vec2 {
	clamp := func(v, screen, level float64) float64 {
		if level <= screen {
			return level / 2
		}
		return math.Max(screen/2, math.Min(level-screen/2, v))
	}
	return dmath.Vec2{
		X: clamp(target.X, screenW, levelW),
		Y: clamp(target.Y, screenH, levelH),
	}
}

// WorldToScreen converts a y-up world point to screen pixels for a camera
// centred at cam.
func WorldToScreen(cam dmath.Vec2, x, y, screenW, screenH float64) (float64, float64) {
	return x - cam.X + screenW/2, screenH/2 - (y - cam.Y)
}
