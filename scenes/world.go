package scenes

import (
	"fmt"
	"image/color"
	"log"
	"sync"
	"time"

	cfg "github.com/automoto/composite/config"
	"github.com/automoto/composite/components"
	"github.com/automoto/composite/network"
	"github.com/automoto/composite/shared/leveldata"
	"github.com/automoto/composite/systems"
	"github.com/automoto/composite/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// GameScene plays one match, local or online.
type GameScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	match        network.Match
	level        *leveldata.LevelData
	once         sync.Once
}

// NewGameScene loads the match's level and wraps it in a scene.
func NewGameScene(sc SceneChanger, match network.Match) (*GameScene, error) {
	level, err := network.LoadLevel(match.Status().Level)
	if err != nil {
		return nil, fmt.Errorf("load level: %w", err)
	}
	return &GameScene{sceneChanger: sc, match: match, level: level}, nil
}

func (gs *GameScene) Update() {
	gs.once.Do(gs.configure)
	gs.ecs.Update()

	matchData := systems.CurrentMatch(gs.ecs)
	if matchData == nil {
		return
	}

	if matchData.Err != nil {
		gs.leave(matchData.Err.Error())
		return
	}

	entry, ok := components.Match.First(gs.ecs.World)
	if ok && components.Pause.Get(entry).Leave {
		gs.leave("")
	}
}

func (gs *GameScene) leave(status string) {
	gs.match.Close()
	ebiten.SetTPS(ebiten.DefaultTPS)
	if status != "" {
		log.Printf("[client] left match: %s", status)
	}
	gs.sceneChanger.ChangeScene(NewMenuSceneWithStatus(gs.sceneChanger, status))
}

func (gs *GameScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if gs.ecs == nil {
		return
	}
	gs.ecs.Draw(screen)
}

func (gs *GameScene) configure() {
	ebiten.SetTPS(cfg.Match.TickRate)

	gs.ecs = ecs.NewECS(donburi.NewWorld())

	gs.ecs.AddSystem(systems.UpdateInput)
	gs.ecs.AddSystem(systems.UpdatePlayerInput)
	gs.ecs.AddSystem(systems.UpdatePause)
	gs.ecs.AddSystem(systems.NewUpdateMatch(func() int64 { return time.Now().UnixMilli() }))
	gs.ecs.AddSystem(systems.UpdateCamera)

	gs.ecs.AddRenderer(cfg.Default, systems.DrawLevel)
	gs.ecs.AddRenderer(cfg.Default, systems.DrawPlayers)
	gs.ecs.AddRenderer(cfg.HUD, systems.DrawHUD)
	gs.ecs.AddRenderer(cfg.HUD, systems.DrawPause)

	factory.CreateLevel(gs.ecs, gs.level)
	factory.CreateMatch(gs.ecs, gs.match)
	factory.CreateCamera(gs.ecs)

	systems.SnapCamera(gs.ecs)
}
