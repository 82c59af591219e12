package main

import (
	"flag"
	"image"
	"log"

	"github.com/automoto/composite/config"
	"github.com/automoto/composite/fonts"
	"github.com/automoto/composite/network"
	"github.com/automoto/composite/scenes"
	"github.com/automoto/composite/shared/gamestate"
	"github.com/automoto/composite/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func NewGame(level gamestate.LevelID) *Game {
	g := &Game{
		bounds: image.Rectangle{},
	}

	if config.Debug.SkipMenu {
		scene, err := offlineScene(g, level)
		if err == nil {
			g.scene = scene
			return g
		}
		log.Printf("Warning: could not start offline match: %v", err)
	}
	g.scene = scenes.NewMenuScene(g)

	return g
}

func offlineScene(g *Game, id gamestate.LevelID) (Scene, error) {
	level, err := network.LoadLevel(id)
	if err != nil {
		return nil, err
	}
	match, err := network.NewOfflineMatch(level, config.Match.TickRate, config.Match.DoorTween, config.Debug.Dev)
	if err != nil {
		return nil, err
	}
	return scenes.NewGameScene(g, match)
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	offline := flag.Bool("offline", false, "skip the menu and play both sides locally")
	level := flag.String("level", string(config.Match.DefaultLevel), "level for -offline")
	dev := flag.Bool("dev", false, "log prediction replays and show checksums")
	version := flag.String("version", config.Network.GameVersion, "version sent when joining a server")
	flag.Parse()

	config.Debug.SkipMenu = *offline
	config.Debug.Dev = *dev
	config.Network.GameVersion = *version

	if err := fonts.LoadDefaults(); err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	ebiten.SetWindowTitle("Composite")
	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	// Initialize persistence and load saved settings
	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	systems.ApplyDisplaySettings(systems.LoadSettings())

	if err := ebiten.RunGame(NewGame(gamestate.LevelID(*level))); err != nil {
		log.Fatal(err)
	}
}
