package scenes

import (
	"fmt"
	"image/color"
	"log"
	"sync"

	cfg "github.com/automoto/composite/config"
	"github.com/automoto/composite/network"
	"github.com/automoto/composite/shared/gamestate"
	"github.com/automoto/composite/shared/messages"
	"github.com/automoto/composite/systems"
	"github.com/automoto/composite/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneChanger allows scenes to trigger transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// Levels offered on the menu, in cycle order.
var Levels = []string{string(gamestate.LevelCrackTheDoor), string(gamestate.LevelSandbox)}

// MenuScene picks between local play and joining a server.
type MenuScene struct {
	sceneChanger SceneChanger
	connectUI    *ui.ConnectUI
	netClient    *network.Client
	once         sync.Once

	// set from UI callbacks, consumed on the next Update
	pendingOffline *ui.ConnectChoice
	pendingOnline  *ui.ConnectChoice
	status         string
}

func NewMenuScene(sc SceneChanger) *MenuScene {
	return &MenuScene{sceneChanger: sc}
}

// NewMenuSceneWithStatus returns to the menu showing why the last match ended.
func NewMenuSceneWithStatus(sc SceneChanger, status string) *MenuScene {
	return &MenuScene{sceneChanger: sc, status: status}
}

func (ms *MenuScene) configure() {
	saved := systems.LoadSettings()
	defaults := ui.ConnectChoice{
		Address: saved.Address,
		Session: saved.Session,
		Side:    saved.Side,
		Level:   saved.Level,
	}
	if defaults.Level == "" {
		defaults.Level = string(cfg.Match.DefaultLevel)
	}

	ms.connectUI = ui.NewConnectUI(defaults, cfg.Settings.SideChoices, Levels,
		func(choice ui.ConnectChoice) { ms.pendingOffline = &choice },
		func(choice ui.ConnectChoice) { ms.pendingOnline = &choice },
	)
	ms.connectUI.SetStatus(ms.status)
}

func (ms *MenuScene) Update() {
	ms.once.Do(ms.configure)
	ms.connectUI.Update()

	if choice := ms.pendingOffline; choice != nil {
		ms.pendingOffline = nil
		ms.remember(*choice)
		ms.startOffline(*choice)
		return
	}

	if choice := ms.pendingOnline; choice != nil && ms.netClient == nil {
		ms.pendingOnline = nil
		ms.remember(*choice)
		ms.connectUI.SetConnecting(true)
		ms.netClient = network.NewClient()
		ms.netClient.Connect(choice.Address, messages.JoinRequest{
			Version: cfg.Network.GameVersion,
			Session: choice.Session,
			Side:    gamestate.Side(choice.Side),
			Level:   gamestate.LevelID(choice.Level),
		})
	}

	if ms.netClient != nil {
		ms.pollClient()
	}
}

func (ms *MenuScene) pollClient() {
	switch ms.netClient.State() {
	case network.StateJoinedGame:
		client := ms.netClient
		ms.netClient = nil
		match, err := network.NewOnlineMatch(client, cfg.Debug.Dev)
		if err != nil {
			client.Disconnect()
			ms.connectUI.SetStatus(err.Error())
			ms.connectUI.SetConnecting(false)
			return
		}
		accepted := client.Accepted()
		log.Printf("[client] joined session %s as %s", accepted.Session, accepted.Side)
		ms.startMatch(match)

	case network.StateError:
		errMsg := "Connection failed"
		if err := ms.netClient.LastError(); err != nil {
			errMsg = err.Error()
		}
		ms.connectUI.SetStatus(errMsg)
		ms.connectUI.SetConnecting(false)
		ms.netClient.Disconnect()
		ms.netClient = nil

	case network.StateConnecting:
		ms.connectUI.SetStatus("Connecting...")

	case network.StateConnected:
		ms.connectUI.SetStatus("Connected, joining session...")

	case network.StateDisconnected:
		ms.connectUI.SetStatus("Disconnected")
		ms.connectUI.SetConnecting(false)
		ms.netClient = nil
	}
}

func (ms *MenuScene) startOffline(choice ui.ConnectChoice) {
	level, err := network.LoadLevel(gamestate.LevelID(choice.Level))
	if err != nil {
		ms.connectUI.SetStatus(err.Error())
		return
	}
	match, err := network.NewOfflineMatch(level, cfg.Match.TickRate, cfg.Match.DoorTween, cfg.Debug.Dev)
	if err != nil {
		ms.connectUI.SetStatus(err.Error())
		return
	}
	ms.startMatch(match)
}

func (ms *MenuScene) startMatch(match network.Match) {
	scene, err := NewGameScene(ms.sceneChanger, match)
	if err != nil {
		match.Close()
		ms.connectUI.SetStatus(fmt.Sprintf("could not start: %v", err))
		ms.connectUI.SetConnecting(false)
		return
	}
	ms.sceneChanger.ChangeScene(scene)
}

func (ms *MenuScene) remember(choice ui.ConnectChoice) {
	saved := systems.LoadSettings()
	saved.Address = choice.Address
	saved.Session = choice.Session
	saved.Side = choice.Side
	saved.Level = choice.Level
	if err := systems.SaveSettings(saved); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
	}
}

func (ms *MenuScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.RGBA{20, 20, 30, 255})

	if ms.connectUI == nil {
		return
	}
	ms.connectUI.UI.Draw(screen)
}
