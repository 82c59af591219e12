package components

import "github.com/yohamta/donburi"

// PauseData stores the pause overlay state. Offline matches stop ticking
// while paused; online matches keep running behind the overlay.
type PauseData struct {
	IsPaused bool
	Leave    bool // Second pause press: return to the menu
}

var Pause = donburi.NewComponentType[PauseData]()
