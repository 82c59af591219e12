package tags

import "github.com/yohamta/donburi"

var (
	Player = donburi.NewTag().SetName("Player")
	Local  = donburi.NewTag().SetName("Local")
)
