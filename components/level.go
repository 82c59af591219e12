package components

import (
	"github.com/automoto/composite/shared/leveldata"
	"github.com/yohamta/donburi"
)

type LevelData struct {
	CurrentLevel *leveldata.LevelData
}

var Level = donburi.NewComponentType[LevelData]()
