package factory

import (
	"github.com/automoto/composite/archetypes"
	"github.com/automoto/composite/components"
	"github.com/automoto/composite/shared/leveldata"
	"github.com/yohamta/donburi/ecs"
)

func CreateLevel(ecs *ecs.ECS, level *leveldata.LevelData) {
	entry := archetypes.Level.Spawn(ecs)
	components.Level.Set(entry, &components.LevelData{CurrentLevel: level})
}
