package core

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/automoto/composite/assets"
	"github.com/automoto/composite/shared/gamestate"
	"github.com/automoto/composite/shared/leveldata"
)

var ErrUnknownLevel = errors.New("unknown level")

// LevelCatalog is the set of levels a server can host.
type LevelCatalog struct {
	levels map[gamestate.LevelID]*leveldata.LevelData
	ids    []gamestate.LevelID
}

// LoadLevelCatalog loads every .tmx level from dir, or from the embedded
// assets when dir is empty.
func LoadLevelCatalog(dir string) (*LevelCatalog, error) {
	var (
		fsys fs.FS = assets.FS()
		sub        = assets.LevelsDir
	)
	if dir != "" {
		fsys, sub = os.DirFS(dir), "."
	}
	levels, ids, err := leveldata.LoadAllLevels(fsys, sub)
	if err != nil {
		return nil, fmt.Errorf("load level catalog: %w", err)
	}
	for _, id := range ids {
		l := levels[id]
		log.Printf("[level] loaded %s (%s): %d elements, %d doors, %dx%d",
			id, l.Archetype, len(l.Elements), len(l.DoorKeys()), l.MapWidth, l.MapHeight)
	}
	return &LevelCatalog{levels: levels, ids: ids}, nil
}

// Get returns the level with the given id.
func (c *LevelCatalog) Get(id gamestate.LevelID) (*leveldata.LevelData, error) {
	l, ok := c.levels[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownLevel, id)
	}
	return l, nil
}

func (c *LevelCatalog) IDs() []gamestate.LevelID { return c.ids }
