package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/automoto/composite/shared/gamestate"
	"github.com/automoto/composite/shared/geometry"
	"github.com/lafriks/go-tiled"
)

const (
	groupColliders = "Colliders"
	groupSpawns    = "PlayerSpawn"
)

// LoadLevel parses a TMX file into level data. It takes an fs.FS so callers
// can pass embed.FS (client) or os.DirFS (server).
//
// TMX y grows downward; elements and spawns are flipped into y-up space
// using the map height.
func LoadLevel(fsys fs.FS, tmxPath string) (*LevelData, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	data := &LevelData{
		ID:        gamestate.LevelID(strings.TrimSuffix(filepath.Base(tmxPath), ".tmx")),
		Archetype: Archetype(levelMap.Properties.GetString("archetype")),
		Spawns:    make(map[gamestate.Side]gamestate.Vec2, len(gamestate.Sides)),
		MapWidth:  levelMap.Width * levelMap.TileWidth,
		MapHeight: levelMap.Height * levelMap.TileHeight,
	}
	if data.Archetype == "" {
		data.Archetype = ArchetypeSandbox
	}
	mapH := float64(data.MapHeight)

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case groupColliders:
			for _, o := range og.Objects {
				if o.Name == "" {
					return nil, fmt.Errorf("level %s: collider %d has no name", data.ID, o.ID)
				}
				bounds := geometry.Rect{X: o.X, Y: mapH - (o.Y + o.Height), W: o.Width, H: o.Height}
				data.Elements = append(data.Elements, geometry.NewElement(o.Name, bounds, o.Properties.GetBool("bounce")))
			}
		case groupSpawns:
			for _, o := range og.Objects {
				side := gamestate.Side(strings.ToUpper(o.Properties.GetString("side")))
				if !side.Valid() {
					return nil, fmt.Errorf("level %s: spawn %d has side %q", data.ID, o.ID, side)
				}
				data.Spawns[side] = gamestate.Vec2{X: o.X, Y: mapH - o.Y}
			}
		}
	}

	for _, side := range gamestate.Sides {
		if _, ok := data.Spawns[side]; !ok {
			return nil, fmt.Errorf("level %s: no spawn for %s", data.ID, side)
		}
	}
	if _, err := data.NewState(); err != nil {
		return nil, err
	}
	return data, nil
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys, loads each,
// and returns them keyed by level id plus a sorted list of ids.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[gamestate.LevelID]*LevelData, []gamestate.LevelID, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[gamestate.LevelID]*LevelData, len(matches))
	ids := make([]gamestate.LevelID, 0, len(matches))

	for _, path := range matches {
		data, err := LoadLevel(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		levels[data.ID] = data
		ids = append(ids, data.ID)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return levels, ids, nil
}
