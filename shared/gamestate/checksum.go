package gamestate

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// canonical is the hashed form of a GameState. It holds no maps: players
// follow Sides and doors follow their sorted keys.
type canonical struct {
	GameTime int64
	Players  []canonicalPlayer
	Level    LevelID
	Variant  string
	Doors    []canonicalDoor
	EndLevel []Side
}

type canonicalPlayer struct {
	Side   Side
	Player PlayerState
}

type canonicalDoor struct {
	Key   string
	Sides []Side
}

func (g *GameState) canonical() canonical {
	c := canonical{GameTime: g.GameTime}
	for _, side := range Sides {
		if p, ok := g.Players[side]; ok {
			c.Players = append(c.Players, canonicalPlayer{Side: side, Player: *p})
		}
	}
	switch l := normalizeLevel(g.Level).(type) {
	case *PositionLevelState:
		c.Level, c.Variant, c.EndLevel = l.ID, "position", l.EndLevel
		for _, key := range l.DoorKeys() {
			c.Doors = append(c.Doors, canonicalDoor{Key: key, Sides: l.Doors[key]})
		}
	case *SandboxLevelState:
		c.Level, c.Variant, c.EndLevel = l.ID, "sandbox", l.EndLevel
	}
	return c
}

// Checksum hashes a canonical encoding of g. Two states with the same values
// always produce the same digest.
func (g *GameState) Checksum() (string, error) {
	c := g.canonical()

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.UseArrayEncodedStructs(true)
	if err := enc.Encode(&c); err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}
