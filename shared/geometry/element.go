package geometry

import (
	"fmt"
	"strings"
)

// Element names follow a fixed contract shared with level authoring:
//
//	WALL_DOOR_<ID>          door panel, blocks while its door is closed
//	<ID>_AREA_DOOR_OPENER   pad that holds door <ID> open
//	AREA_END_LEVEL          end-of-level pad
const (
	AreaDoorOpenerSuffix = "AREA_DOOR_OPENER"
	WallDoorPrefix       = "WALL_DOOR_"
	EndLevelName         = "AREA_END_LEVEL"
)

// AreaDoorOpenerName returns the opener element name for a door key.
func AreaDoorOpenerName(key string) string {
	return key + "_" + AreaDoorOpenerSuffix
}

// WallDoorName returns the door panel element name for a door key.
func WallDoorName(key string) string {
	return WallDoorPrefix + key
}

// DoorKeyFromOpener strips the opener suffix. ok is false when name is not an opener.
func DoorKeyFromOpener(name string) (key string, ok bool) {
	key, ok = strings.CutSuffix(name, "_"+AreaDoorOpenerSuffix)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

type Kind uint8

const (
	KindSolid Kind = iota
	KindDoor
	KindDoorOpener
	KindEndLevel
)

func (k Kind) String() string {
	switch k {
	case KindSolid:
		return "solid"
	case KindDoor:
		return "door"
	case KindDoorOpener:
		return "doorOpener"
	case KindEndLevel:
		return "endLevel"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Classify resolves the capability of an element from its name.
func Classify(name string) (Kind, string) {
	if name == EndLevelName {
		return KindEndLevel, ""
	}
	if key, ok := DoorKeyFromOpener(name); ok {
		return KindDoorOpener, key
	}
	if key, ok := strings.CutPrefix(name, WallDoorPrefix); ok && key != "" {
		return KindDoor, key
	}
	return KindSolid, ""
}

// Rect is an axis-aligned box; (X, Y) is its bottom-left corner in y-up space.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64 { return r.X + r.W }
func (r Rect) Top() float64   { return r.Y + r.H }

// containsStrict reports whether p lies in the interior of r.
func (r Rect) containsStrict(x, y float64) bool {
	return x > r.X && x < r.Right() && y > r.Y && y < r.Top()
}

// Element is a static colliding body with the capability data the resolver and
// world updater read. Capabilities are fixed when the element is created.
type Element struct {
	Name    string
	Bounds  Rect
	Bounce  bool
	Kind    Kind
	DoorKey string

	index int
}

// NewElement classifies name and returns the element.
func NewElement(name string, bounds Rect, bounce bool) Element {
	kind, key := Classify(name)
	return Element{Name: name, Bounds: bounds, Bounce: bounce, Kind: kind, DoorKey: key}
}

func (e *Element) IsDoorOpener() bool { return e.Kind == KindDoorOpener }
func (e *Element) IsEndLevel() bool   { return e.Kind == KindEndLevel }
func (e *Element) IsTrigger() bool    { return e.Kind == KindDoorOpener || e.Kind == KindEndLevel }
