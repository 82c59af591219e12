package geometry

import (
	"math"
	"sort"

	"github.com/automoto/composite/shared/gamestate"
	"github.com/solarlune/resolv"
)

// TagCollider marks every element object in the space.
const TagCollider = "collider"

const (
	cellSize    = 32
	spaceMargin = 256
	// contactSlop absorbs rounding when a player rests exactly at reach.
	contactSlop = 1e-6
)

// Probe holds how far to look from the query point in each direction.
type Probe struct {
	Left, Right, Up, Down float64
}

// Hit is the nearest surface found in one direction.
type Hit struct {
	Element  *Element
	Point    gamestate.Vec2
	Distance float64
}

// Nearest is the result of a geometry query. Directions without a surface in
// reach are nil. Inside is set when the query point is embedded in a solid.
type Nearest struct {
	Left, Right, Up, Down *Hit
	Inside                *Element
}

// Geometry answers nearest-intersection queries over a level's static elements.
// A Geometry belongs to one simulation and is not safe for concurrent use.
type Geometry struct {
	elements  []*Element
	space     *resolv.Space
	probe     *resolv.Object
	originX   float64
	originY   float64
	openDoors map[string]bool
}

// New indexes elements in a resolv space. Insertion order decides ties.
func New(elements []Element) *Geometry {
	g := &Geometry{openDoors: make(map[string]bool)}
	if len(elements) == 0 {
		return g
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, e := range elements {
		minX = math.Min(minX, e.Bounds.X)
		minY = math.Min(minY, e.Bounds.Y)
		maxX = math.Max(maxX, e.Bounds.Right())
		maxY = math.Max(maxY, e.Bounds.Top())
	}
	g.originX = minX - spaceMargin
	g.originY = minY - spaceMargin
	w := int(math.Ceil(maxX-minX)) + 2*spaceMargin
	h := int(math.Ceil(maxY-minY)) + 2*spaceMargin
	g.space = resolv.NewSpace(w, h, cellSize, cellSize)

	for i := range elements {
		e := elements[i]
		e.index = i
		g.elements = append(g.elements, &e)

		obj := resolv.NewObject(e.Bounds.X-g.originX, e.Bounds.Y-g.originY, e.Bounds.W, e.Bounds.H, TagCollider)
		obj.SetShape(resolv.NewRectangle(0, 0, e.Bounds.W, e.Bounds.H))
		obj.Data = i
		g.space.Add(obj)
	}

	g.probe = resolv.NewObject(0, 0, 1, 1)
	g.space.Add(g.probe)
	return g
}

// Elements returns a copy of the indexed elements in insertion order.
func (g *Geometry) Elements() []Element {
	out := make([]Element, len(g.elements))
	for i, e := range g.elements {
		out[i] = *e
	}
	return out
}

// DoorKeys returns the distinct keys of door panels, sorted.
func (g *Geometry) DoorKeys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, e := range g.elements {
		if e.Kind == KindDoor && !seen[e.DoorKey] {
			seen[e.DoorKey] = true
			keys = append(keys, e.DoorKey)
		}
	}
	sort.Strings(keys)
	return keys
}

// SetDoorOpen makes the panels of door key stop (or resume) blocking queries.
func (g *Geometry) SetDoorOpen(key string, open bool) {
	if open {
		g.openDoors[key] = true
		return
	}
	delete(g.openDoors, key)
}

func (g *Geometry) DoorOpen(key string) bool {
	return g.openDoors[key]
}

// Query returns the nearest surface in each direction from pos within the
// probe's reach.
func (g *Geometry) Query(pos gamestate.Vec2, p Probe) Nearest {
	var n Nearest
	if len(g.elements) == 0 {
		return n
	}

	for _, e := range g.candidates(pos, p) {
		if e.Kind == KindDoor && g.openDoors[e.DoorKey] {
			continue
		}
		b := e.Bounds

		if n.Inside == nil && !e.IsTrigger() && b.containsStrict(pos.X, pos.Y) {
			n.Inside = e
		}

		if pos.X >= b.X && pos.X <= b.Right() {
			if d := pos.Y - b.Top(); inReach(d, p.Down) {
				n.Down = closer(n.Down, e, gamestate.Vec2{X: pos.X, Y: b.Top()}, d)
			}
		}
		// triggers are pads: they only answer from below the player
		if e.IsTrigger() {
			continue
		}
		if pos.X >= b.X && pos.X <= b.Right() {
			if d := b.Y - pos.Y; inReach(d, p.Up) {
				n.Up = closer(n.Up, e, gamestate.Vec2{X: pos.X, Y: b.Y}, d)
			}
		}
		if pos.Y >= b.Y && pos.Y <= b.Top() {
			if d := pos.X - b.Right(); inReach(d, p.Left) {
				n.Left = closer(n.Left, e, gamestate.Vec2{X: b.Right(), Y: pos.Y}, d)
			}
			if d := b.X - pos.X; inReach(d, p.Right) {
				n.Right = closer(n.Right, e, gamestate.Vec2{X: b.X, Y: pos.Y}, d)
			}
		}
	}

	// candidates come back in cell order; re-resolve Inside by insertion order
	if n.Inside != nil {
		for _, e := range g.elements {
			if e.Kind == KindDoor && g.openDoors[e.DoorKey] {
				continue
			}
			if !e.IsTrigger() && e.Bounds.containsStrict(pos.X, pos.Y) {
				n.Inside = e
				break
			}
		}
	}
	return n
}

// candidates uses the resolv space as a broad phase: the probe object is
// stretched over the query's reach and checked against element cells.
func (g *Geometry) candidates(pos gamestate.Vec2, p Probe) []*Element {
	left := math.Max(p.Left, 0) + 1
	right := math.Max(p.Right, 0) + 1
	down := math.Max(p.Down, 0) + 1
	up := math.Max(p.Up, 0) + 1

	g.probe.X = pos.X - left - g.originX
	g.probe.Y = pos.Y - down - g.originY
	g.probe.W = left + right
	g.probe.H = down + up
	g.probe.Update()

	col := g.probe.Check(0, 0, TagCollider)
	if col == nil {
		return nil
	}
	out := make([]*Element, 0, len(col.Objects))
	for _, obj := range col.Objects {
		if i, ok := obj.Data.(int); ok {
			out = append(out, g.elements[i])
		}
	}
	return out
}

func inReach(d, reach float64) bool {
	return d >= 0 && d <= reach+contactSlop
}

func closer(cur *Hit, e *Element, point gamestate.Vec2, d float64) *Hit {
	if cur != nil && (cur.Distance < d || (cur.Distance == d && cur.Element.index < e.index)) {
		return cur
	}
	return &Hit{Element: e, Point: point, Distance: d}
}
