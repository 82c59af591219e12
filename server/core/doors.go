package core

import (
	"math"
	"sort"
	"time"

	"github.com/automoto/composite/shared/geometry"
	"github.com/automoto/composite/shared/messages"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// DoorData is the animated state of one door. Offset slides from 0 (closed)
// to Travel (fully open).
type DoorData struct {
	Key    string
	Open   bool
	Offset float64
	Travel float64
	tween  *gween.Tween
}

var Door = donburi.NewComponentType[DoorData]()

// DoorChange is a door open/closed transition observed during a tick.
type DoorChange struct {
	Key  string
	Open bool
}

// DoorAnimator drives door panel slides for one session. It receives
// transitions from the simulation and tweens the panels in its own world.
type DoorAnimator struct {
	world    donburi.World
	byKey    map[string]donburi.Entity
	duration float32
	changes  []DoorChange
}

// NewDoorAnimator creates one door entity per door key. A door travels the
// longest side of its largest panel.
func NewDoorAnimator(elements []geometry.Element, duration time.Duration) *DoorAnimator {
	a := &DoorAnimator{
		world:    donburi.NewWorld(),
		byKey:    make(map[string]donburi.Entity),
		duration: float32(duration.Seconds()),
	}
	for _, e := range elements {
		if e.Kind != geometry.KindDoor {
			continue
		}
		travel := math.Max(e.Bounds.W, e.Bounds.H)
		if ent, ok := a.byKey[e.DoorKey]; ok {
			d := Door.Get(a.world.Entry(ent))
			d.Travel = math.Max(d.Travel, travel)
			continue
		}
		ent := a.world.Create(Door)
		Door.Set(a.world.Entry(ent), &DoorData{Key: e.DoorKey, Travel: travel})
		a.byKey[e.DoorKey] = ent
	}
	return a
}

// SetDoorOpen starts sliding the door toward its new state from wherever it is.
func (a *DoorAnimator) SetDoorOpen(key string, open bool) {
	ent, ok := a.byKey[key]
	if !ok {
		return
	}
	d := Door.Get(a.world.Entry(ent))
	if d.Open == open {
		return
	}
	d.Open = open
	target := 0.0
	if open {
		target = d.Travel
	}
	if a.duration <= 0 {
		d.Offset = target
		d.tween = nil
	} else {
		d.tween = gween.New(float32(d.Offset), float32(target), a.duration, ease.OutQuad)
	}
	a.changes = append(a.changes, DoorChange{Key: key, Open: open})
}

// Update advances every running slide by dt seconds.
func (a *DoorAnimator) Update(dt float64) {
	Door.Each(a.world, func(entry *donburi.Entry) {
		d := Door.Get(entry)
		if d.tween == nil {
			return
		}
		current, finished := d.tween.Update(float32(dt))
		d.Offset = float64(current)
		if finished {
			d.tween = nil
			if d.Open {
				d.Offset = d.Travel
			} else {
				d.Offset = 0
			}
		}
	})
}

// Views returns the door states sorted by key.
func (a *DoorAnimator) Views() []messages.DoorView {
	views := make([]messages.DoorView, 0, len(a.byKey))
	Door.Each(a.world, func(entry *donburi.Entry) {
		d := Door.Get(entry)
		views = append(views, messages.DoorView{Key: d.Key, Open: d.Open, Offset: d.Offset})
	})
	sort.Slice(views, func(i, j int) bool { return views[i].Key < views[j].Key })
	return views
}

// DrainChanges returns the transitions recorded since the last call.
func (a *DoorAnimator) DrainChanges() []DoorChange {
	out := a.changes
	a.changes = nil
	return out
}
