package core

import (
	"log"
	"time"
)

// Ticker is anything the loop advances once per tick.
type Ticker interface {
	Tick()
}

type GameLoop struct {
	target   Ticker
	tickRate int
	stopChan chan struct{}
	done     chan struct{}
}

func NewGameLoop(target Ticker, tickRate int) *GameLoop {
	return &GameLoop{
		target:   target,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (g *GameLoop) Run() {
	defer close(g.done)
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("[loop] started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			log.Println("[loop] stopped")
			return
		case <-ticker.C:
			g.target.Tick()
		}
	}
}

// Stop ends the loop and waits for the tick in progress to finish.
func (g *GameLoop) Stop() {
	close(g.stopChan)
	<-g.done
}
