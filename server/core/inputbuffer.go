package core

import (
	"sort"
	"sync"

	"github.com/automoto/composite/shared/messages"
)

// InputBuffer stages one side's inputs between ticks. It is safe for
// concurrent producers and a single consumer.
//
// Inputs whose sequence is not above the last one accepted are dropped, so a
// drained batch is always strictly increasing and never repeats an input.
type InputBuffer struct {
	mu       sync.Mutex
	pending  []messages.GamePlayerInputPayload
	capacity int
	lastSeq  uint32
	dropped  uint64
}

func NewInputBuffer(capacity int) *InputBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &InputBuffer{capacity: capacity}
}

// Push stages in, returning false when it is stale, a duplicate or the buffer is full.
func (b *InputBuffer) Push(in messages.GamePlayerInputPayload) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if in.Sequence <= b.lastSeq {
		b.dropped++
		return false
	}
	i := sort.Search(len(b.pending), func(i int) bool {
		return b.pending[i].Sequence >= in.Sequence
	})
	if i < len(b.pending) && b.pending[i].Sequence == in.Sequence {
		b.dropped++
		return false
	}
	if len(b.pending) == b.capacity {
		b.dropped++
		return false
	}
	b.pending = append(b.pending, messages.GamePlayerInputPayload{})
	copy(b.pending[i+1:], b.pending[i:])
	b.pending[i] = in
	return true
}

// Drain returns the staged inputs in sequence order and clears the buffer.
func (b *InputBuffer) Drain() []messages.GamePlayerInputPayload {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.pending) == 0 {
		return nil
	}
	out := b.pending
	b.pending = nil
	b.lastSeq = out[len(out)-1].Sequence
	return out
}

// Len reports the number of staged inputs.
func (b *InputBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Dropped reports how many inputs were rejected so far.
func (b *InputBuffer) Dropped() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Reset forgets staged inputs and the last accepted sequence, for a side
// taken over by a new client.
func (b *InputBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = nil
	b.lastSeq = 0
}
