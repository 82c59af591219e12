package network

import (
	"math"

	"github.com/automoto/composite/shared/gamestate"
	"github.com/automoto/composite/shared/messages"
)

// About four seconds of inputs at 60 Hz.
const predictionBufferSize = 256

// InputRecord stores an input alongside the predicted position after applying it.
type InputRecord struct {
	Input     messages.GamePlayerInputPayload
	Predicted gamestate.Vec2
}

// PredictionBuffer is a ring buffer that stores recent inputs and their
// predicted outcomes for server reconciliation.
type PredictionBuffer struct {
	history [predictionBufferSize]InputRecord
	nextSeq uint32
}

// Store saves an input and the resulting predicted position.
func (pb *PredictionBuffer) Store(input messages.GamePlayerInputPayload, predicted gamestate.Vec2) {
	idx := input.Sequence % predictionBufferSize
	pb.history[idx] = InputRecord{Input: input, Predicted: predicted}
	if input.Sequence+1 > pb.nextSeq {
		pb.nextSeq = input.Sequence + 1
	}
}

// Get retrieves a stored record by sequence number. Returns false if not found
// or if the slot has been overwritten.
func (pb *PredictionBuffer) Get(seq uint32) (InputRecord, bool) {
	idx := seq % predictionBufferSize
	record := pb.history[idx]
	if record.Input.Sequence != seq || seq == 0 {
		return InputRecord{}, false
	}
	return record, true
}

// NextSeq returns the next expected sequence number.
func (pb *PredictionBuffer) NextSeq() uint32 {
	return pb.nextSeq
}

// GetUnacknowledged returns all stored inputs with sequence numbers greater
// than lastAcked and less than nextSeq (i.e. inputs the server hasn't
// confirmed yet), oldest first.
func (pb *PredictionBuffer) GetUnacknowledged(lastAcked uint32) []InputRecord {
	var results []InputRecord
	for seq := lastAcked + 1; seq < pb.nextSeq; seq++ {
		if record, ok := pb.Get(seq); ok {
			results = append(results, record)
		}
	}
	return results
}

// PredictionError calculates the distance between predicted and actual server
// position for a given sequence.
func (pb *PredictionBuffer) PredictionError(seq uint32, server gamestate.Vec2) float64 {
	record, ok := pb.Get(seq)
	if !ok {
		return 0
	}
	dx := record.Predicted.X - server.X
	dy := record.Predicted.Y - server.Y
	return math.Sqrt(dx*dx + dy*dy)
}
