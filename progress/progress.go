// Package progress implements a lock-free packed progress counter.
//
// A Word encodes (stage, processed, total) into a single 64-bit word so
// that a reader observes an internally consistent triple without ever
// taking a lock that would contend with every increment.
package progress

import "sync/atomic"

// Stage is the coarse phase of a running job. Stages only move forward:
// once a job advances past a stage it never regresses back to it.
type Stage uint8

const (
	Undefined Stage = iota
	Map
	Shuffle
	Reduce
)

func (s Stage) String() string {
	switch s {
	case Undefined:
		return "undefined"
	case Map:
		return "map"
	case Shuffle:
		return "shuffle"
	case Reduce:
		return "reduce"
	default:
		return "unknown"
	}
}

const (
	stageMask     = 0x3
	stageShift    = 62
	processedShift = 31
	max31Bits     = 0x7FFF_FFFF
)

// Word is a single atomic uint64 packed as:
//
//	bits [63:62] stage
//	bits [61:31] processed (31 bits, unsigned)
//	bits [30:0]  total (31 bits, unsigned)
//
// Values above 2^31-1 are silently truncated; callers must guarantee
// totals fit.
type Word struct {
	v atomic.Uint64
}

// NewWord returns a Word initialized to (Undefined, 0, total).
func NewWord(total uint32) *Word {
	w := &Word{}
	w.v.Store(encode(Undefined, 0, total))
	return w
}

func encode(stage Stage, processed, total uint32) uint64 {
	return (uint64(stage)&stageMask)<<stageShift |
		(uint64(processed)&max31Bits)<<processedShift |
		uint64(total)&max31Bits
}

func decodeStage(v uint64) Stage {
	return Stage((v >> stageShift) & stageMask)
}

func decodeProcessed(v uint64) uint32 {
	return uint32((v >> processedShift) & max31Bits)
}

func decodeTotal(v uint64) uint32 {
	return uint32(v & max31Bits)
}

// SetAll overwrites all three fields atomically.
func (w *Word) SetAll(stage Stage, processed, total uint32) {
	w.v.Store(encode(stage, processed, total))
}

// IncrementProcessed adds one to processed, preserving stage and total.
// Retries under contention via CAS; there is no wraparound protection,
// callers must guarantee fewer than 2^31 increments per phase.
func (w *Word) IncrementProcessed() {
	for {
		old := w.v.Load()
		stage := decodeStage(old)
		processed := decodeProcessed(old)
		total := decodeTotal(old)
		next := encode(stage, processed+1, total)
		if w.v.CompareAndSwap(old, next) {
			return
		}
	}
}

// SetTotal sets a new total, preserving stage and resetting processed to 0.
func (w *Word) SetTotal(total uint32) {
	for {
		old := w.v.Load()
		stage := decodeStage(old)
		next := encode(stage, 0, total)
		if w.v.CompareAndSwap(old, next) {
			return
		}
	}
}

// SetStage sets a new stage, preserving total and resetting processed to 0.
func (w *Word) SetStage(stage Stage) {
	for {
		old := w.v.Load()
		total := decodeTotal(old)
		next := encode(stage, 0, total)
		if w.v.CompareAndSwap(old, next) {
			return
		}
	}
}

// Snapshot returns the (stage, processed, total) triple as it existed at
// some real instant; the three fields are never torn relative to each
// other.
func (w *Word) Snapshot() (stage Stage, processed, total uint32) {
	v := w.v.Load()
	return decodeStage(v), decodeProcessed(v), decodeTotal(v)
}
