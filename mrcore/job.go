package mrcore

import (
	"cmp"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/lucasfen/mrcore/barrier"
	"github.com/lucasfen/mrcore/progress"
)

// MaxPercentage is the ceiling reported by JobState.Percentage.
const MaxPercentage = 100.0

// JobState quantizes the progress of a running job.
type JobState struct {
	Stage      progress.Stage
	Percentage float64
}

// Job is the handle returned by Start. A nil *Job is valid: it represents
// the empty-input sentinel and every method treats it as an already
// completed job.
type Job[K1 any, V1 any, K2 cmp.Ordered, V2 any, K3 any, V3 any] struct {
	state *progress.Word
	bar   *barrier.Barrier

	input          []Pair[K1, V1]
	nextInputIndex atomic.Uint32

	buffers [][]Pair[K2, V2]

	groups          [][]Pair[K2, V2]
	groupCount      atomic.Uint64
	nextReduceIndex atomic.Uint32

	outMu  sync.Mutex
	output []Pair[K3, V3]

	done   []chan struct{}
	joined []bool
	joinMu sync.Mutex
}

// Start allocates a job context, spawns n worker goroutines, and returns
// a handle. If input is empty, Start returns a nil handle: State, Wait,
// and Close all treat nil as "already completed REDUCE at 100%".
func Start[K1 any, V1 any, K2 cmp.Ordered, V2 any, K3 any, V3 any](
	client Client[K1, V1, K2, V2, K3, V3],
	input []Pair[K1, V1],
	n int,
) (*Job[K1, V1, K2, V2, K3, V3], error) {
	if n < 1 {
		return nil, fmt.Errorf("mrcore: worker count must be >= 1, got %d", n)
	}
	if len(input) == 0 {
		return nil, nil
	}

	job := &Job[K1, V1, K2, V2, K3, V3]{
		state:   progress.NewWord(uint32(len(input))),
		bar:     barrier.New(n),
		input:   input,
		buffers: make([][]Pair[K2, V2], n),
		done:    make([]chan struct{}, n),
		joined:  make([]bool, n),
	}
	for i := range job.done {
		job.done[i] = make(chan struct{})
	}

	for i := 0; i < n; i++ {
		go job.runWorker(client, i)
	}
	return job, nil
}

// State reads the current progress snapshot. It is safe to call from any
// number of goroutines at any time.
func (j *Job[K1, V1, K2, V2, K3, V3]) State() JobState {
	if j == nil {
		return JobState{Stage: progress.Reduce, Percentage: MaxPercentage}
	}
	stage, processed, total := j.state.Snapshot()
	pct := MaxPercentage
	if total != 0 {
		pct = float64(processed) / float64(total) * MaxPercentage
		if pct > MaxPercentage {
			pct = MaxPercentage
		}
	}
	return JobState{Stage: stage, Percentage: pct}
}

// Wait joins every worker exactly once. Safe to call from multiple
// goroutines concurrently and any number of times.
func (j *Job[K1, V1, K2, V2, K3, V3]) Wait() {
	if j == nil {
		return
	}
	j.joinMu.Lock()
	defer j.joinMu.Unlock()
	for i := range j.done {
		if !j.joined[i] {
			<-j.done[i]
			j.joined[i] = true
		}
	}
}

// Output returns the accumulated output pairs. Only meaningful after Wait
// has returned, and before Close.
func (j *Job[K1, V1, K2, V2, K3, V3]) Output() []Pair[K3, V3] {
	if j == nil {
		return nil
	}
	return j.output
}

// Close waits for the job to finish and releases its handle. After Close
// returns, the handle must not be used again.
func (j *Job[K1, V1, K2, V2, K3, V3]) Close() {
	if j == nil {
		return
	}
	j.Wait()
}
