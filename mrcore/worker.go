package mrcore

import (
	"cmp"
	"sort"

	"github.com/lucasfen/mrcore/progress"
)

// leaderIndex is the worker that performs stage transitions and the
// single-threaded shuffle. Threads are otherwise symmetric.
const leaderIndex = 0

// runWorker is the body every worker goroutine runs: map, local sort,
// barrier, (leader shuffles; others wait), barrier, reduce.
func (j *Job[K1, V1, K2, V2, K3, V3]) runWorker(client Client[K1, V1, K2, V2, K3, V3], id int) {
	defer close(j.done[id])

	if id == leaderIndex {
		j.state.SetStage(progress.Map)
	}

	buf := &j.buffers[id]
	mctx := &MapContext[K2, V2]{buf: buf}
	for {
		old := j.nextInputIndex.Add(1) - 1
		if old >= uint32(len(j.input)) {
			break
		}
		p := j.input[old]
		client.Map(p.Key, p.Value, mctx)
		j.state.IncrementProcessed()
	}

	sort.Slice(*buf, func(a, b int) bool {
		return cmp.Less((*buf)[a].Key, (*buf)[b].Key)
	})

	j.bar.Wait()

	if id == leaderIndex {
		j.shuffle()
	}

	j.bar.Wait()

	rctx := &ReduceContext[K3, V3]{mu: &j.outMu, out: &j.output}
	for {
		old := j.nextReduceIndex.Add(1) - 1
		if uint64(old) >= j.groupCount.Load() {
			break
		}
		client.Reduce(j.groups[old], rctx)
		j.state.IncrementProcessed()
	}
}
