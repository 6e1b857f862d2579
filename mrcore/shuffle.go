package mrcore

import "github.com/lucasfen/mrcore/progress"

// shuffle drains the per-worker sorted buffers into a sequence of
// key-equal groups, in descending key order. Leader-only; every buffer
// must already be sorted ascending by key.
func (j *Job[K1, V1, K2, V2, K3, V3]) shuffle() {
	var total int
	for _, b := range j.buffers {
		total += len(b)
	}
	// A single SetAll publishes the SHUFFLE stage and the new total
	// together, avoiding a transient (SHUFFLE, 0, oldTotal) window that
	// two separate CAS loops would expose to a racing getJobState call.
	j.state.SetAll(progress.Shuffle, 0, uint32(total))

	for {
		var maxKey K2
		found := false
		for _, b := range j.buffers {
			if len(b) == 0 {
				continue
			}
			k := b[len(b)-1].Key
			if !found || k > maxKey {
				maxKey = k
				found = true
			}
		}
		if !found {
			break
		}

		var group []Pair[K2, V2]
		for i, b := range j.buffers {
			for len(b) > 0 && b[len(b)-1].Key == maxKey {
				group = append(group, b[len(b)-1])
				b = b[:len(b)-1]
				j.state.IncrementProcessed()
			}
			j.buffers[i] = b
		}
		j.groups = append(j.groups, group)
		j.groupCount.Add(1)
	}

	// The group count is fully finalized before the second barrier
	// release, so reduce can treat len(groups) as an immutable bound.
	j.state.SetAll(progress.Reduce, 0, uint32(len(j.groups)))
}
