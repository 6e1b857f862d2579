package mrcore

import "testing"

type intClient struct{}

func (intClient) Map(_ int, v int, ctx *MapContext[int, int]) {
	ctx.Emit(v, 1)
}

func (intClient) Reduce(group []Pair[int, int], ctx *ReduceContext[int, int]) {
	sum := 0
	for _, p := range group {
		sum += p.Value
	}
	ctx.Emit(group[0].Key, sum)
}

// TestShuffleGroupsDescendingAndKeyEqual exercises the shuffle algorithm
// directly (white-box) to check the two invariants spec.md calls out:
// groups are pairwise key-equivalent internally and appear in strictly
// descending key order.
func TestShuffleGroupsDescendingAndKeyEqual(t *testing.T) {
	values := []int{5, 1, 5, 3, 1, 9, 3, 3, 0}
	input := make([]Pair[int, int], len(values))
	for i, v := range values {
		input[i] = Pair[int, int]{Key: i, Value: v}
	}

	job, err := Start[int, int, int, int, int, int](intClient{}, input, 4)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	job.Wait()

	if len(job.groups) == 0 {
		t.Fatal("no groups produced")
	}
	for gi, g := range job.groups {
		if len(g) == 0 {
			t.Fatalf("group %d is empty", gi)
		}
		key := g[0].Key
		for _, p := range g {
			if p.Key != key {
				t.Fatalf("group %d has mixed keys: %d and %d", gi, key, p.Key)
			}
		}
		if gi > 0 && !(job.groups[gi-1][0].Key > key) {
			t.Fatalf("groups not strictly descending at index %d: %d then %d", gi, job.groups[gi-1][0].Key, key)
		}
	}
}

func TestShuffleCounterMatchesGroupCount(t *testing.T) {
	input := make([]Pair[int, int], 50)
	for i := range input {
		input[i] = Pair[int, int]{Key: i, Value: i % 7}
	}
	job, err := Start[int, int, int, int, int, int](intClient{}, input, 5)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	job.Wait()

	if got, want := job.groupCount.Load(), uint64(len(job.groups)); got != want {
		t.Fatalf("shuffle counter = %d, want %d", got, want)
	}
	if len(job.groups) != 7 {
		t.Fatalf("got %d groups, want 7 distinct keys", len(job.groups))
	}
}
