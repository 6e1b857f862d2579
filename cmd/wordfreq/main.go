// Command wordfreq is the demo client for mrcore: a character-frequency
// counter. Map emits one (character, count) pair per distinct character
// in a document; reduce sums the counts across all documents.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/lucasfen/mrcore/internal/mrlog"
	"github.com/lucasfen/mrcore/mrcore"
	"github.com/lucasfen/mrcore/progress"
)

// document mirrors the JSON records accepted by -input: an id plus a
// block of text to run the character counter over.
type document struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// defaultDocuments reproduces the canonical three-string demo scenario.
var defaultDocuments = []document{
	{ID: 0, Text: "This string is full of characters"},
	{ID: 1, Text: "Multithreading is awesome"},
	{ID: 2, Text: "race conditions are bad"},
}

// counterClient implements mrcore.Client[int, string, byte, int, byte, int].
type counterClient struct{}

func (counterClient) Map(_ int, text string, ctx *mrcore.MapContext[byte, int]) {
	var counts [256]int
	for i := 0; i < len(text); i++ {
		counts[text[i]]++
	}
	for c, n := range counts {
		if n == 0 {
			continue
		}
		ctx.Emit(byte(c), n)
	}
}

func (counterClient) Reduce(group []mrcore.Pair[byte, int], ctx *mrcore.ReduceContext[byte, int]) {
	if len(group) == 0 {
		return
	}
	total := 0
	for _, p := range group {
		total += p.Value
	}
	ctx.Emit(group[0].Key, total)
}

func loadDocuments(path string) ([]document, error) {
	if path == "" {
		return defaultDocuments, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var docs []document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return docs, nil
}

func main() {
	inputPath := flag.String("input", "", "path to a JSON array of {id, text} documents (defaults to the built-in sample)")
	workers := flag.Int("workers", 4, "number of worker goroutines")
	poll := flag.Duration("poll", 100*time.Millisecond, "how often to poll job state while waiting")
	flag.Parse()

	log := mrlog.New()

	docs, err := loadDocuments(*inputPath)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}

	input := make([]mrcore.Pair[int, string], len(docs))
	for i, d := range docs {
		input[i] = mrcore.Pair[int, string]{Key: d.ID, Value: d.Text}
	}

	job, err := mrcore.Start[int, string, byte, int, byte, int](counterClient{}, input, *workers)
	if err != nil {
		log.Errorf("starting job: %v", err)
		os.Exit(1)
	}

	state := job.State()
	last := mrcore.JobState{}
	for state.Stage != progress.Reduce || state.Percentage != mrcore.MaxPercentage {
		if state != last {
			printState(state)
		}
		time.Sleep(*poll)
		last = state
		state = job.State()
	}
	printState(state)

	job.Wait()
	out := job.Output()
	job.Close()
	fmt.Println("Done!")

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	for _, p := range out {
		plural := ""
		if p.Value != 1 {
			plural = "s"
		}
		fmt.Printf("The character %q appeared %d time%s\n", rune(p.Key), p.Value, plural)
	}
}

func printState(s mrcore.JobState) {
	fmt.Printf("stage %s, %.2f%%\n", s.Stage, s.Percentage)
}
