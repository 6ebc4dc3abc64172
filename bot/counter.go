package bot

import (
	"sort"
	"sync"

	"github.com/MaxOhn/shishabot/pagination"
)

// CommandCounter tallies command invocations since boot.
type CommandCounter struct {
	mu     sync.Mutex
	counts map[string]uint64
}

func NewCommandCounter() *CommandCounter {
	return &CommandCounter{counts: make(map[string]uint64)}
}

func (c *CommandCounter) Inc(name string) {
	c.mu.Lock()
	c.counts[name]++
	c.mu.Unlock()
}

// Snapshot returns the tally sorted by count descending, ties by name.
func (c *CommandCounter) Snapshot() []pagination.CommandCount {
	c.mu.Lock()
	counts := make([]pagination.CommandCount, 0, len(c.counts))
	for name, count := range c.counts {
		counts = append(counts, pagination.CommandCount{Name: name, Count: count})
	}
	c.mu.Unlock()

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})

	return counts
}
