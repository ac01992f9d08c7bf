package aggregator

import "sync"

// FailureCounter tracks consecutive total failures per topic
type FailureCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func NewFailureCounter() *FailureCounter {
	return &FailureCounter{counts: make(map[string]int)}
}

// Record increments the count for topic and returns the new value
func (f *FailureCounter) Record(topic string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[topic]++
	return f.counts[topic]
}

// Reset clears the count for topic after a successful fetch
func (f *FailureCounter) Reset(topic string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.counts, topic)
}

func (f *FailureCounter) Count(topic string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[topic]
}

// Snapshot returns a copy of all non-zero counts
func (f *FailureCounter) Snapshot() map[string]int {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make(map[string]int, len(f.counts))
	for topic, count := range f.counts {
		result[topic] = count
	}
	return result
}

// shouldReport rate-limits the diagnostic to the 1st and every 5th failure
func shouldReport(failures int) bool {
	return failures == 1 || failures%5 == 0
}
