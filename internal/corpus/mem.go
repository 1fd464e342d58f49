package corpus

import (
	"math/rand"
	"sync"

	"github.com/graphfuzz/graphfuzz-go/internal/graph"
)

// memScheduler is the in-memory backend: a single ordered buffer, O(1)
// append and O(1) sample, mirroring
// original_source/Scheduler/RandomMemScheduler.py.
type memScheduler struct {
	mu      sync.Mutex
	rnd     *rand.Rand
	records []Record
	nextSeq int64
}

// NewMem returns a Scheduler backed by an in-process slice.
func NewMem(rnd *rand.Rand) Scheduler {
	return &memScheduler{rnd: rnd, nextSeq: 1}
}

func (m *memScheduler) Add(records ...Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range records {
		r.Seq = m.nextSeq
		m.nextSeq++
		m.records = append(m.records, r)
	}
	return nil
}

func (m *memScheduler) Sample() (*graph.Graph, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.records) == 0 {
		return nil, ErrEmpty
	}
	return m.records[m.rnd.Intn(len(m.records))].Graph, nil
}

func (m *memScheduler) Iterate() ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *memScheduler) Close() error { return nil }
