package datastructure

import (
	"sort"
	"sync"
	"sync/atomic"
)

type EdgeUsage struct {
	EdgeId Index
	Count  uint64
}

// UsageCounters. number of reconstructed paths that traversed each edge.
// Increment is safe for concurrent use.
type UsageCounters struct {
	name string

	mu     sync.RWMutex // guards the counts slice header, not the counts
	counts []uint64
}

func NewUsageCounters(name string, numberOfEdges int) *UsageCounters {
	return &UsageCounters{
		name:   name,
		counts: make([]uint64, numberOfEdges),
	}
}

func (u *UsageCounters) GetName() string {
	return u.name
}

func (u *UsageCounters) Increment(e Index) uint64 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return atomic.AddUint64(&u.counts[e], 1)
}

func (u *UsageCounters) Get(e Index) uint64 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if int(e) >= len(u.counts) {
		return 0
	}
	return atomic.LoadUint64(&u.counts[e])
}

// Total. sum of all counters, i.e. number of edge traversals over all reconstructed paths
func (u *UsageCounters) Total() uint64 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	total := uint64(0)
	for i := range u.counts {
		total += atomic.LoadUint64(&u.counts[i])
	}
	return total
}

// TopK. the k most used edges, most used first, ties by edge id. unused edges are skipped.
func (u *UsageCounters) TopK(k int) []EdgeUsage {
	u.mu.RLock()
	used := make([]EdgeUsage, 0)
	for i := range u.counts {
		c := atomic.LoadUint64(&u.counts[i])
		if c > 0 {
			used = append(used, EdgeUsage{EdgeId: Index(i), Count: c})
		}
	}
	u.mu.RUnlock()

	sort.Slice(used, func(i, j int) bool {
		if used[i].Count != used[j].Count {
			return used[i].Count > used[j].Count
		}
		return used[i].EdgeId < used[j].EdgeId
	})
	if k >= 0 && k < len(used) {
		used = used[:k]
	}
	return used
}

func (u *UsageCounters) grow(numberOfEdges int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if numberOfEdges <= len(u.counts) {
		return
	}
	counts := make([]uint64, numberOfEdges)
	for i := range u.counts {
		counts[i] = atomic.LoadUint64(&u.counts[i])
	}
	u.counts = counts
}

func (u *UsageCounters) reset() {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for i := range u.counts {
		atomic.StoreUint64(&u.counts[i], 0)
	}
}
