package concurrent

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool(t *testing.T) {
	wp := NewWorkerPool[int, int](4, 100)
	for i := 0; i < 100; i++ {
		wp.AddJob(i)
	}
	wp.Close()
	wp.Start(func(job int) int {
		return job * job
	})
	wp.Wait()

	sum := 0
	count := 0
	for res := range wp.CollectResults() {
		sum += res
		count++
	}
	assert.Equal(t, 100, count)
	assert.Equal(t, 328350, sum)
}

func TestMap(t *testing.T) {
	results := Map(3, []string{"torino", "aosta", "ivrea"}, func(job string) int {
		return len(job)
	})
	sort.Ints(results)
	assert.Equal(t, []int{5, 5, 6}, results)

	assert.Empty(t, Map(2, []int{}, func(job int) int { return job }))
}
