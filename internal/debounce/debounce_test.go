package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBurstCollapsesToOneFlush(t *testing.T) {
	s := NewScheduler(30 * time.Millisecond)
	defer s.Stop()

	var calls atomic.Int32
	k := Key{RowID: 1, Field: "price"}

	// Rapid retyping: each schedule cancels and restarts the pending one.
	for i := 0; i < 10; i++ {
		s.Schedule(k, func() { calls.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 0, s.Pending())
}

func TestKeysAreIndependent(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)
	defer s.Stop()

	var mu sync.Mutex
	fired := map[Key]int{}
	keys := []Key{
		{RowID: 1, Field: "price"},
		{RowID: 1, Field: "unit"},
		{RowID: 2, Field: "price"},
	}

	for _, k := range keys {
		k := k
		s.Schedule(k, func() {
			mu.Lock()
			fired[k]++
			mu.Unlock()
		})
	}

	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, fired, 3)
	for _, k := range keys {
		assert.Equal(t, 1, fired[k])
	}
}

func TestRescheduleRunsLatestAction(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)
	defer s.Stop()

	var got atomic.Value
	k := Key{RowID: 7, Field: "description"}

	s.Schedule(k, func() { got.Store("first") })
	s.Schedule(k, func() { got.Store("second") })

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, "second", got.Load())
}

func TestCancel(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)
	defer s.Stop()

	var calls atomic.Int32
	k := Key{RowID: 1, Field: "price"}

	s.Schedule(k, func() { calls.Add(1) })
	s.Cancel(k)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
	assert.Equal(t, 0, s.Pending())
}

func TestStopCancelsEverything(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)

	var calls atomic.Int32
	for i := 1; i <= 5; i++ {
		s.Schedule(Key{RowID: i, Field: "price"}, func() { calls.Add(1) })
	}
	s.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
	assert.Equal(t, 0, s.Pending())
}
