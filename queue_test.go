package blockpack

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestJobQueueExactlyOnce(t *testing.T) {
	const (
		chunks  = 10_000
		workers = 8
	)
	plan := make([]Chunk, chunks)
	for i := range plan {
		plan[i] = Chunk{ID: i}
	}
	q := newJobQueue(plan)

	claims := make([]atomic.Int32, chunks)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				c, ok := q.Next()
				if !ok {
					return
				}
				claims[c.ID].Inc()
			}
		}()
	}
	wg.Wait()

	for i := range claims {
		require.Equal(t, int32(1), claims[i].Load(), "chunk %d", i)
	}

	_, ok := q.Next()
	require.False(t, ok, "exhausted queue must stay exhausted")
}

func TestJobQueueEmpty(t *testing.T) {
	q := newJobQueue(nil)
	_, ok := q.Next()
	require.False(t, ok)
}
