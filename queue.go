package blockpack

import "go.uber.org/atomic"

// jobQueue hands out each chunk to exactly one worker. The queue is
// owned by a single run, never shared between runs.
type jobQueue struct {
	chunks []Chunk
	next   atomic.Int64
}

func newJobQueue(chunks []Chunk) *jobQueue {
	return &jobQueue{chunks: chunks}
}

// Next claims the next chunk. The fetch-add makes the claim
// linearizable: two workers can never observe the same index, and
// every index below the final cursor value is observed by exactly one
// worker.
func (q *jobQueue) Next() (Chunk, bool) {
	i := q.next.Inc() - 1
	if i >= int64(len(q.chunks)) {
		return Chunk{}, false
	}
	return q.chunks[i], true
}
