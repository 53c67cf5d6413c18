package bytequeue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue(t *testing.T) {
	t.Parallel()

	var q Queue
	assert.Equal(t, 0, q.Len())

	q.Append([]byte{1, 2, 3})
	q.Append([]byte{4, 5})
	assert.Equal(t, 5, q.Len())

	assert.Equal(t, []byte{1, 2}, q.Take(2))
	assert.Equal(t, 3, q.Len())

	// Appends land behind bytes still queued.
	q.Append([]byte{6})
	assert.Equal(t, []byte{3, 4, 5, 6}, q.Take(4))
	assert.Equal(t, 0, q.Len())
}

func TestQueueTakeAll(t *testing.T) {
	t.Parallel()

	var q Queue
	q.Append([]byte{9, 8, 7})
	assert.Equal(t, []byte{9, 8, 7}, q.Take(3))
	assert.Equal(t, 0, q.Len())

	// Reusable after being drained.
	q.Append([]byte{1})
	assert.Equal(t, []byte{1}, q.Take(1))
}

func TestQueueTakePastEnd(t *testing.T) {
	t.Parallel()

	var q Queue
	q.Append([]byte{1, 2})
	assert.Panics(t, func() {
		q.Take(3)
	})
	assert.Panics(t, func() {
		q.Take(-1)
	})
	// A failed take leaves the queue intact.
	assert.Equal(t, 2, q.Len())
}

func TestQueueTakeZero(t *testing.T) {
	t.Parallel()

	var q Queue
	assert.Equal(t, []byte{}, q.Take(0))
	q.Append([]byte{5})
	assert.Equal(t, []byte{}, q.Take(0))
	assert.Equal(t, 1, q.Len())
}
