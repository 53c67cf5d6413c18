// Package bytequeue implements the FIFO byte buffer backing a randomness pool.
package bytequeue

// A Queue is a FIFO queue of bytes. It is not safe for concurrent use; callers
// hold their own lock.
type Queue struct {
	buf []byte
	off int
}

// Len returns the number of buffered bytes.
func (q *Queue) Len() int {
	return len(q.buf) - q.off
}

// Append adds p to the back of the queue.
func (q *Queue) Append(p []byte) {
	if q.off == len(q.buf) {
		q.buf = q.buf[:0]
		q.off = 0
	}
	q.buf = append(q.buf, p...)
}

// Take removes and returns the first n bytes, in arrival order.
// It panics if fewer than n bytes are buffered.
func (q *Queue) Take(n int) []byte {
	if n < 0 || n > q.Len() {
		panic("bytequeue: take past end of queue")
	}
	p := make([]byte, n)
	copy(p, q.buf[q.off:q.off+n])
	q.off += n
	if q.off == len(q.buf) {
		q.buf = q.buf[:0]
		q.off = 0
	}
	return p
}
