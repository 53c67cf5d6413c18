// Package netrand serves uniformly distributed random integers backed by
// blocks of raw randomness fetched from remote providers. Bytes are pooled
// per source and shared by every Generator on that source, so independent
// consumers never trigger duplicate fetches for data one of them already
// paid for.
package netrand

import (
	"context"

	"github.com/DataDog/datadog-go/statsd"
)

// DefaultStatsdAddr is the address we will emit metrics to if not overridden.
const DefaultStatsdAddr = "127.0.0.1:8200"

// Recognized built-in sources.
const (
	SourceFourmilab = "fourmilab.ch"
	SourceRandomOrg = "random.org"
	SourceQRNG      = "qrng.anu.edu.au"
)

// maxRangeValue is the largest value a Generator can be configured to
// produce; wider ranges would need more than four raw bytes per value.
const maxRangeValue = 1<<32 - 1

// A Generator produces uniformly distributed integers in [min, max], drawing
// raw bytes from the shared pool for its source. The range is fixed at
// construction. Generators are safe for concurrent use.
type Generator struct {
	source string
	min    uint64
	max    uint64

	// Derived from the range at construction.
	bytesPerValue int
	rangeSize     uint64
	maxMultiple   uint64

	pools *PoolSet
}

// New creates a Generator for the named source. The default range is
// [0, 255]; use Min and Max to change it. Construction fails if the source
// is not registered, min >= max, or max exceeds 2^32-1.
func New(source string, opts ...Option) (*Generator, error) {
	g := &Generator{
		source: source,
		min:    0,
		max:    255,
		pools:  defaultPoolSet,
	}
	for _, opt := range opts {
		opt(g)
	}

	if _, ok := g.pools.lookup(source); !ok {
		return nil, ErrUnknownSource{source}
	}
	if g.max > maxRangeValue || g.min >= g.max {
		return nil, ErrBadRange{g.min, g.max}
	}

	g.bytesPerValue = bytesPerValue(g.max - g.min)
	g.rangeSize = g.max - g.min + 1
	limit := uint64(1) << (8 * uint(g.bytesPerValue))
	// The largest whole multiple of rangeSize representable in
	// bytesPerValue bytes; draws beyond it are rejected to avoid
	// biasing the mod toward small remainders.
	g.maxMultiple = g.rangeSize * (limit / g.rangeSize)
	return g, nil
}

// bytesPerValue returns how many raw bytes are combined per candidate value
// for a range of the given width.
func bytesPerValue(width uint64) int {
	switch {
	case width < 1<<8:
		return 1
	case width < 1<<16:
		return 2
	case width < 1<<24:
		return 3
	case width < 1<<32:
		return 4
	}
	// Unreachable: New bounds max at 2^32-1 and min at 0.
	panic("netrand: range width needs more than 4 bytes")
}

// Get produces exactly n values in [min, max]. If the pool cannot supply
// enough bytes after a fetch attempt, Get returns the error and no values;
// results are never partial.
func (g *Generator) Get(ctx context.Context, n int) ([]uint64, error) {
	if n < 0 {
		return nil, ErrBadCount{n}
	}
	results := make([]uint64, 0, n)
	for len(results) < n {
		block, err := g.pools.Draw(ctx, g.source, g.bytesPerValue)
		if err != nil {
			return nil, err
		}
		raw := beUint(block)
		if raw > g.maxMultiple {
			// Out-of-range draw; discard it and redraw with fresh bytes.
			_ = g.pools.getStats().Count(rejectedMetricName, 1, []string{"source:" + g.source}, 1)
			continue
		}
		results = append(results, g.min+raw%g.rangeSize)
	}
	return results, nil
}

// One produces a single value in [min, max].
func (g *Generator) One(ctx context.Context) (uint64, error) {
	values, err := g.Get(ctx, 1)
	if err != nil {
		return 0, err
	}
	return values[0], nil
}

// beUint combines bytes big-endian, first byte most significant.
func beUint(p []byte) uint64 {
	var v uint64
	for _, b := range p {
		v = v<<8 | uint64(b)
	}
	return v
}

func newDefaultStatsd() MetricsClient {
	client, err := statsd.New(DefaultStatsdAddr)
	if err != nil {
		return noopMetricsClient{}
	}
	return client
}
