package netrand

import (
	"context"
	"log"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/netrand/netrand/internal/bytequeue"
)

const (
	fetchBytesMetricName    = "netrand.fetch.bytes"
	fetchErrorsMetricName   = "netrand.fetch.errors"
	fetchDurationMetricName = "netrand.fetch.duration_s"
	poolDepthMetricName     = "netrand.pool.depth"
	rejectedMetricName      = "netrand.draw.rejected"
)

type printFunc func(msg string, args ...interface{})

// A PoolSet owns one FIFO pool of raw random bytes per source, shared by
// every Generator bound to that source. Pools live for the lifetime of the
// PoolSet; nothing is persisted.
type PoolSet struct {
	mu    sync.Mutex
	pools map[string]*pool

	printf  printFunc
	onError ErrorHandler

	stats            MetricsClient
	shouldCloseStats bool
}

// pool pairs one source's fetcher with its buffered bytes. Its lock covers
// the whole ensure-then-take sequence, so concurrent Generators cannot agree
// the buffer is sufficient and then race to drain it.
type pool struct {
	mu      sync.Mutex
	fetcher Fetcher
	buf     bytequeue.Queue
}

// NewPoolSet creates an empty PoolSet. Use Register to add sources, or
// NewDefaultPoolSet for one preloaded with the built-in providers.
func NewPoolSet(opts ...PoolOption) *PoolSet {
	ps := &PoolSet{
		pools:  map[string]*pool{},
		printf: log.New(os.Stderr, "[netrand] ", log.LstdFlags).Printf,
	}
	for _, opt := range opts {
		opt(ps)
	}
	return ps
}

// NewDefaultPoolSet creates a PoolSet with the built-in HTTP providers
// registered. Unless a client was injected with Statsd, metrics go to
// DefaultStatsdAddr.
func NewDefaultPoolSet(opts ...PoolOption) *PoolSet {
	ps := NewPoolSet(opts...)
	ps.Register(SourceFourmilab, newHotBitsFetcher())
	ps.Register(SourceRandomOrg, newRandomOrgFetcher())
	ps.Register(SourceQRNG, newQRNGFetcher())
	// some users may depend on legacy behavior of creating a
	// non-dependency-injected statsd client.
	if ps.stats == nil {
		ps.stats = newDefaultStatsd()
	}
	return ps
}

func (ps *PoolSet) getStats() MetricsClient {
	if ps.stats != nil {
		return ps.stats
	}
	return noopMetricsClient{}
}

// Register adds a source. Re-registering a name replaces its fetcher but
// keeps any bytes already pooled.
func (ps *PoolSet) Register(source string, f Fetcher) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if p, ok := ps.pools[source]; ok {
		p.mu.Lock()
		p.fetcher = f
		p.mu.Unlock()
		return
	}
	ps.pools[source] = &pool{fetcher: f}
}

// Sources returns the registered source names, sorted.
func (ps *PoolSet) Sources() []string {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	names := make([]string, 0, len(ps.pools))
	for name := range ps.pools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (ps *PoolSet) lookup(source string) (*pool, bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	p, ok := ps.pools[source]
	return p, ok
}

// Len returns the number of bytes currently pooled for source.
func (ps *PoolSet) Len(source string) int {
	p, ok := ps.lookup(source)
	if !ok {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buf.Len()
}

// Ensure recharges source's pool if it holds fewer than n bytes, making at
// most one fetch attempt, and reports whether the pool now holds at least n
// bytes. A failed fetch is recorded as a warning and leaves the pool
// unchanged; it is not retried here.
func (ps *PoolSet) Ensure(ctx context.Context, source string, n int) bool {
	p, ok := ps.lookup(source)
	if !ok {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return ps.ensure(ctx, source, p, n)
}

// ensure implements Ensure with p's lock held. Network I/O happens only
// here, never in Take.
func (ps *PoolSet) ensure(ctx context.Context, source string, p *pool, n int) bool {
	if p.buf.Len() >= n {
		return true
	}
	tags := []string{"source:" + source}
	start := time.Now()
	block, err := p.fetcher.Fetch(ctx)
	_ = ps.getStats().Histogram(fetchDurationMetricName, time.Since(start).Seconds(), tags, 1)
	if err != nil {
		_ = ps.getStats().Count(fetchErrorsMetricName, 1, tags, 1)
		ps.warn(err)
	} else {
		p.buf.Append(block)
		_ = ps.getStats().Count(fetchBytesMetricName, int64(len(block)), tags, 1)
	}
	_ = ps.getStats().Gauge(poolDepthMetricName, float64(p.buf.Len()), tags, 1)
	return p.buf.Len() >= n
}

// Take removes and returns the first n bytes pooled for source, in fetch
// arrival order. Callers must have observed a successful Ensure; taking more
// bytes than are pooled panics.
func (ps *PoolSet) Take(source string, n int) []byte {
	p, ok := ps.lookup(source)
	if !ok {
		panic("netrand: take from unknown source " + source)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buf.Take(n)
}

// Draw atomically ensures and takes n bytes for source. Generators use this
// entry point; it is the ensure+take pair treated as one unit.
func (ps *PoolSet) Draw(ctx context.Context, source string, n int) ([]byte, error) {
	p, ok := ps.lookup(source)
	if !ok {
		return nil, ErrUnknownSource{source}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !ps.ensure(ctx, source, p, n) {
		err := ErrInsufficient{Source: source, Need: n, Have: p.buf.Len()}
		ps.warn(err)
		return nil, err
	}
	return p.buf.Take(n), nil
}

func (ps *PoolSet) warn(err error) {
	ps.printf(err.Error())
	if ps.onError != nil {
		ps.onError(err)
	}
}

// Close releases the stats client if this PoolSet owns it. Pools themselves
// hold no resources beyond memory.
func (ps *PoolSet) Close() error {
	if ps.shouldCloseStats && ps.stats != nil {
		return ps.stats.Close()
	}
	return nil
}
