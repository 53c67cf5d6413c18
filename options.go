package netrand

// A PoolOption can be passed to NewPoolSet or NewDefaultPoolSet.
type PoolOption func(*PoolSet)

// Logger uses the supplied function to log fetch and pool warnings. By
// default, warnings are written to os.Stderr.
func Logger(printf func(msg string, args ...interface{})) PoolOption {
	return func(ps *PoolSet) {
		ps.printf = printf
	}
}

// Statsd uses the supplied client to emit metrics. NewPoolSet discards
// metrics by default; NewDefaultPoolSet emits to DefaultStatsdAddr.
func Statsd(stats MetricsClient) PoolOption {
	return func(ps *PoolSet) {
		ps.stats = stats
	}
}

// WithOwnedStats instructs the PoolSet to call Close() on its stats client
// when the PoolSet is closed.
func WithOwnedStats(isOwned bool) PoolOption {
	return func(ps *PoolSet) {
		ps.shouldCloseStats = isOwned
	}
}

// OnError registers a callback invoked with every fetch failure and
// exhaustion warning, after it has been logged.
func OnError(h ErrorHandler) PoolOption {
	return func(ps *PoolSet) {
		ps.onError = h
	}
}

// An Option can be passed to New.
type Option func(*Generator)

// Min sets the smallest value the Generator may return. Default 0.
func Min(min uint64) Option {
	return func(g *Generator) {
		g.min = min
	}
}

// Max sets the largest value the Generator may return. Default 255.
func Max(max uint64) Option {
	return func(g *Generator) {
		g.max = max
	}
}

// WithPoolSet binds the Generator to a specific PoolSet instead of the
// process-wide default. Mainly useful for tests and isolation.
func WithPoolSet(ps *PoolSet) Option {
	return func(g *Generator) {
		g.pools = ps
	}
}
