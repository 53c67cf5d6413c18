package dd

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netrand/netrand"
)

type mockStatsd struct {
	lock   sync.Mutex
	counts map[string]int64
	checks map[string][]statsd.ServiceCheckStatus
}

func (m *mockStatsd) Histogram(string, float64, []string, float64) error {
	return nil
}

func (m *mockStatsd) Gauge(string, float64, []string, float64) error {
	return nil
}

func (m *mockStatsd) Count(name string, value int64, tags []string, rate float64) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int64)
	}
	m.counts[name] += value
	return nil
}

func (m *mockStatsd) SimpleServiceCheck(name string, status statsd.ServiceCheckStatus) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.checks == nil {
		m.checks = make(map[string][]statsd.ServiceCheckStatus)
	}
	m.checks[name] = append(m.checks[name], status)
	return nil
}

func (m *mockStatsd) Close() error {
	return nil
}

var _ StatsdClient = &mockStatsd{}

type failingFetcher struct{}

func (failingFetcher) Fetch(ctx context.Context) ([]byte, error) {
	return nil, errors.New("provider unreachable")
}

func TestStatsdServiceChecks(t *testing.T) {
	t.Parallel()

	stats := &mockStatsd{}
	ps := netrand.NewPoolSet(
		netrand.Logger(func(msg string, args ...interface{}) {}),
		Statsd(stats),
	)
	ps.Register("test.example.com", failingFetcher{})

	_, err := ps.Draw(context.Background(), "test.example.com", 1)
	require.Error(t, err)

	stats.lock.Lock()
	defer stats.lock.Unlock()
	// One warning for the transport failure, one for the dry pool.
	assert.Equal(t, []statsd.ServiceCheckStatus{statsd.Warn, statsd.Warn}, stats.checks[netrandService])
	assert.Equal(t, int64(1), stats.counts["netrand.fetch.errors"])
}
