package netrand

import "io"

// MetricsClient is the set of methods required to emit metrics to statsd, for
// customizing behavior or mocking.
type MetricsClient interface {
	Histogram(string, float64, []string, float64) error
	Gauge(string, float64, []string, float64) error
	Count(string, int64, []string, float64) error
	io.Closer
}

type noopMetricsClient struct{}

func (n noopMetricsClient) Histogram(s string, f float64, strings []string, f2 float64) error {
	return nil
}

func (n noopMetricsClient) Gauge(s string, f float64, strings []string, f2 float64) error {
	return nil
}

func (n noopMetricsClient) Count(s string, i int64, strings []string, f float64) error {
	return nil
}

func (n noopMetricsClient) Close() error {
	return nil
}

var _ MetricsClient = noopMetricsClient{}
