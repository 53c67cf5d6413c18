package dd

import (
	"log"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/netrand/netrand"
)

const netrandService = "netrand.fetch"

// An interface reflecting the parts of statsd that we need, so we can mock it
type StatsdClient interface {
	netrand.MetricsClient
	SimpleServiceCheck(string, statsd.ServiceCheckStatus) error
}

// Statsd reports pool metrics to DataDog, and logs a warning service check
// whenever a fetch fails or a pool runs dry.
func Statsd(stats StatsdClient) netrand.PoolOption {
	return func(ps *netrand.PoolSet) {
		netrand.Statsd(stats)(ps)
		netrand.OnError(func(err error) {
			_ = stats.SimpleServiceCheck(netrandService, statsd.Warn)
		})(ps)
	}
}

// StatsdAddr reports information about this PoolSet to DataDog at addr.
func StatsdAddr(addr string) netrand.PoolOption {
	stats, err := statsd.New(addr)
	if err != nil {
		log.Printf("netrand can't initialize statsd client: %s", err)
		return func(*netrand.PoolSet) {}
	}
	return Statsd(stats)
}
