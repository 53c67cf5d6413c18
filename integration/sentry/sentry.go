package sentry

import (
	"log"

	raven "github.com/getsentry/raven-go"
	"github.com/netrand/netrand"
)

// Sentry captures fetch failures as Sentry events.
func Sentry(client *raven.Client) netrand.PoolOption {
	if client == nil {
		client = raven.DefaultClient
	}
	return netrand.OnError(func(err error) {
		client.CaptureError(err, nil)
	})
}

// SentryDSN builds a Sentry option from a DSN string.
func SentryDSN(dsn string) netrand.PoolOption {
	client, err := raven.New(dsn)
	if err != nil {
		log.Printf("netrand can't initialize Sentry client: %s", err)
		return func(*netrand.PoolSet) {}
	}
	return Sentry(client)
}
