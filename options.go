package ntlango

// options.go handles options that control how an App is assembled.  Each
// option is a closure that sets a field of the unexported options struct.

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrewwphillips/ntlango/internal/secrets"
)

type options struct {
	log      *slog.Logger
	registry *prometheus.Registry
	secrets  secrets.Source
	now      func() time.Time
}

// Logger sets the logger used by every layer.  The default is slog.Default().
func Logger(log *slog.Logger) func(*options) {
	return func(opt *options) {
		opt.log = log
	}
}

// Registry sets the registry that metrics are registered with and that
// /metrics serves.  A new registry is created if this option is not given.
func Registry(reg *prometheus.Registry) func(*options) {
	return func(opt *options) {
		opt.registry = reg
	}
}

// Secrets replaces the source of the JWT_SECRET and MONGO_DB_URL secrets.
// By default they are read from the secrets file, if configured, or else
// from the JSON in the secrets environment variable.
func Secrets(source secrets.Source) func(*options) {
	return func(opt *options) {
		opt.secrets = source
	}
}

// Clock replaces time.Now for stored timestamps
func Clock(now func() time.Time) func(*options) {
	return func(opt *options) {
		opt.now = now
	}
}
