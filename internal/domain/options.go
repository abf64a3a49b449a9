package domain

import "time"

type options struct {
	now func() time.Time
}

// Option configures a domain service.
type Option func(*options)

// WithClock overrides the service clock.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// timestamp normalizes t to the precision the store keeps.
func timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
