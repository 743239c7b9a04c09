package rectpack

import (
	"log/slog"

	"github.com/piwi3910/rectpack/progress"
)

// Option configures an optional Pack knob. The zero value of every Option
// field is a safe no-op, so Pack works identically whether or not any
// Option is supplied.
type Option func(*options)

type options struct {
	sink   progress.Sink
	logger *slog.Logger
}

func newOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithProgress attaches a progress.Sink that the chosen engine ticks at
// coarse points during its search. Passing nil is equivalent to omitting
// the option.
func WithProgress(sink progress.Sink) Option {
	return func(o *options) {
		o.sink = sink
	}
}

// WithLogger attaches a *slog.Logger used for the façade's own diagnostic
// logging (pre-check failures, engine dispatch). Passing nil restores the
// default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}
