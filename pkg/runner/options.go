package runner

import "log/slog"

// DefaultMaxGenerate caps a single :gen command.
const DefaultMaxGenerate = 1000

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithSeed seeds the generator used by :gen.
func WithSeed(seed uint64) Option {
	return func(r *Runner) {
		r.reseed(seed)
	}
}
