package loop

import "log/slog"

// Option configures a Thread.
type Option func(*Thread)

// WithLogger sets the logger the thread derives its own logger from.
func WithLogger(l *slog.Logger) Option {
	return func(t *Thread) { t.logger = l }
}

// WithObserver sets the observer notified about queue activity.
func WithObserver(o Observer) Option {
	return func(t *Thread) { t.observer = o }
}

// WithOwner overrides the owner recorded at creation. By default the owner is
// the thread that called New, if any.
func WithOwner(owner *Thread) Option {
	return func(t *Thread) { t.owner = owner }
}
