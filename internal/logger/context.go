package logger

import "context"

type contextKey struct{}

// LogContext carries per-request identifiers that the context-aware logging
// helpers inject into every record.
type LogContext struct {
	RequestID string
	UserID    string
	ClientIP  string
}

// WithContext attaches log context to a context.Context
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, contextKey{}, lc)
}

// FromContext extracts log context from a context.Context.
// Returns nil if no log context is attached.
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(contextKey{}).(*LogContext)
	return lc
}
