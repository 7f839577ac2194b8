package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes protocol events to an slog.Logger. Useful in
// development to watch the SLP exchange on the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter writing to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("direction", event.Direction.String()),
		slog.String("category", event.Category.String()),
	}
	if event.ExchangeID != "" {
		attrs = append(attrs, slog.String("exchange_id", event.ExchangeID))
	}
	if event.RemoteAddr != "" {
		attrs = append(attrs, slog.String("remote", event.RemoteAddr))
	}
	if event.Function != 0 {
		attrs = append(attrs,
			slog.String("function", event.Function.String()),
			slog.Uint64("xid", uint64(event.XID)),
		)
	}
	if event.Scopes != "" {
		attrs = append(attrs, slog.String("scopes", event.Scopes))
	}
	if event.Size != 0 {
		attrs = append(attrs, slog.Int("size", event.Size))
	}
	if event.Error != "" {
		attrs = append(attrs, slog.String("error", event.Error))
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "slp event", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
