package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes control events to an slog.Logger.
// Useful for development when you want to see control events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("category", event.Category.String()),
	}

	// Add optional identifiers
	if event.SessionID != "" {
		attrs = append(attrs, slog.String("session_id", event.SessionID))
	}
	if event.ProbeID != "" {
		attrs = append(attrs, slog.String("probe_id", event.ProbeID))
	}

	// Add type-specific attributes
	switch {
	case event.Register != nil:
		attrs = append(attrs,
			slog.String("register", event.Register.Name),
			slog.Uint64("value", uint64(event.Register.Value)),
			slog.Bool("write", event.Register.Write),
		)
		if event.Register.Err != "" {
			attrs = append(attrs, slog.String("error", event.Register.Err))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("from", event.StateChange.From),
			slog.String("to", event.StateChange.To),
			slog.Bool("requested", event.StateChange.Requested),
		)
	case event.Validation != nil:
		attrs = append(attrs,
			slog.String("platform", event.Validation.PlatformID),
			slog.String("output", event.Validation.OutputID),
			slog.String("mode", event.Validation.Mode),
			slog.Bool("passed", event.Validation.Passed),
		)
		if event.Validation.Reason != "" {
			attrs = append(attrs,
				slog.String("reason", event.Validation.Reason),
				slog.Float64("margin", event.Validation.Margin),
			)
		}
	case event.Fault != nil:
		attrs = append(attrs,
			slog.Uint64("fault_code", uint64(event.Fault.Code)),
			slog.Bool("cleared", event.Fault.Cleared),
		)
	case event.Lifecycle != nil:
		attrs = append(attrs, slog.String("step", event.Lifecycle.Step))
		if event.Lifecycle.Err != "" {
			attrs = append(attrs, slog.String("error", event.Lifecycle.Err))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "probe event", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
