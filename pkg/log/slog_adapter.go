package log

import (
	"context"
	"encoding/hex"
	"log/slog"
)

// SlogAdapter writes capture events to an slog.Logger. Useful for
// development when you want to watch traffic on the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.String("category", event.Category.String()),
	}

	switch {
	case event.Frame != nil:
		attrs = append(attrs,
			slog.Int("frame_size", event.Frame.Size),
			slog.String("frame_data", hex.EncodeToString(event.Frame.Data)),
		)
		if event.Frame.Idle {
			attrs = append(attrs, slog.Bool("idle", true))
		}

	case event.Packet != nil:
		attrs = append(attrs,
			slog.String("packet", event.Packet.Name),
			slog.String("kind", event.Packet.KindString()),
			slog.Int("technology", int(event.Packet.Technology)),
			slog.Int("group", int(event.Packet.GroupID)),
			slog.Int("method", int(event.Packet.MethodID)),
			slog.Int("payload_length", event.Packet.PayloadLength),
		)

	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error", event.Error.Message),
			slog.String("data", hex.EncodeToString(event.Error.Data)),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "bgapi", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
