// Package commands implements the bgapi-log CLI commands.
package commands

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/perilib/bgapi-go/pkg/log"
)

// ParseDirectionFlag maps a -direction flag value to a log.Direction.
func ParseDirectionFlag(s string) (log.Direction, error) {
	switch s {
	case "rx":
		return log.DirectionRx, nil
	case "tx":
		return log.DirectionTx, nil
	default:
		return 0, fmt.Errorf("invalid direction %q (want rx or tx)", s)
	}
}

// ParseCategoryFlag maps a -category flag value to a log.Category.
func ParseCategoryFlag(s string) (log.Category, error) {
	switch s {
	case "frame":
		return log.CategoryFrame, nil
	case "packet":
		return log.CategoryPacket, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category %q (want frame, packet or error)", s)
	}
}

// RunView reads the capture file and writes matching events to w in
// human-readable form.
func RunView(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return err
	}
	defer reader.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event %d: %w", count, err)
		}
		formatEvent(w, event)
		count++
	}

	fmt.Fprintf(w, "%d events\n", count)
	return nil
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	session := shortenSessionID(event.SessionID)

	fmt.Fprintf(w, "%s [%s] %-2s %s\n", ts, session, event.Direction, event.Category)

	switch {
	case event.Frame != nil:
		fmt.Fprintf(w, "  Size: %d bytes\n", event.Frame.Size)
		if len(event.Frame.Data) > 0 {
			fmt.Fprintf(w, "  Data: %s\n", hex.EncodeToString(event.Frame.Data))
		}
		if event.Frame.Idle {
			fmt.Fprintln(w, "  Idle: discarded as padding")
		}

	case event.Packet != nil:
		fmt.Fprintf(w, "  Packet: %s (%s)\n", event.Packet.Name, event.Packet.KindString())
		fmt.Fprintf(w, "  Triple: technology %d, group %d, method %d\n",
			event.Packet.Technology, event.Packet.GroupID, event.Packet.MethodID)
		fmt.Fprintf(w, "  Payload: %d bytes\n", event.Packet.PayloadLength)

	case event.Error != nil:
		fmt.Fprintf(w, "  Error: %s\n", event.Error.Message)
		if len(event.Error.Data) > 0 {
			fmt.Fprintf(w, "  Data: %s\n", hex.EncodeToString(event.Error.Data))
		}
	}

	fmt.Fprintln(w)
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
