package commands

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/perilib/bgapi-go/pkg/log"
)

// exportRecord is the JSONL shape of one capture event.
type exportRecord struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Direction string    `json:"direction"`
	Category  string    `json:"category"`

	FrameSize *int   `json:"frame_size,omitempty"`
	FrameData string `json:"frame_data,omitempty"`
	FrameIdle bool   `json:"frame_idle,omitempty"`

	PacketName    string `json:"packet_name,omitempty"`
	PacketKind    string `json:"packet_kind,omitempty"`
	Technology    *int   `json:"technology,omitempty"`
	GroupID       *int   `json:"group_id,omitempty"`
	MethodID      *int   `json:"method_id,omitempty"`
	PayloadLength *int   `json:"payload_length,omitempty"`

	Error     string `json:"error,omitempty"`
	ErrorData string `json:"error_data,omitempty"`
}

// RunExport reads the capture file and writes matching events to w as one
// JSON object per line.
func RunExport(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return err
	}
	defer reader.Close()

	enc := json.NewEncoder(w)
	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event %d: %w", count, err)
		}
		if err := enc.Encode(toRecord(event)); err != nil {
			return err
		}
		count++
	}
}

func toRecord(event log.Event) exportRecord {
	rec := exportRecord{
		Timestamp: event.Timestamp,
		SessionID: event.SessionID,
		Direction: event.Direction.String(),
		Category:  event.Category.String(),
	}

	switch {
	case event.Frame != nil:
		rec.FrameSize = &event.Frame.Size
		rec.FrameData = hex.EncodeToString(event.Frame.Data)
		rec.FrameIdle = event.Frame.Idle

	case event.Packet != nil:
		tech, group, method := int(event.Packet.Technology), int(event.Packet.GroupID), int(event.Packet.MethodID)
		rec.PacketName = event.Packet.Name
		rec.PacketKind = event.Packet.KindString()
		rec.Technology = &tech
		rec.GroupID = &group
		rec.MethodID = &method
		rec.PayloadLength = &event.Packet.PayloadLength

	case event.Error != nil:
		rec.Error = event.Error.Message
		rec.ErrorData = hex.EncodeToString(event.Error.Data)
	}

	return rec
}
