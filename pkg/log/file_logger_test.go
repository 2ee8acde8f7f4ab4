package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"
)

func writeTestCapture(t *testing.T, path string, events []Event) {
	t.Helper()
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestFileLoggerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.blog")

	events := []Event{
		{
			Timestamp: time.Now(),
			SessionID: "a",
			Direction: DirectionRx,
			Category:  CategoryFrame,
			Frame:     &FrameEvent{Size: 4, Data: []byte{0x00, 0x00, 0x00, 0x01}},
		},
		{
			Timestamp: time.Now(),
			SessionID: "a",
			Direction: DirectionRx,
			Category:  CategoryPacket,
			Packet:    &PacketEvent{Kind: 1, Name: "ble_rsp_system_hello", MethodID: 1},
		},
		{
			Timestamp: time.Now(),
			SessionID: "b",
			Direction: DirectionTx,
			Category:  CategoryPacket,
			Packet:    &PacketEvent{Kind: 0, Name: "ble_cmd_system_hello", MethodID: 1},
		},
	}
	writeTestCapture(t, path, events)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != len(events) {
		t.Fatalf("read %d events, want %d", len(read), len(events))
	}
	for i := range read {
		if read[i].SessionID != events[i].SessionID || read[i].Category != events[i].Category {
			t.Errorf("event %d = %+v, want %+v", i, read[i], events[i])
		}
	}
}

func TestFilteredReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.blog")

	rx := DirectionRx
	packets := CategoryPacket

	writeTestCapture(t, path, []Event{
		{Timestamp: time.Now(), SessionID: "a", Direction: DirectionRx, Category: CategoryFrame, Frame: &FrameEvent{Size: 4}},
		{Timestamp: time.Now(), SessionID: "a", Direction: DirectionRx, Category: CategoryPacket, Packet: &PacketEvent{Name: "ble_rsp_system_hello"}},
		{Timestamp: time.Now(), SessionID: "a", Direction: DirectionTx, Category: CategoryPacket, Packet: &PacketEvent{Name: "ble_cmd_system_hello"}},
	})

	reader, err := NewFilteredReader(path, Filter{Direction: &rx, Category: &packets})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	event, err := reader.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if event.Packet == nil || event.Packet.Name != "ble_rsp_system_hello" {
		t.Errorf("got %+v, want the rx packet event", event)
	}

	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("got %v, want io.EOF after the only match", err)
	}
}

func TestFilterPacketName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.blog")

	writeTestCapture(t, path, []Event{
		{Timestamp: time.Now(), SessionID: "a", Category: CategoryPacket, Packet: &PacketEvent{Name: "ble_evt_system_boot"}},
		{Timestamp: time.Now(), SessionID: "a", Category: CategoryPacket, Packet: &PacketEvent{Name: "ble_rsp_system_hello"}},
	})

	reader, err := NewFilteredReader(path, Filter{PacketName: "ble_evt_system_boot"})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	event, err := reader.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if event.Packet.Name != "ble_evt_system_boot" {
		t.Errorf("got %q", event.Packet.Name)
	}
	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("got %v, want io.EOF", err)
	}
}

func TestFileLoggerCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.blog")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	// Logging after close is a no-op, not a panic
	logger.Log(Event{Timestamp: time.Now()})
}
