package stream

import (
	"time"

	"github.com/google/uuid"

	"github.com/perilib/bgapi-go/pkg/bgapi"
	"github.com/perilib/bgapi-go/pkg/log"
	"github.com/perilib/bgapi-go/pkg/wire"
)

// Parser accumulates receive bytes and emits decoded packets. It is not
// safe for concurrent use; a transport owns one Parser per stream and
// calls Feed from its read loop.
type Parser struct {
	// OnPacket, if set, is invoked for every decoded packet in addition to
	// the packet being returned from Feed.
	OnPacket func(*bgapi.Packet)

	// OnError, if set, is invoked when a complete frame fails to decode.
	// The raw buffer is passed for diagnostics; the parser drops it and
	// resynchronizes afterwards.
	OnError func(error, []byte)

	proto  *bgapi.Protocol
	id     string
	buf    []byte
	logger log.Logger
}

// NewParser creates a Parser decoding against the given protocol. Each
// parser gets a unique session ID for capture correlation.
func NewParser(proto *bgapi.Protocol) *Parser {
	return &Parser{
		proto:  proto,
		id:     uuid.NewString(),
		logger: log.NoopLogger{},
	}
}

// SessionID returns the parser's capture session ID.
func (p *Parser) SessionID() string {
	return p.id
}

// SetLogger configures protocol capture for this parser.
// Pass nil to disable capture.
func (p *Parser) SetLogger(logger log.Logger) {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	p.logger = logger
}

// Feed appends data to the receive buffer and returns every packet
// completed by it. Zero, one or several packets may complete in a single
// call depending on how the transport chunks its reads.
func (p *Parser) Feed(data []byte) []*bgapi.Packet {
	var packets []*bgapi.Packet

	for _, b := range data {
		p.buf = append(p.buf, b)

		switch wire.Classify(p.buf) {
		case wire.FrameIdle:
			p.logFrame(p.buf, true)
			p.buf = nil

		case wire.FrameComplete:
			frame := p.buf
			p.buf = nil
			p.logFrame(frame, false)

			pkt, err := p.proto.DecodeBuffer(frame, bgapi.DirectionRx)
			if err != nil {
				p.logError(err, frame)
				if p.OnError != nil {
					p.OnError(err, frame)
				}
				continue
			}
			p.logPacket(pkt)
			if p.OnPacket != nil {
				p.OnPacket(pkt)
			}
			packets = append(packets, pkt)
		}
	}

	return packets
}

// CaptureTx records an outgoing packet in this parser's capture session.
// Transports call it after writing a packet so captures show both
// directions interleaved.
func (p *Parser) CaptureTx(pkt *bgapi.Packet) {
	raw := make([]byte, len(pkt.Raw))
	copy(raw, pkt.Raw)
	p.logger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: p.id,
		Direction: log.DirectionTx,
		Category:  log.CategoryFrame,
		Frame: &log.FrameEvent{
			Size: len(raw),
			Data: raw,
		},
	})
	p.logger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: p.id,
		Direction: log.DirectionTx,
		Category:  log.CategoryPacket,
		Packet: &log.PacketEvent{
			Kind:          uint8(pkt.Kind),
			Name:          pkt.Name,
			Technology:    pkt.Technology,
			GroupID:       pkt.GroupID,
			MethodID:      pkt.MethodID,
			PayloadLength: len(pkt.Payload()),
		},
	})
}

// Reset discards any accumulated bytes. Transports call this after
// abandoning a stalled buffer.
func (p *Parser) Reset() {
	p.buf = nil
}

// Pending returns a copy of the bytes accumulated so far.
func (p *Parser) Pending() []byte {
	pending := make([]byte, len(p.buf))
	copy(pending, p.buf)
	return pending
}

func (p *Parser) logFrame(frame []byte, idle bool) {
	data := make([]byte, len(frame))
	copy(data, frame)
	p.logger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: p.id,
		Direction: log.DirectionRx,
		Category:  log.CategoryFrame,
		Frame: &log.FrameEvent{
			Size: len(frame),
			Data: data,
			Idle: idle,
		},
	})
}

func (p *Parser) logPacket(pkt *bgapi.Packet) {
	p.logger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: p.id,
		Direction: log.DirectionRx,
		Category:  log.CategoryPacket,
		Packet: &log.PacketEvent{
			Kind:          uint8(pkt.Kind),
			Name:          pkt.Name,
			Technology:    pkt.Technology,
			GroupID:       pkt.GroupID,
			MethodID:      pkt.MethodID,
			PayloadLength: len(pkt.Payload()),
		},
	})
}

func (p *Parser) logError(err error, frame []byte) {
	data := make([]byte, len(frame))
	copy(data, frame)
	p.logger.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: p.id,
		Direction: log.DirectionRx,
		Category:  log.CategoryError,
		Error: &log.ErrorEvent{
			Message: err.Error(),
			Data:    data,
		},
	})
}
