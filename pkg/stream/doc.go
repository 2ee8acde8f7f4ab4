// Package stream turns an incoming byte stream into decoded packets.
//
// The Parser accumulates bytes fed by a transport loop, re-classifies the
// buffer as each chunk arrives, and emits a packet whenever a complete
// frame is present. It performs no I/O and keeps no timers; read cadence,
// timeouts and abandoning stalled buffers remain the transport's job.
//
//	parser := stream.NewParser(bgapi.Default())
//	parser.OnPacket = func(p *bgapi.Packet) { ... }
//	parser.OnError = func(err error, raw []byte) { ... }
//
//	for {
//	    n, _ := port.Read(chunk)
//	    parser.Feed(chunk[:n])
//	}
//
// All-zero headers (wake-up padding) are silently discarded. A buffer that
// fails to decode is handed to OnError and dropped so the stream can
// resynchronize on the next frame.
package stream
