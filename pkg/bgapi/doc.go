// Package bgapi decodes and encodes whole BGAPI packets.
//
// It ties the wire codec (pkg/wire) to the schema registry (pkg/schema)
// and exposes the two operations a transport needs:
//
//	proto := bgapi.Default()
//
//	// Raw buffer to named, typed packet. The direction flag tells command
//	// and response frames apart; they share the same wire triple.
//	pkt, err := proto.DecodeBuffer(buf, bgapi.DirectionRx)
//
//	// Name plus keyword arguments to wire-ready packet.
//	pkt, err := proto.EncodeByName("ble_cmd_gap_discover", bgapi.Fields{
//		"mode": 1,
//	})
//
// Both operations are synchronous, allocation-bounded computations over
// the immutable registry; a Protocol may be shared by any number of
// goroutines. Buffer accumulation and frame-completeness detection for
// streaming input live in pkg/stream and pkg/wire.
package bgapi
