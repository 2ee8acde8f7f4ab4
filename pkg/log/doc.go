// Package log provides protocol capture logging for BGAPI traffic.
//
// This package defines the Logger interface and Event types for recording
// raw frames and decoded packets as they cross the codec. It is separate
// from operational logging (slog) - a capture is a complete machine-readable
// trace of the byte stream, suitable for replay and offline analysis.
//
// # Basic Usage
//
//	// For development: echo events to the console via slog
//	parser.SetLogger(log.NewSlogAdapter(slog.Default()))
//
//	// For production: write a binary capture file
//	capture, _ := log.NewFileLogger("session.blog")
//	parser.SetLogger(capture)
//
//	// Both at once
//	parser.SetLogger(log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    capture,
//	))
//
// # File Format
//
// Capture files are a concatenation of CBOR-encoded events with integer
// keys, by convention named *.blog. The bgapi-log CLI tool reads, filters
// and exports them.
package log
