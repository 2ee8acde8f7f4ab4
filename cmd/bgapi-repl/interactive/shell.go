// Package interactive provides the interactive command-line interface
// for the bgapi-repl tool.
package interactive

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"

	"github.com/perilib/bgapi-go/pkg/bgapi"
	"github.com/perilib/bgapi-go/pkg/log"
	"github.com/perilib/bgapi-go/pkg/schema"
	"github.com/perilib/bgapi-go/pkg/stream"
	"github.com/perilib/bgapi-go/pkg/wire"
)

// Shell handles interactive mode for bgapi-repl.
type Shell struct {
	proto  *bgapi.Protocol
	parser *stream.Parser
	rl     *readline.Instance
	logger zerolog.Logger

	// Capture control
	capture     *log.FileLogger
	capturePath string
}

// New creates a new interactive shell over the given protocol.
func New(proto *bgapi.Protocol, logger zerolog.Logger) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "bgapi> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := &Shell{
		proto:  proto,
		parser: stream.NewParser(proto),
		rl:     rl,
		logger: logger,
	}

	s.parser.OnError = func(err error, frame []byte) {
		fmt.Fprintf(rl.Stdout(), "Decode error: %v (frame % X)\n", err, frame)
	}

	return s, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()
	defer s.stopCapture()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "encode", "e":
			s.cmdEncode(args)

		case "decode", "d":
			s.cmdDecode(args)

		case "feed", "f":
			s.cmdFeed(args)

		case "list", "l":
			s.cmdList(args)

		case "info", "i":
			s.cmdInfo(args)

		case "capture", "cap":
			s.cmdCapture(args)

		case "pending":
			s.cmdPending()

		case "reset":
			s.parser.Reset()
			fmt.Fprintln(s.rl.Stdout(), "Receive buffer cleared")

		case "status":
			s.cmdStatus()

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
BGAPI Commands:
  Packets:
    encode <name> [key=val ...] - Encode a packet and show its wire bytes
    decode <hex> [tx|rx]        - Decode one complete frame (default rx)
    feed <hex>                  - Feed bytes through the stream parser

  Registry:
    list [prefix]               - List packet names (optionally filtered)
    info <name>                 - Show a packet's triple and arguments

  Capture:
    capture <file>              - Start logging traffic to a capture file
    capture off                 - Stop capturing
    status                      - Show session and capture state

  Stream:
    pending                     - Show bytes waiting in the receive buffer
    reset                       - Discard the receive buffer

  General:
    help                        - Show this help
    quit                        - Exit

  Value Format:
    Integers accept decimal or 0x-prefixed hex; mac addresses use
    aa:bb:cc:dd:ee:ff; uint8array values are plain hex strings.
    Example: encode ble_cmd_gap_connect_direct address=00:07:80:ab:cd:ef addr_type=0 conn_interval_min=0x3c conn_interval_max=0x4c timeout=100 latency=0`)
}

// cmdEncode handles the encode command.
func (s *Shell) cmdEncode(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: encode <name> [key=val ...]")
		fmt.Fprintln(s.rl.Stdout(), "  Example: encode ble_cmd_system_hello")
		return
	}

	name := args[0]
	ref, err := s.proto.Registry().ResolveName(name)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}

	fields, err := parseFields(ref.Args(), args[1:])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}

	pkt, err := s.proto.EncodeByName(name, fields)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Encode failed: %v\n", err)
		return
	}

	s.printPacket(pkt)
	s.parser.CaptureTx(pkt)
}

// cmdDecode handles the decode command.
func (s *Shell) cmdDecode(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: decode <hex> [tx|rx]")
		fmt.Fprintln(s.rl.Stdout(), "  Example: decode 00000001 rx")
		return
	}

	buf, err := parseHex(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid hex: %v\n", err)
		return
	}

	dir := bgapi.DirectionRx
	if len(args) > 1 {
		switch strings.ToLower(args[1]) {
		case "tx":
			dir = bgapi.DirectionTx
		case "rx":
			dir = bgapi.DirectionRx
		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown direction: %s (want tx or rx)\n", args[1])
			return
		}
	}

	pkt, err := s.proto.DecodeBuffer(buf, dir)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Decode failed: %v\n", err)
		return
	}

	s.printPacket(pkt)
}

// cmdFeed handles the feed command.
func (s *Shell) cmdFeed(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: feed <hex>")
		fmt.Fprintln(s.rl.Stdout(), "  Bytes may arrive split across multiple feed calls")
		return
	}

	data, err := parseHex(strings.Join(args, ""))
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid hex: %v\n", err)
		return
	}

	packets := s.parser.Feed(data)
	s.logger.Debug().
		Int("bytes", len(data)).
		Int("packets", len(packets)).
		Int("pending", len(s.parser.Pending())).
		Msg("fed stream parser")

	for _, pkt := range packets {
		s.printPacket(pkt)
	}
	if len(packets) == 0 {
		fmt.Fprintf(s.rl.Stdout(), "No complete packet (%d bytes pending)\n", len(s.parser.Pending()))
	}
}

// cmdList handles the list command.
func (s *Shell) cmdList(args []string) {
	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}

	count := 0
	for _, name := range s.proto.Registry().Names() {
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		fmt.Fprintf(s.rl.Stdout(), "  %s\n", name)
		count++
	}
	fmt.Fprintf(s.rl.Stdout(), "%d packets\n", count)
}

// cmdInfo handles the info command.
func (s *Shell) cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: info <name>")
		fmt.Fprintln(s.rl.Stdout(), "  Example: info ble_evt_gap_scan_response")
		return
	}

	ref, err := s.proto.Registry().ResolveName(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "\n%s\n", args[0])
	fmt.Fprintf(s.rl.Stdout(), "  Kind:       %s\n", ref.Kind)
	fmt.Fprintf(s.rl.Stdout(), "  Technology: %d\n", ref.Technology)
	fmt.Fprintf(s.rl.Stdout(), "  Group:      %d\n", ref.GroupID)
	fmt.Fprintf(s.rl.Stdout(), "  Method:     %d\n", ref.MethodID)

	printArgs := func(label string, list []schema.Arg) {
		if len(list) == 0 {
			fmt.Fprintf(s.rl.Stdout(), "  %s: (none)\n", label)
			return
		}
		fmt.Fprintf(s.rl.Stdout(), "  %s:\n", label)
		for _, arg := range list {
			fmt.Fprintf(s.rl.Stdout(), "    %-20s %s\n", arg.Name, arg.Type)
		}
	}

	switch ref.Kind {
	case schema.KindEvent:
		printArgs("Event args", ref.Method.EventArgs)
	default:
		printArgs("Command args", ref.Method.CommandArgs)
		printArgs("Response args", ref.Method.ResponseArgs)
	}
	fmt.Fprintln(s.rl.Stdout())
}

// cmdCapture handles the capture command.
func (s *Shell) cmdCapture(args []string) {
	if len(args) < 1 {
		if s.capture == nil {
			fmt.Fprintln(s.rl.Stdout(), "Capture is off")
		} else {
			fmt.Fprintf(s.rl.Stdout(), "Capturing to %s\n", s.capturePath)
		}
		return
	}

	if strings.ToLower(args[0]) == "off" {
		if s.capture == nil {
			fmt.Fprintln(s.rl.Stdout(), "Capture is not running")
			return
		}
		s.stopCapture()
		fmt.Fprintln(s.rl.Stdout(), "Capture stopped")
		return
	}

	s.StartCapture(args[0])
}

// StartCapture opens a capture file and routes traffic to it, replacing any
// capture already running.
func (s *Shell) StartCapture(path string) {
	s.stopCapture()
	fl, err := log.NewFileLogger(path)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Failed to open capture file: %v\n", err)
		return
	}
	s.capture = fl
	s.capturePath = path
	s.parser.SetLogger(fl)
	s.logger.Info().Str("path", path).Msg("capture started")
	fmt.Fprintf(s.rl.Stdout(), "Capturing to %s (session %s)\n", path, s.parser.SessionID())
}

// cmdPending shows the receive buffer contents.
func (s *Shell) cmdPending() {
	pending := s.parser.Pending()
	if len(pending) == 0 {
		fmt.Fprintln(s.rl.Stdout(), "Receive buffer is empty")
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "%d bytes pending: % X\n", len(pending), pending)
}

// cmdStatus shows the shell status.
func (s *Shell) cmdStatus() {
	fmt.Fprintln(s.rl.Stdout(), "\nShell Status")
	fmt.Fprintln(s.rl.Stdout(), "-------------------------------------------")
	fmt.Fprintf(s.rl.Stdout(), "  Session ID:   %s\n", s.parser.SessionID())
	fmt.Fprintf(s.rl.Stdout(), "  Pending:      %d bytes\n", len(s.parser.Pending()))

	captureStatus := "off"
	if s.capture != nil {
		captureStatus = s.capturePath
	}
	fmt.Fprintf(s.rl.Stdout(), "  Capture:      %s\n", captureStatus)

	for _, isEvent := range []bool{false, true} {
		table := "commands"
		if isEvent {
			table = "events"
		}
		techs := s.proto.Registry().Technologies(isEvent)
		ids := make([]int, 0, len(techs))
		for id := range techs {
			ids = append(ids, int(id))
		}
		sort.Ints(ids)
		names := make([]string, 0, len(ids))
		for _, id := range ids {
			names = append(names, fmt.Sprintf("%s=%d", techs[uint8(id)], id))
		}
		fmt.Fprintf(s.rl.Stdout(), "  %-13s %s\n", table+":", strings.Join(names, " "))
	}
	fmt.Fprintln(s.rl.Stdout())
}

// printPacket prints a decoded or encoded packet with its fields.
func (s *Shell) printPacket(pkt *bgapi.Packet) {
	fmt.Fprintf(s.rl.Stdout(), "\n%s (%s %d/%d/%d)\n",
		pkt.Name, pkt.Kind, pkt.Technology, pkt.GroupID, pkt.MethodID)
	fmt.Fprintf(s.rl.Stdout(), "  Raw: % X\n", pkt.Raw)
	for _, arg := range pkt.Args() {
		value := pkt.Fields[arg.Name]
		fmt.Fprintf(s.rl.Stdout(), "  %-20s %s\n", arg.Name+":", formatValue(value))
	}
	fmt.Fprintln(s.rl.Stdout())
}

// stopCapture closes the capture file if one is open.
func (s *Shell) stopCapture() {
	if s.capture == nil {
		return
	}
	if err := s.capture.Close(); err != nil {
		s.logger.Error().Err(err).Str("path", s.capturePath).Msg("failed to close capture file")
	}
	s.capture = nil
	s.capturePath = ""
	s.parser.SetLogger(nil)
}

// parseFields parses key=val pairs against the schema's argument list.
func parseFields(args []schema.Arg, pairs []string) (bgapi.Fields, error) {
	types := make(map[string]wire.ArgType, len(args))
	for _, arg := range args {
		types[arg.Name] = arg.Type
	}

	fields := make(bgapi.Fields, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("expected key=val, got %q", pair)
		}
		t, ok := types[key]
		if !ok {
			// Let the encoder report it as an argument mismatch.
			fields[key] = raw
			continue
		}
		value, err := parseValue(t, raw)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", key, err)
		}
		fields[key] = value
	}
	return fields, nil
}

// parseValue parses one textual value according to its wire type.
func parseValue(t wire.ArgType, raw string) (any, error) {
	switch t {
	case wire.TypeInt8:
		i, err := strconv.ParseInt(raw, 0, 8)
		if err != nil {
			return nil, err
		}
		return int8(i), nil

	case wire.TypeUint8, wire.TypeUint16, wire.TypeUint32:
		u, err := strconv.ParseUint(raw, 0, 32)
		if err != nil {
			return nil, err
		}
		return uint32(u), nil

	case wire.TypeMACAddress:
		b, err := hex.DecodeString(strings.ReplaceAll(raw, ":", ""))
		if err != nil {
			return nil, err
		}
		if len(b) != 6 {
			return nil, fmt.Errorf("mac address requires 6 bytes, got %d", len(b))
		}
		var mac wire.MACAddress
		copy(mac[:], b)
		return mac, nil

	case wire.TypeUint8Array:
		return parseHex(raw)

	default:
		return nil, fmt.Errorf("unsupported argument type %s", t)
	}
}

// formatValue renders one decoded field value for display.
func formatValue(value any) string {
	switch v := value.(type) {
	case []byte:
		return fmt.Sprintf("% X", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// parseHex decodes a hex string, tolerating spaces and 0x prefixes.
func parseHex(raw string) ([]byte, error) {
	cleaned := strings.NewReplacer(" ", "", "0x", "", "0X", "").Replace(raw)
	return hex.DecodeString(cleaned)
}
