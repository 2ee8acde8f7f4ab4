// Command bgapi-repl is an interactive BGAPI packet workbench.
//
// It encodes packets by name, decodes raw frames, and feeds byte streams
// through the framing layer the way a serial transport would, with optional
// capture to a .blog file.
//
// Usage:
//
//	bgapi-repl [flags]
//
// Flags:
//
//	-overlay string    YAML overlay file with vendor packet definitions
//	-capture string    Capture file to start logging to immediately
//	-log-level string  Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Start with the built-in registry
//	bgapi-repl
//
//	# Load vendor definitions and capture traffic
//	bgapi-repl -overlay vendor.yaml -capture session.blog -log-level debug
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/perilib/bgapi-go/cmd/bgapi-repl/interactive"
	"github.com/perilib/bgapi-go/pkg/bgapi"
	"github.com/perilib/bgapi-go/pkg/schema"
)

// Config holds the repl configuration.
type Config struct {
	OverlayFile string
	CaptureFile string
	LogLevel    string
}

var config Config

func init() {
	flag.StringVar(&config.OverlayFile, "overlay", "", "YAML overlay file with vendor packet definitions")
	flag.StringVar(&config.CaptureFile, "capture", "", "Capture file to start logging to immediately")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func main() {
	flag.Parse()

	logger := setupLogging(config.LogLevel)

	proto, err := buildProtocol()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build protocol")
	}
	logger.Info().Int("packets", len(proto.Registry().Names())).Msg("registry loaded")

	shell, err := interactive.New(proto, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start shell")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigCh:
			logger.Info().Str("signal", sig.String()).Msg("shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	if config.CaptureFile != "" {
		shell.StartCapture(config.CaptureFile)
	}

	shell.Run(ctx, cancel)
}

func setupLogging(level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).With().Timestamp().Str("app", "bgapi-repl").Logger()

	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unknown log level %q, using info\n", level)
		parsed = zerolog.InfoLevel
	}
	return logger.Level(parsed)
}

func buildProtocol() (*bgapi.Protocol, error) {
	if config.OverlayFile == "" {
		return bgapi.Default(), nil
	}

	overlay, err := schema.LoadOverlayFile(config.OverlayFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load overlay: %w", err)
	}
	reg, err := schema.Builtin().WithOverlay(overlay)
	if err != nil {
		return nil, fmt.Errorf("failed to apply overlay: %w", err)
	}
	return bgapi.New(reg), nil
}
