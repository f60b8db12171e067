// Command scpi-voltmeter is a simulated SCPI digital voltmeter.
//
// The instrument speaks newline-terminated SCPI over stdin/stdout by
// default, over a raw TCP socket with -listen, or through an
// interactive readline prompt with -interactive.
//
// Usage:
//
//	scpi-voltmeter [flags]
//
// Flags:
//
//	-config string       Configuration file path (YAML)
//	-listen string       TCP listen address (e.g. ":5025"); empty = stdio
//	-interactive         Interactive readline prompt instead of stdio
//	-level float         Simulated input level in volts (default 1.0)
//	-log-level string    Log level: debug, info, warn, error (default "info")
//	-log-file string     CBOR protocol event log path
//	-state string        Settings persistence file path
//	-mdns                Advertise the instrument over mDNS (TCP mode)
//
// Examples:
//
//	# Drive over stdio (harness mode)
//	scpi-voltmeter
//
//	# Listen on the conventional raw-socket port and advertise
//	scpi-voltmeter -listen :5025 -mdns
//
//	# Explore interactively
//	scpi-voltmeter -interactive -log-level debug
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/scpi-protocol/scpi-go/pkg/discovery"
	"github.com/scpi-protocol/scpi-go/pkg/dmm"
	"github.com/scpi-protocol/scpi-go/pkg/interp"
	"github.com/scpi-protocol/scpi-go/pkg/log"
	"github.com/scpi-protocol/scpi-go/pkg/persistence"
	"github.com/scpi-protocol/scpi-go/pkg/transport"
)

var flags struct {
	ConfigFile  string
	Listen      string
	Interactive bool
	Level       float64
	LogLevel    string
	LogFile     string
	StateFile   string
	MDNS        bool
}

func init() {
	flag.StringVar(&flags.ConfigFile, "config", "", "Configuration file path (YAML)")
	flag.StringVar(&flags.Listen, "listen", "", "TCP listen address; empty = stdio")
	flag.BoolVar(&flags.Interactive, "interactive", false, "Interactive readline prompt")
	flag.Float64Var(&flags.Level, "level", dmm.DefaultSimLevel, "Simulated input level in volts")
	flag.StringVar(&flags.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&flags.LogFile, "log-file", "", "CBOR protocol event log path")
	flag.StringVar(&flags.StateFile, "state", "", "Settings persistence file path")
	flag.BoolVar(&flags.MDNS, "mdns", false, "Advertise the instrument over mDNS (TCP mode)")
}

func main() {
	flag.Parse()

	cfg, err := LoadConfig(flags.ConfigFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg.applyFlags()

	slogger := newSlog(cfg.LogLevel)

	// Protocol event logging: console (debug) plus optional CBOR file.
	loggers := []log.Logger{log.NewSlogAdapter(slogger)}
	var fileLogger *log.FileLogger
	if cfg.LogFile != "" {
		fileLogger, err = log.NewFileLogger(cfg.LogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer fileLogger.Close()
		loggers = append(loggers, fileLogger)
	}
	logger := log.NewMultiLogger(loggers...)

	// Build the instrument.
	sensor := &dmm.SimSensor{Level: cfg.Level}
	meter := dmm.New(sensor)
	meter.Identity = cfg.identity()

	var store *persistence.StateStore
	if cfg.StateFile != "" {
		store = persistence.NewStateStore(cfg.StateFile)
		if err := restoreState(meter, store); err != nil {
			slogger.Warn("ignoring saved state", "error", err)
		}
		defer func() {
			if err := saveState(meter, store); err != nil {
				slogger.Warn("failed to save state", "error", err)
			}
		}()
	}

	in := interp.New(dmm.CommandTree(meter), meter)
	in.SetLogger(logger, "")

	// Readiness banner: the harness waits for a line starting with
	// "Running" before sending commands.
	fmt.Printf("Running %s\n", meter.Identity)

	switch {
	case flags.Interactive:
		err = runInteractive(in)
	case cfg.Listen != "":
		err = runServer(cfg, in, logger, slogger)
	default:
		err = runStdio(in, logger)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		os.Exit(1)
	}
}

// runStdio processes newline-terminated program messages from stdin,
// one line to completion at a time.
func runStdio(in *interp.Interpreter, logger log.Logger) error {
	reader := transport.NewLineReader(os.Stdin)
	reader.SetLogger(logger, "")
	writer := transport.NewLineWriter(os.Stdout)
	writer.SetLogger(logger, "")

	for {
		line, err := reader.ReadLine()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			// Malformed input must not kill the process.
			fmt.Fprintf(os.Stderr, "%v\n", err)
			continue
		}
		if line == "" {
			continue
		}

		result := in.Run(line)
		for _, resp := range result.Responses {
			if err := writer.WriteLine(resp); err != nil {
				return err
			}
		}
		// Errors stay retrievable via SYST:ERR?; mirror them on stderr
		// so failing events are not silent.
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, e.Error())
		}
	}
}

// runServer serves raw-socket SCPI connections. All connections share
// one instrument; lines are executed one at a time.
func runServer(cfg *Config, in *interp.Interpreter, logger log.Logger, slogger *slog.Logger) error {
	var mu sync.Mutex

	server := transport.NewServer(transport.ServerConfig{
		Address: cfg.Listen,
		Logger:  logger,
		OnLine: func(conn *transport.ServerConn, line string) {
			if line == "" {
				return
			}
			mu.Lock()
			result := in.Run(line)
			mu.Unlock()
			for _, resp := range result.Responses {
				if err := conn.WriteLine(resp); err != nil {
					return
				}
			}
		},
		OnError: func(conn *transport.ServerConn, err error) {
			slogger.Warn("connection error", "conn_id", conn.ID, "error", err)
		},
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := server.Start(ctx); err != nil {
		return err
	}
	defer server.Stop()
	slogger.Info("listening", "addr", server.Addr().String())

	if cfg.MDNS {
		adv := discovery.NewAdvertiser(discovery.DefaultAdvertiserConfig())
		info := &discovery.InstrumentInfo{
			Manufacturer: cfg.Manufacturer,
			Model:        cfg.Model,
			Serial:       cfg.Serial,
			Firmware:     cfg.Firmware,
			Port:         listenPort(server),
		}
		if err := adv.Advertise(info); err != nil {
			slogger.Warn("mDNS advertising failed", "error", err)
		} else {
			defer adv.Stop()
			slogger.Info("advertising", "instance", info.InstanceName(), "service", discovery.ServiceTypeSCPIRaw)
		}
	}

	<-ctx.Done()
	return nil
}

// listenPort extracts the bound TCP port.
func listenPort(server *transport.Server) int {
	addr := server.Addr()
	if addr == nil {
		return transport.DefaultPort
	}
	_, portStr, err := net.SplitHostPort(addr.String())
	if err != nil {
		return transport.DefaultPort
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return transport.DefaultPort
	}
	return port
}

// restoreState applies a saved configuration to the meter.
func restoreState(meter *dmm.Voltmeter, store *persistence.StateStore) error {
	state, err := store.Load()
	if err != nil || state == nil {
		return err
	}

	fn, err := dmm.ParseFunction(state.Function)
	if err != nil {
		return fmt.Errorf("saved function: %w", err)
	}
	meter.SetFunction(fn)
	if state.RangeAuto {
		meter.SetRangeAuto(true)
	} else {
		meter.SetRangeUpper(state.RangeUpper)
	}
	if err := meter.SetResolution(state.Resolution); err != nil {
		return fmt.Errorf("saved resolution: %w", err)
	}
	if state.TriggerCount > 0 {
		meter.SetTriggerCount(state.TriggerCount)
	}
	return nil
}

// saveState snapshots the meter configuration to the store.
func saveState(meter *dmm.Voltmeter, store *persistence.StateStore) error {
	cfg := meter.Config()
	return store.Save(&persistence.InstrumentState{
		Function:     cfg.Function.String(),
		RangeAuto:    cfg.Range.Auto,
		RangeUpper:   cfg.Range.Upper,
		Resolution:   cfg.Resolution,
		TriggerCount: meter.TriggerCount(),
	})
}

// newSlog builds the console logger at the configured level.
func newSlog(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
