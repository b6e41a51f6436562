// Command rover runs the differential-drive rover simulation.
//
// By default it runs headless until the goal is reached or -ticks have
// elapsed and prints a summary. -tui draws the arena in the terminal and
// accepts keyboard driving; -db, -plots and -html record the run.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/banshee-data/rover.sim/internal/actuator"
	"github.com/banshee-data/rover.sim/internal/config"
	"github.com/banshee-data/rover.sim/internal/monitor"
	"github.com/banshee-data/rover.sim/internal/sim"
	"github.com/banshee-data/rover.sim/internal/storage/sqlite"
	"github.com/banshee-data/rover.sim/internal/terminal"
)

var (
	configPath = flag.String("config", config.DefaultConfigPath, "Tuning config JSON file")
	pathCSV    = flag.String("path", "", "CSV file of x,y waypoints (overrides the config path)")
	maxTicks   = flag.Int("ticks", 20000, "Maximum ticks to run (0 for no limit)")
	seed       = flag.Int64("seed", 0, "Override the config random seed")
	dbPath     = flag.String("db", "", "SQLite telemetry database (disabled when empty)")
	plotDir    = flag.String("plots", "", "Directory for PNG trajectory and drift plots")
	htmlFile   = flag.String("html", "", "Write an interactive HTML report to this file")
	tui        = flag.Bool("tui", false, "Draw the arena in the terminal and accept keyboard input")
	serialPort = flag.String("serial", "", "Serial device that receives the command stream")
	baudRate   = flag.Int("baud", actuator.DefaultBaudRate, "Serial baud rate")
	policy     = flag.String("policy", "", "Avoidance policy override: continuous, discrete or combined")
	manual     = flag.Bool("manual", false, "Start in manual mode")
	noStop     = flag.Bool("no-stop", false, "Keep running after the goal is reached")
	pace       = flag.Duration("pace", 0, "Wall-clock delay per tick (defaults to the tick length with -tui)")
	logFile    = flag.String("log", "", "Write package logs to this file instead of stderr")
	verbose    = flag.Int("v", 0, "Log verbosity: 0 ops, 1 adds lifecycle, 2 adds per-tick trace")
)

func main() {
	flag.Parse()

	var seedOverride *int64
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedOverride = seed
		}
	})

	cfg, err := loadConfig(*configPath, overrides{
		seed:   seedOverride,
		policy: *policy,
		manual: *manual,
		noStop: *noStop,
	})
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logOut := io.Writer(os.Stderr)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("failed to open log file: %v", err)
		}
		defer f.Close()
		logOut = f
		log.SetOutput(f)
	} else if *tui {
		logOut = io.Discard
	}
	setLogWriters(logOut, *verbose)

	tickPace := *pace
	if tickPace == 0 && *tui {
		tickPace = time.Duration(cfg.GetTickSeconds() * float64(time.Second))
	}
	s, err := buildSimulator(cfg, *pathCSV, tickPace)
	if err != nil {
		log.Fatalf("failed to build simulator: %v", err)
	}

	history := monitor.NewHistory()
	s.AddObserver(history)

	var recorder *sqlite.Recorder
	if *dbPath != "" {
		db, err := sqlite.Open(*dbPath)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()
		run, err := newRunRecord(cfg)
		if err != nil {
			log.Fatalf("failed to describe run: %v", err)
		}
		if recorder, err = sqlite.NewRecorder(db, run, 0); err != nil {
			log.Fatalf("failed to start recorder: %v", err)
		}
		s.AddObserver(recorder)
		log.Printf("recording run %s to %s", recorder.RunID(), *dbPath)
	}

	var sink *actuator.Sink
	if *serialPort != "" {
		port, err := actuator.OpenSerial(*serialPort, actuator.PortOptions{BaudRate: *baudRate})
		if err != nil {
			log.Fatalf("failed to open actuator: %v", err)
		}
		sink = actuator.NewSink(port)
		s.AddObserver(sink)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var events chan sim.Event
	var screen tcell.Screen
	if *tui {
		if screen, err = tcell.NewScreen(); err != nil {
			log.Fatalf("failed to create screen: %v", err)
		}
		if err := screen.Init(); err != nil {
			log.Fatalf("failed to initialize screen: %v", err)
		}
		screen.HideCursor()
		s.AddObserver(terminal.NewViewer(screen, s.World(), s.Path()))

		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		ctx = runCtx
		events = make(chan sim.Event, 16)
		go terminal.PollInput(screen, events, cancel)
	}

	result, err := s.Run(ctx, events, *maxTicks)
	if screen != nil {
		screen.Fini()
	}
	if err != nil {
		log.Printf("run failed: %v", err)
	}

	if recorder != nil {
		if err := recorder.Close(result); err != nil {
			log.Printf("failed to finalize recording: %v", err)
		}
	}
	if sink != nil {
		if err := sink.Close(); err != nil {
			log.Printf("failed to stop actuator: %v", err)
		}
	}

	trace := history.Trace()
	if *plotDir != "" {
		if err := os.MkdirAll(*plotDir, 0o755); err != nil {
			log.Printf("failed to create plot directory: %v", err)
		} else {
			files, err := monitor.NewTrajectoryPlotter(s.World(), s.Path()).GeneratePlots(trace, *plotDir)
			if err != nil {
				log.Printf("failed to generate plots: %v", err)
			}
			for _, f := range files {
				log.Printf("wrote %s", f)
			}
		}
	}
	if *htmlFile != "" {
		title := "Rover run: " + filepath.Base(*configPath)
		if err := monitor.NewChartWriter(s.World(), s.Path(), title).WriteFile(trace, *htmlFile); err != nil {
			log.Printf("failed to write HTML report: %v", err)
		} else {
			log.Printf("wrote %s", *htmlFile)
		}
	}

	log.Printf("stopped: reason=%s ticks=%d reached=%v", result.Reason, result.Ticks, result.Reached)
	log.Print(monitor.Summarize(trace))
}

// setLogWriters routes the package log streams to w according to level.
func setLogWriters(w io.Writer, level int) {
	var diag, trace io.Writer
	if level >= 1 {
		diag = w
	}
	if level >= 2 {
		trace = w
	}
	sim.SetLogWriters(w, diag, trace)
	sqlite.SetLogWriters(w, diag, trace)
}
