// cmd/parabola/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-parabola/pkg/audio"
	"github.com/opd-ai/go-parabola/pkg/config"
	"github.com/opd-ai/go-parabola/pkg/event"
	"github.com/opd-ai/go-parabola/pkg/logging"
	"github.com/opd-ai/go-parabola/pkg/readout"
	engorender "github.com/opd-ai/go-parabola/pkg/render/engo"
	"github.com/opd-ai/go-parabola/pkg/render/terminal"
	"github.com/opd-ai/go-parabola/pkg/simulation"
)

// options holds the command line.
type options struct {
	configPath    string
	createDefault bool
	logPath       string
	renderer      string
	speed         float64
	angle         float64
	mode          string
	audio         bool
	set           map[string]bool
}

func parseFlags(fs *flag.FlagSet, args []string) (*options, error) {
	o := &options{}
	fs.StringVar(&o.configPath, "config", "config.json", "Path to configuration file")
	fs.BoolVar(&o.createDefault, "default", false, "Create default configuration file and exit")
	fs.StringVar(&o.logPath, "log", "", "Write logs to this file (terminal renderer logs nowhere by default)")
	fs.StringVar(&o.renderer, "renderer", config.RendererTerminal, "Renderer type: 'terminal', 'engo' or 'headless'")
	fs.Float64Var(&o.speed, "speed", 20, "Initial speed in m/s (0-50)")
	fs.Float64Var(&o.angle, "angle", 45, "Launch angle in degrees (0-90)")
	fs.StringVar(&o.mode, "mode", config.ModeLive, "Parameter mode: 'live' or 'snapshot'")
	fs.BoolVar(&o.audio, "audio", false, "Play kick and landing sounds")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

// apply overrides cfg with the flags given explicitly on the command line.
func (o *options) apply(cfg *config.Config) error {
	if o.set["renderer"] {
		cfg.Renderer = o.renderer
	}
	if o.set["speed"] {
		cfg.InitialSpeed = o.speed
	}
	if o.set["angle"] {
		cfg.LaunchAngle = o.angle
	}
	if o.set["mode"] {
		cfg.ParameterMode = o.mode
	}
	if o.set["audio"] {
		cfg.Audio = o.audio
	}
	return cfg.Validate()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx := context.Background()
	bootLogger := logging.NewLogger()

	opts, err := parseFlags(flag.NewFlagSet("parabola", flag.ContinueOnError), args)
	if err != nil {
		return 2
	}

	if opts.createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), opts.configPath); err != nil {
			bootLogger.Error(ctx, "Failed to create default configuration", err, "config_path", opts.configPath)
			return 1
		}
		bootLogger.Info(ctx, "Created default configuration file", "config_path", opts.configPath)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		bootLogger.Error(ctx, "Failed to load configuration", err, "config_path", opts.configPath)
		return 1
	}
	if err := opts.apply(cfg); err != nil {
		bootLogger.Error(ctx, "Invalid command line", err)
		return 1
	}

	logger, closeLog, err := openLogger(cfg, opts.logPath)
	if err != nil {
		bootLogger.Error(ctx, "Failed to open log file", err, "log_path", opts.logPath)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := event.NewEventBus()
	if cfg.Audio {
		player := audio.NewPlayer(logger)
		if err := player.Initialize(); err != nil {
			// non-fatal, the kick runs silently
			logger.Warn(ctx, "Audio initialization failed", "error", err.Error())
		} else {
			player.Attach(bus)
			defer player.Close()
		}
	}

	switch cfg.Renderer {
	case config.RendererHeadless:
		return runHeadless(ctx, cfg, logger, bus, os.Stdout)
	case config.RendererEngo:
		engorender.Run(cfg, logger, simulation.WithBus(bus))
		return 0
	default:
		return runTerminal(ctx, cfg, logger, bus)
	}
}

// openLogger picks the log destination. The terminal renderer owns the tty,
// so without -log it logs nowhere.
func openLogger(cfg *config.Config, path string) (*logging.Logger, func(), error) {
	level := logging.ParseLevel(cfg.LogLevel)
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return logging.NewLoggerTo(f, level), func() { _ = f.Close() }, nil
	}
	if cfg.Renderer == config.RendererTerminal {
		return logging.NewLoggerTo(io.Discard, level), func() {}, nil
	}
	return logging.NewLoggerTo(os.Stderr, level), func() {}, nil
}

func runHeadless(ctx context.Context, cfg *config.Config, logger *logging.Logger, bus *event.Bus, out io.Writer) int {
	res, err := simulation.RunHeadless(ctx, cfg, logger, simulation.WithBus(bus))
	if err != nil {
		logger.Error(ctx, "Headless run failed", err)
		return 1
	}

	fmt.Fprintf(out, "Kick at %.0f m/s, %.0f°: %s after %d ticks\n",
		cfg.InitialSpeed, cfg.LaunchAngle, res.Reason, res.Ticks)
	for _, l := range res.Readout.Lines() {
		fmt.Fprintf(out, "%-12s %s\n", l.Label+":", l.Value)
	}
	fmt.Fprintf(out, "%-12s %s\n", "Carry:", readout.Meters(res.Carry))
	return 0
}

func runTerminal(ctx context.Context, cfg *config.Config, logger *logging.Logger, bus *event.Bus) int {
	screen, err := tcell.NewScreen()
	if err != nil {
		logger.Error(ctx, "Failed to create screen", err)
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		logger.Error(ctx, "Failed to initialize screen", err)
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()

	host, err := terminal.NewHost(screen, cfg, logger, simulation.WithBus(bus))
	if err != nil {
		logger.Error(ctx, "Failed to start terminal host", err)
		return 1
	}
	if err := host.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error(ctx, "Terminal host stopped", err)
		return 1
	}
	return 0
}
