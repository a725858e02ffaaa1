package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/lixenwraith/depthballs/audio"
	"github.com/lixenwraith/depthballs/config"
	"github.com/lixenwraith/depthballs/engine"
	"github.com/lixenwraith/depthballs/input"
	"github.com/lixenwraith/depthballs/parameter"
	"github.com/lixenwraith/depthballs/render"
	"github.com/lixenwraith/depthballs/source"
	"github.com/lixenwraith/depthballs/status"
)

const (
	flagConfig    = "config"
	flagSource    = "source"
	flagReplayDir = "replay-dir"
	flagLoop      = "loop"
	flagPrefetch  = "prefetch"
	flagMirror    = "mirror"
	flagDebug     = "debug"
	flagNoAudio   = "no-audio"
	flagOut       = "out"
	flagFrames    = "frames"
	flagSeed      = "seed"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "depthballs: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "depthballs",
		Usage: "drop balls onto whatever stands in the depth band",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load configuration from `FILE`",
			},
			&cli.StringFlag{
				Name:  flagSource,
				Usage: "frame source: synthetic or replay",
			},
			&cli.StringFlag{
				Name:  flagReplayDir,
				Usage: "read 16-bit PNG depth frames from `DIR` (implies --source replay)",
			},
			&cli.BoolFlag{
				Name:  flagLoop,
				Usage: "restart the replay after its last frame",
			},
			&cli.BoolFlag{
				Name:  flagPrefetch,
				Usage: "acquire the next frame in the background",
			},
			&cli.BoolFlag{
				Name:  flagMirror,
				Usage: "start with the image mirrored",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "write debug logs to " + filepath.Join(logDir, logFileName),
			},
			&cli.BoolFlag{
				Name:  flagNoAudio,
				Usage: "disable sound cues",
			},
		},
		Action: run,
		Commands: []*cli.Command{
			{
				Name:  "record",
				Usage: "write synthetic depth frames as 16-bit PNGs for replay",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagOut,
						Required: true,
						Usage:    "output `DIR`",
					},
					&cli.IntFlag{
						Name:  flagFrames,
						Value: 100,
						Usage: "number of frames",
					},
					&cli.Uint64Flag{
						Name:  flagSeed,
						Value: 1,
						Usage: "noise seed",
					},
				},
				Action: record,
			},
		},
	}
}

// loadConfig reads the config file and applies explicitly set flags on top
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String(flagConfig))
	if err != nil {
		return cfg, err
	}
	if c.IsSet(flagSource) {
		cfg.Source.Kind = c.String(flagSource)
	}
	if c.IsSet(flagReplayDir) {
		cfg.Source.ReplayDir = c.String(flagReplayDir)
		if !c.IsSet(flagSource) {
			cfg.Source.Kind = config.SourceReplay
		}
	}
	if c.IsSet(flagLoop) {
		cfg.Source.Loop = c.Bool(flagLoop)
	}
	if c.IsSet(flagPrefetch) {
		cfg.Source.Prefetch = c.Bool(flagPrefetch)
	}
	if c.IsSet(flagMirror) {
		cfg.Band.Mirror = c.Bool(flagMirror)
	}
	if c.IsSet(flagDebug) {
		cfg.Debug = c.Bool(flagDebug)
	}
	if c.Bool(flagNoAudio) {
		cfg.Audio = false
	}
	return cfg, cfg.Validate()
}

// openSource builds the configured source chain: producer, range filter, optional prefetch
func openSource(ctx context.Context, cfg config.Config, logger *zap.Logger) (source.FrameSource, error) {
	var src source.FrameSource
	switch cfg.Source.Kind {
	case config.SourceReplay:
		r, err := source.NewReplay(cfg.ReplayConfig(), nil, logger.Named("replay"))
		if err != nil {
			return nil, err
		}
		src = r
	default:
		src = source.NewSynthetic(cfg.SyntheticConfig(), nil)
	}
	src = source.NewFiltered(src, cfg.Source.RangeMin, cfg.Source.RangeMax)
	if cfg.Source.Prefetch {
		src = source.NewPrefetch(ctx, src)
	}
	logger.Info("frame source opened", zap.String("kind", cfg.Source.Kind), zap.Bool("prefetch", cfg.Source.Prefetch))
	return src, nil
}

func run(c *cli.Context) (err error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	logger, logCloser, err := setupLogging(cfg.Debug)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
		if logCloser != nil {
			err = multierr.Append(err, logCloser.Close())
		}
	}()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := openSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, errors.Wrap(src.Close(), "close frame source"))
	}()

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	crash := func(r any) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "\r\n\x1b[31mDEPTHBALLS CRASHED: %v\x1b[0m\r\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic", zap.Any("recovered", r))
			_ = logger.Sync()
			crash(r)
		}
	}()
	defer screen.Fini()
	screen.HideCursor()

	events := input.NewEventQueue(parameter.EventQueueSize)
	events.Start(screen, crash)

	sound := audio.NewSoundManager()
	if cfg.Audio {
		if err := sound.Initialize(); err != nil {
			logger.Warn("audio disabled", zap.Error(err))
		}
	}
	defer sound.Cleanup()

	registry := status.NewRegistry()
	game, err := engine.NewGame(cfg, engine.Options{
		Source:    src,
		Events:    events,
		Presenter: render.NewTerminalPresenter(screen),
		Cues:      sound,
		Registry:  registry,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	runErr := game.Run(ctx)
	if errors.Is(runErr, source.ErrExhausted) {
		logger.Info("replay finished")
		runErr = nil
	}
	logger.Info("exit", registry.Fields()...)
	return runErr
}

// record renders synthetic frames to disk so a session can be replayed without a sensor
func record(c *cli.Context) error {
	dir := c.String(flagOut)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create output dir")
	}

	cfg := config.Default()
	sc := cfg.SyntheticConfig()
	sc.Interval = 0
	sc.Seed = c.Uint64(flagSeed)
	src := source.NewSynthetic(sc, nil)
	defer src.Close()

	n := c.Int(flagFrames)
	for i := 0; i < n; i++ {
		frame, err := src.Next(c.Context)
		if err != nil {
			return err
		}
		if err := source.WriteFrame(filepath.Join(dir, fmt.Sprintf("frame-%05d.png", i)), frame); err != nil {
			return err
		}
	}
	fmt.Fprintf(c.App.Writer, "wrote %d frames to %s\n", n, dir)
	return nil
}
