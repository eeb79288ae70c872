package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/user/resampler/pkg/adapters/ffmpegcmd"
	"github.com/user/resampler/pkg/adapters/ffmpegdecoder"
	"github.com/user/resampler/pkg/adapters/ffmpegencoder"
	"github.com/user/resampler/pkg/adapters/ffmpegmux"
	"github.com/user/resampler/pkg/adapters/logger"
	"github.com/user/resampler/pkg/adapters/mjpegwriter"
	"github.com/user/resampler/pkg/adapters/osfilesystem"
	"github.com/user/resampler/pkg/adapters/progress"
	"github.com/user/resampler/pkg/adapters/prompt"
	"github.com/user/resampler/pkg/adapters/scaler"
	"github.com/user/resampler/pkg/config"
	"github.com/user/resampler/pkg/orchestrator"
	"github.com/user/resampler/pkg/ports"
	"github.com/user/resampler/pkg/resample"
	"github.com/user/resampler/pkg/stages/colourfix"
	"github.com/user/resampler/pkg/stages/mux"
	"github.com/user/resampler/pkg/summarizer"
)

var errUnexpectedArgs = errors.New("unexpected arguments, use -i and -o or pass a single video")

// loadSettings reads the settings file and applies command-line overrides.
// A single positional argument without -i selects drag-and-drop mode.
func loadSettings(c *cli.Context) (config.Settings, bool, error) {
	base := config.Defaults()
	path := c.String("config")
	if path == "" {
		path = config.FindFile(".", executableDir())
	}
	if path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return config.Settings{}, false, err
		}
		base = loaded
	}

	b := config.NewBuilder(base)
	dragAndDrop := false
	switch {
	case c.IsSet("input"):
		if c.NArg() > 0 {
			return config.Settings{}, false, errUnexpectedArgs
		}
		b.WithInput(c.String("input"))
	case c.NArg() == 1:
		b.WithDragAndDrop(c.Args().First())
		dragAndDrop = true
	case c.NArg() > 1:
		return config.Settings{}, false, errUnexpectedArgs
	}
	if c.IsSet("output") {
		b.WithOutput(c.String("output"))
	}

	if c.IsSet("fps") {
		b.WithFramerate(c.Int("fps"))
	}
	if c.IsSet("blend-mode") {
		b.WithBlendMode(c.String("blend-mode"))
	}
	if c.IsSet("blend-range") {
		b.WithBlendRange(c.Float64("blend-range"))
	}
	if c.IsSet("resolution") {
		b.WithResolution(c.String("resolution"))
	}
	if c.IsSet("fourcc") {
		b.WithFourCC(c.String("fourcc"))
	}
	if c.Bool("cvfix") {
		b.WithColourFix(true)
	}
	if c.IsSet("encoder") {
		b.WithEncoder(c.String("encoder"))
	}
	if c.IsSet("preset") {
		b.WithPreset(c.String("preset"))
	}
	if c.IsSet("crf") {
		b.WithCRF(c.Int("crf"))
	}
	if c.Bool("yes") {
		b.WithAssumeYes(true)
	}
	if c.IsSet("ffmpeg-path") {
		b.WithFFmpegPath(c.String("ffmpeg-path"))
	}
	if c.IsSet("log-level") {
		b.WithLogLevel(c.String("log-level"))
	}

	settings := b.Build()
	if c.IsSet("scale-kernel") {
		settings.ScaleKernel = c.String("scale-kernel")
	}
	if c.IsSet("mjpeg-quality") {
		settings.MJPEGQuality = c.Int("mjpeg-quality")
	}
	return settings, dragAndDrop, nil
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(exe)
}

// runResample executes the resample command.
func runResample(c *cli.Context) error {
	settings, dragAndDrop, err := loadSettings(c)
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	// Create logger. Validate has already rejected unknown level names.
	level, _ := ports.ParseLogLevel(settings.LogLevel)
	if c.Bool("quiet") {
		level = ports.LevelQuiet
	}
	log := logger.New(level)

	if dragAndDrop {
		log.Info("Drag and drop mode: %s -> %s", settings.InputPath, settings.OutputPath)
	}
	if settings.FFmpegPath != "" {
		ffmpegcmd.SetFFmpegPath(settings.FFmpegPath)
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create adapters
	fs := osfilesystem.New()
	resizer, err := scaler.NewWithKernel(settings.ScaleKernel)
	if err != nil {
		return err
	}
	backends := resample.Backends{
		Streaming: ffmpegencoder.New(ffmpegencoder.NewProber(), log),
		Writer:    mjpegwriter.New(log).WithQuality(settings.MJPEGQuality),
	}

	// Create stages
	colourFixStage := colourfix.NewStage(ffmpegmux.NewColourFixer(log), fs, log)
	resampleStage := resample.New(backends, resizer, prompt.NewTerminal(), progressReporter(c, log), log, resample.Options{})
	muxStage := mux.NewStage(ffmpegmux.NewMuxer(log), fs, log)

	orch := orchestrator.New(
		colourFixStage,
		resampleStage,
		muxStage,
		ffmpegdecoder.New(log),
		fs,
		log,
	)

	if dir := filepath.Dir(settings.OutputPath); dir != "." {
		if err := fs.MkdirAll(dir); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	result, runErr := orch.Run(ctx, settings.ToOrchestratorConfig())

	var output summarizer.OutputInfo
	if runErr == nil {
		output = inspectOutput(result.OutputPath, log)
		log.Info("Output saved to %s", result.OutputPath)
	} else if result.FailedArtifact != "" {
		log.Warn("Intermediate file kept: %s", result.FailedArtifact)
	}

	if path := c.String("summary"); path != "" {
		summary := buildSummary(settings, result, output, runErr)
		if err := newSummaryWriter(fs).Write(path, summary); err != nil {
			log.Warn("Failed to write summary: %s", err)
		} else {
			log.Info("Summary saved to %s", path)
		}
	}

	return runErr
}

// progressReporter draws a bar on a terminal and logs progress otherwise.
func progressReporter(c *cli.Context, log ports.Logger) ports.ProgressReporter {
	if c.Bool("quiet") || c.Bool("no-progress") {
		return nil
	}
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return progress.NewBar()
	}
	return progress.NewLog(log)
}
