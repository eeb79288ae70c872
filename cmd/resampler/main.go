// Package main provides the CLI entry point for the resampler.
package main

import (
	"fmt"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"
)

const (
	toolName = "HFR-Resampler"
	version  = "v0.5"
)

func newApp() *cli.App {
	// Flag categories
	var (
		catInput    = l10n.T("Input and Output")
		catBlend    = l10n.T("Resampling")
		catEncoder  = l10n.T("Encoding")
		catBehavior = l10n.T("Behavior")
		catLogging  = l10n.T("Logging")
	)

	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintf(c.App.Writer, "%s %s\n", toolName, c.App.Version)
	}

	return &cli.App{
		Name:            "resampler",
		Usage:           l10n.T("Blend high frame rate video down to a lower frame rate"),
		UsageText:       "resampler -i INPUT -o OUTPUT [options]\nresampler VIDEO",
		Version:         version,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Category: catInput, Usage: l10n.T("Input video file")},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Category: catInput, Usage: l10n.T("Output video file")},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Category: catInput, Usage: l10n.T("Settings file (JSON or YAML, default: settings.json)")},
			&cli.StringFlag{Name: "summary", Category: catInput, Usage: l10n.T("Output execution summary to file (Markdown format)")},

			&cli.IntFlag{Name: "fps", Category: catBlend, Usage: l10n.T("Output frame rate")},
			&cli.StringFlag{Name: "blend-mode", Aliases: []string{"m"}, Category: catBlend, Usage: l10n.T("Blend mode (EQUAL, GAUSSIAN, GAUSSIAN_SYM, PYRAMID_SYM, ASCENDING, DESCENDING)")},
			&cli.Float64Flag{Name: "blend-range", Aliases: []string{"r"}, Category: catBlend, Usage: l10n.T("Blend range, 1.0 to 2.0 recommended")},
			&cli.StringFlag{Name: "resolution", Aliases: []string{"res"}, Category: catBlend, Usage: l10n.T("Output resolution (e.g. 1920x1080 or UNCHANGED)")},
			&cli.StringFlag{Name: "scale-kernel", Category: catBlend, Usage: l10n.T("Resize interpolation (nearest, bilinear, catmullrom)")},
			&cli.BoolFlag{Name: "cvfix", Category: catBlend, Usage: l10n.T("Fix the colour matrix of the input before resampling")},

			&cli.StringFlag{Name: "fourcc", Category: catEncoder, Usage: l10n.T("Codec tag of the built-in frame writer")},
			&cli.IntFlag{Name: "mjpeg-quality", Category: catEncoder, Usage: l10n.T("JPEG quality of the built-in frame writer (1-100)")},
			&cli.StringFlag{Name: "encoder", Category: catEncoder, Usage: l10n.T("ffmpeg encoder (libx264, libx265, h264_nvenc, hevc_nvenc, h264_qsv, hevc_qsv, h264_amf)")},
			&cli.StringFlag{Name: "preset", Category: catEncoder, Usage: l10n.T("Encoder preset")},
			&cli.IntFlag{Name: "crf", Category: catEncoder, Usage: l10n.T("Encoder quality (lower is better)")},
			&cli.StringFlag{Name: "ffmpeg-path", Category: catEncoder, Usage: l10n.T("Path to the ffmpeg executable")},

			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Category: catBehavior, Usage: l10n.T("Continue without asking when the frame rates are not divisible")},
			&cli.BoolFlag{Name: "no-progress", Category: catBehavior, Usage: l10n.T("Do not show the progress bar")},

			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Category: catLogging, Usage: l10n.T("Log level (debug, info, warn, error)")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Category: catLogging, Usage: l10n.T("Suppress all log output")},
		},
		Action: runResample,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %s", err))
		os.Exit(1)
	}
}
