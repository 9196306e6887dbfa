package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/richinsley/goshaderlive/glfwcontext"
	"github.com/richinsley/goshaderlive/options"
	"github.com/richinsley/goshaderlive/renderer"
	"github.com/urfave/cli"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func run(opts options.Options) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           opts.Level(),
	})
	log.SetDefault(logger)

	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize graphics: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	r, err := renderer.New(opts, logger)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer r.Shutdown()

	if opts.Recording() {
		return r.Record()
	}
	logger.Info("starting interactive render loop", "shader", opts.FragmentPath)
	r.Run()
	return nil
}

func envVar(name string) string {
	return "GOSHADERLIVE_" + name
}

func newApp(run func(options.Options) error) *cli.App {
	defaults := options.Defaults()

	app := cli.NewApp()
	app.Name = "goshaderlive"
	app.Usage = "render a fragment shader on a full-screen quad and reload it when it changes"
	app.ArgsUsage = "<fragment.glsl>"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.IntFlag{Name: "width", Value: defaults.Width, Usage: "window width", EnvVar: envVar("WIDTH")},
		cli.IntFlag{Name: "height", Value: defaults.Height, Usage: "window height", EnvVar: envVar("HEIGHT")},
		cli.StringFlag{Name: "vertex", Usage: "vertex shader file (default: built-in full-screen quad)", EnvVar: envVar("VERTEX")},
		cli.StringFlag{Name: "header", Usage: "file prepended to the fragment source (default: built-in shadertoy header)", EnvVar: envVar("HEADER")},
		cli.StringFlag{Name: "footer", Usage: "file appended to the fragment source (default: built-in mainImage call)", EnvVar: envVar("FOOTER")},
		cli.StringFlag{Name: "version-line", Usage: "#version line placed before the header", EnvVar: envVar("VERSION_LINE")},
		cli.StringFlag{Name: "attribute", Value: defaults.Attribute, Usage: "vertex shader input the full-screen quad is bound to", EnvVar: envVar("ATTRIBUTE")},
		cli.BoolFlag{Name: "raw", Usage: "the fragment file is a complete shader; skip header and footer", EnvVar: envVar("RAW")},
		cli.BoolFlag{Name: "translate", Usage: "translate WebGL2 sources before compiling", EnvVar: envVar("TRANSLATE")},
		cli.BoolFlag{Name: "no-watch", Usage: "do not reload when source files change", EnvVar: envVar("NO_WATCH")},
		cli.DurationFlag{Name: "debounce", Value: defaults.Debounce, Usage: "wait this long after the last change before reloading", EnvVar: envVar("DEBOUNCE")},
		cli.StringFlag{Name: "texture", Usage: "image bound to the diffTexture sampler", EnvVar: envVar("TEXTURE")},
		cli.StringFlag{Name: "output, o", Usage: "record to this file instead of opening a window", EnvVar: envVar("OUTPUT")},
		cli.Float64Flag{Name: "duration", Value: defaults.Duration, Usage: "recording length in seconds", EnvVar: envVar("DURATION")},
		cli.IntFlag{Name: "fps", Value: defaults.FPS, Usage: "recording frame rate", EnvVar: envVar("FPS")},
		cli.StringFlag{Name: "ffmpeg", Usage: "path to the ffmpeg binary", EnvVar: envVar("FFMPEG")},
		cli.StringFlag{Name: "log-level", Value: defaults.LogLevel, Usage: "debug, info, warn or error", EnvVar: envVar("LOG_LEVEL")},
	}
	app.Action = func(ctx *cli.Context) error {
		opts := defaults
		opts.FragmentPath = ctx.Args().First()
		opts.VertexPath = ctx.String("vertex")
		opts.HeaderPath = ctx.String("header")
		opts.FooterPath = ctx.String("footer")
		opts.VersionLine = ctx.String("version-line")
		opts.Attribute = ctx.String("attribute")
		opts.Raw = ctx.Bool("raw")
		opts.Translate = ctx.Bool("translate")
		opts.Width = ctx.Int("width")
		opts.Height = ctx.Int("height")
		opts.Watch = !ctx.Bool("no-watch")
		opts.Debounce = ctx.Duration("debounce")
		opts.Texture = ctx.String("texture")
		opts.Output = ctx.String("output")
		opts.Duration = ctx.Float64("duration")
		opts.FPS = ctx.Int("fps")
		opts.FFMPEGPath = ctx.String("ffmpeg")
		opts.LogLevel = ctx.String("log-level")

		if ctx.NArg() > 1 {
			return fmt.Errorf("expected one shader file, got %d", ctx.NArg())
		}
		if err := opts.Validate(); err != nil {
			return err
		}
		return run(opts)
	}
	return app
}

func main() {
	if err := newApp(run).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "goshaderlive: %v\n", err)
		os.Exit(1)
	}
}
