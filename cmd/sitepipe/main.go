package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"

	"github.com/soyart/sitepipe"
)

type mainArg struct {
	Manifests   []string `arg:"positional" help:"Path to manifest (JSON, YAML or TOML)"`
	NoPreBuild  bool     `arg:"--no-prebuild" help:"Skip pre-build stage"`
	NoHtml      bool     `arg:"--no-html" help:"Skip HTML stage"`
	NoJs        bool     `arg:"--no-js" help:"Skip JavaScript stage"`
	NoCss       bool     `arg:"--no-css" help:"Skip stylesheet stage"`
	NoFonts     bool     `arg:"--no-fonts" help:"Skip fonts stage"`
	Clean       bool     `arg:"--clean" help:"Remove and recreate each target's build directory"`
	Concurrency uint     `arg:"--concurrency,env:SITEPIPE_CONCURRENCY" help:"Max concurrent jobs per stage"`
	DartSass    string   `arg:"--dart-sass,env:DART_SASS_BINARY" help:"Path to Dart Sass binary"`
	NoColor     bool     `arg:"--no-color" help:"Disable colored output (also NO_COLOR)"`
	Verbose     bool     `arg:"-v,--verbose" help:"Enable debug logs"`
}

func (mainArg) Description() string {
	return "sitepipe builds HTML, JavaScript, stylesheets and fonts of a static site"
}

func main() {
	// .env is optional, and must be loaded before flags read the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "failed to load .env:", err)
	}

	args := mainArg{}
	arg.MustParse(&args)

	if colorDisabled(args.NoColor, os.Getenv, isTerminal(os.Stdout)) {
		color.Disable()
	}

	logger := sitepipe.NewLogger(args.Verbose).With("build", uuid.NewString())
	slog.SetDefault(logger)

	if len(args.Manifests) == 0 {
		args.Manifests = []string{"./manifest.json"}
	}

	stages := sitepipe.StagesAll
	skips := map[sitepipe.Stage]bool{
		sitepipe.StagePreBuild: args.NoPreBuild,
		sitepipe.StageHtml:     args.NoHtml,
		sitepipe.StageJs:       args.NoJs,
		sitepipe.StageCss:      args.NoCss,
		sitepipe.StageFonts:    args.NoFonts,
	}
	for stage, skip := range skips {
		if skip {
			stages.Skip(stage)
		}
	}

	opts := []sitepipe.Option{
		sitepipe.WithDartSass(args.DartSass),
		sitepipe.ConcurrentFromEnv(),
	}
	if args.Concurrency != 0 {
		opts = append(opts, sitepipe.Concurrent(args.Concurrency))
	}

	for _, path := range args.Manifests {
		if err := build(path, stages, args.Clean, opts...); err != nil {
			logger.Error("build failed", "manifest", path, "error", err)
			os.Exit(1)
		}
	}
}

func build(path string, stages sitepipe.Stage, clean bool, opts ...sitepipe.Option) error {
	m, err := sitepipe.NewManifest(afero.NewOsFs(), path)
	if err != nil {
		return err
	}

	if clean {
		for key, target := range m {
			target.CleanBuildDir = true
			m[key] = target
		}
	}

	return sitepipe.Apply(m, stages, opts...)
}

// colorDisabled follows https://no-color.org: any non-empty NO_COLOR
// disables color, whatever its value.
func colorDisabled(noColor bool, getenv func(string) string, tty bool) bool {
	return noColor || getenv("NO_COLOR") != "" || !tty
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
