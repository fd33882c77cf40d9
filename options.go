package sitepipe

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/afero"

	"github.com/soyart/sitepipe/minifier"
	"github.com/soyart/sitepipe/report"
	"github.com/soyart/sitepipe/scss"
)

const (
	ConcurrencyEnvKey     = "SITEPIPE_CONCURRENCY"
	ConcurrentDefault int = 20

	IgnoreFileDefault = ".buildignore"
)

type (
	// BuildOptions configures every stage of one build.
	// It is not modified once the build starts.
	BuildOptions struct {
		// BuildDir is removed and recreated by the pre-build stage
		// if CleanBuildDir is set. Otherwise stale outputs are kept.
		BuildDir      string `mapstructure:"buildDir"`
		CleanBuildDir bool   `mapstructure:"cleanBuildDir"`

		HtmlSourceDir       string `mapstructure:"htmlSourceDir"`
		HtmlTargetDir       string `mapstructure:"htmlTargetDir"`
		HtmlLayoutSourceDir string `mapstructure:"htmlLayoutSourceDir"`
		HtmlIsLocalhost     bool   `mapstructure:"htmlIsLocalhost"`
		HtmlMinify          bool   `mapstructure:"htmlMinify"`
		HtmlSitemapUrl      string `mapstructure:"htmlSitemapUrl"`
		HtmlIgnoreFile      string `mapstructure:"htmlIgnoreFile"` // relative to HtmlSourceDir

		JsFiles  []string           `mapstructure:"jsFiles"` // doublestar patterns allowed
		JsBundle string             `mapstructure:"jsBundle"`
		JsMinify minifier.JsOptions `mapstructure:"jsUglifyOptions"`

		CssScssInputFile  string             `mapstructure:"cssScssInputFile"`
		CssBundle         string             `mapstructure:"cssBundle"`
		CssIncludePaths   []string           `mapstructure:"cssIncludePaths"`
		CssReplaceInPlace []ReplaceDirective `mapstructure:"cssReplaceInPlace"`
	}

	// ReplaceDirective is a case-insensitive, global regex substitution
	// applied to File before the stylesheet is compiled.
	ReplaceDirective struct {
		Name        string `mapstructure:"name"`
		File        string `mapstructure:"file"`
		Match       string `mapstructure:"match"`
		ReplaceWith string `mapstructure:"replaceWith"`
	}

	// FontEntry copies FontSourceDir into FontTargetDir, like cp -Rf.
	FontEntry struct {
		Font          string `mapstructure:"font"`
		FontSourceDir string `mapstructure:"fontSourceDir"`
		FontTargetDir string `mapstructure:"fontTargetDir"`
	}

	Option func(*Pipeline)
)

func WithFs(fs afero.Fs) Option {
	return func(p *Pipeline) {
		p.fs = fs
	}
}

func WithReporter(r *report.Reporter) Option {
	return func(p *Pipeline) {
		p.report = r
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// WithCompiler replaces the default Dart Sass compiler.
func WithCompiler(c scss.Compiler) Option {
	return func(p *Pipeline) {
		p.compiler = c
	}
}

// WithDartSass sets the Dart Sass binary used when no compiler is given
// with [WithCompiler]. The process is stopped when the build returns.
func WithDartSass(binary string) Option {
	return func(p *Pipeline) {
		p.dartSass = binary
	}
}

// WithStages limits the build to stages. Skipped stages still hand
// control to the next one.
func WithStages(stages Stage) Option {
	return func(p *Pipeline) {
		p.stages = stages
	}
}

// Concurrent bounds the number of per-item goroutines within a stage.
func Concurrent(u uint) Option {
	return func(p *Pipeline) {
		p.concurrent = int(u)
	}
}

// ConcurrentFromEnv returns an option that sets the concurrency
// to whatever [GetEnvConcurrent] returns
func ConcurrentFromEnv() Option {
	return func(p *Pipeline) {
		p.concurrent = GetEnvConcurrent()
	}
}

// GetEnvConcurrent returns ENV value for concurrency,
// or default value if illegal or undefined
func GetEnvConcurrent() int {
	env := os.Getenv(ConcurrencyEnvKey)
	n, err := strconv.ParseUint(env, 10, 32)
	if err == nil && n != 0 {
		return int(n)
	}

	return ConcurrentDefault
}
