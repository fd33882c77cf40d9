// Package sitepipe builds the static assets of a website: HTML pages
// rendered from templates, a minified JavaScript bundle, a stylesheet
// compiled from SCSS, and font files.
package sitepipe

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/soyart/sitepipe/report"
	"github.com/soyart/sitepipe/scss"
)

// Pipeline runs the build stages in order: pre-build, HTML, JS, CSS
// and fonts. Each stage starts only after the previous one has finished.
type Pipeline struct {
	options BuildOptions
	fonts   []FontEntry

	fs           afero.Fs
	report       *report.Reporter
	logger       *slog.Logger
	compiler     scss.Compiler
	ownsCompiler bool
	dartSass     string
	stages       Stage
	concurrent   int

	ignorer Ignorer
	pages   pages
	stats   stats
}

// Summary counts what a build did.
type Summary struct {
	PagesWritten int64
	PagesFailed  int64
	PagesIgnored int64
	Replacements int64
	FontsCopied  int64
}

type stats struct {
	pagesWritten atomic.Int64
	pagesFailed  atomic.Int64
	pagesIgnored atomic.Int64
	replacements atomic.Int64
	fontsCopied  atomic.Int64
}

func (s *stats) reset() {
	s.pagesWritten.Store(0)
	s.pagesFailed.Store(0)
	s.pagesIgnored.Store(0)
	s.replacements.Store(0)
	s.fontsCopied.Store(0)
}

// pages collects the URLs of written pages for the sitemap
type pages struct {
	mut  sync.Mutex
	urls []string
}

type step struct {
	stage Stage
	fn    func() error
}

func New(opts BuildOptions, fonts []FontEntry, options ...Option) *Pipeline {
	p := &Pipeline{
		options: resolveDirs(opts),
		fonts:   fonts,
		stages:  StagesAll,
	}

	for _, opt := range options {
		opt(p)
	}

	if p.fs == nil {
		p.fs = afero.NewOsFs()
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.report == nil {
		p.report = report.New(os.Stdout, p.logger)
	}
	if p.compiler == nil {
		p.compiler = scss.NewDartSass(p.dartSass, p.options.CssIncludePaths...)
		p.ownsCompiler = true
	}
	if p.concurrent <= 0 {
		p.concurrent = ConcurrentDefault
	}
	if p.options.HtmlIgnoreFile == "" {
		p.options.HtmlIgnoreFile = IgnoreFileDefault
	}

	return p
}

// Build runs all enabled stages. The returned error is the fatal error,
// if any, that stopped the pipeline. Later stages do not run after it.
// The summary only counts this build.
func (p *Pipeline) Build() (Summary, error) {
	p.stats.reset()

	if p.ownsCompiler {
		if c, ok := p.compiler.(io.Closer); ok {
			defer c.Close()
		}
	}

	err := p.run([]step{
		{stage: StagePreBuild, fn: p.PreBuild},
		{stage: StageHtml, fn: p.BuildHtml},
		{stage: StageJs, fn: p.BuildJs},
		{stage: StageCss, fn: p.BuildCss},
		{stage: StageFonts, fn: func() error { return p.BuildFonts(p.fonts) }},
	})

	return p.Summary(), err
}

func (p *Pipeline) Summary() Summary {
	return Summary{
		PagesWritten: p.stats.pagesWritten.Load(),
		PagesFailed:  p.stats.pagesFailed.Load(),
		PagesIgnored: p.stats.pagesIgnored.Load(),
		Replacements: p.stats.replacements.Load(),
		FontsCopied:  p.stats.fontsCopied.Load(),
	}
}

// run executes steps[0] and hands the rest of the chain to the reporter,
// which continues it exactly once.
func (p *Pipeline) run(steps []step) error {
	if len(steps) == 0 {
		return nil
	}

	current := steps[0]
	next := func() error {
		return p.run(steps[1:])
	}

	if !p.stages.Ok(current.stage) {
		p.logger.Info("skipping stage", "stage", current.stage.String())
		return next()
	}

	if err := current.fn(); err != nil {
		p.logger.Error("stage failed", "stage", current.stage.String(), "error", err)
		return stageError{err: err, stage: current.stage}
	}

	return p.report.Proceed(current.stage.String(), next)
}

// forEach calls fn for 0..n-1 with at most p.concurrent calls in flight.
// All calls complete, and their errors are joined.
func (p *Pipeline) forEach(n int, fn func(i int) error) error {
	var (
		mut  sync.Mutex
		errs []error
	)

	g := new(errgroup.Group)
	g.SetLimit(p.concurrent)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := fn(i); err != nil {
				mut.Lock()
				errs = append(errs, err)
				mut.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return errors.Join(errs...)
}

func (p *pages) reset() {
	p.mut.Lock()
	defer p.mut.Unlock()

	p.urls = nil
}

func (p *pages) add(url string) {
	p.mut.Lock()
	defer p.mut.Unlock()

	p.urls = append(p.urls, url)
}

func resolveDirs(opts BuildOptions) BuildOptions {
	for _, dir := range []*string{
		&opts.HtmlSourceDir,
		&opts.HtmlTargetDir,
		&opts.HtmlLayoutSourceDir,
	} {
		if *dir == "" {
			continue
		}

		abs, err := filepath.Abs(*dir)
		if err != nil {
			continue
		}

		*dir = abs
	}

	return opts
}
