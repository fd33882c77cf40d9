package sitepipe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/soyart/sitepipe/minifier"
	"github.com/soyart/sitepipe/tmpl"
)

// BuildHtml renders every .html file under HtmlSourceDir into HtmlTargetDir,
// mirroring the directory layout. A page that fails to render is reported
// and skipped. Only an unreadable source root fails the stage.
func (p *Pipeline) BuildHtml() error {
	p.report.Status(">> build html")

	src := p.options.HtmlSourceDir
	if src == "" {
		p.report.Status("html> no source directory configured")
		return nil
	}

	ignorer, err := ParseIgnore(p.fs, filepath.Join(src, p.options.HtmlIgnoreFile))
	if err != nil {
		return err
	}

	p.ignorer = ignorer
	p.pages.reset()

	var files []string
	err = afero.Walk(p.fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == src {
				return err
			}

			p.report.Error(fmt.Sprintf("html> cannot read %s: %v", path, err))
			return nil
		}
		if info.IsDir() {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk html source '%s': %w", src, err)
	}

	_ = p.forEach(len(files), func(i int) error {
		p.BuildSingleHtmlPage(files[i])
		return nil
	})

	if p.options.HtmlSitemapUrl != "" {
		p.writeSitemap()
	}

	return nil
}

// BuildSingleHtmlPage renders one page. Files without the .html extension
// and files matched by the ignore rules are skipped silently.
func (p *Pipeline) BuildSingleHtmlPage(path string) {
	if !strings.HasSuffix(path, ".html") {
		return
	}

	url, rel := ActivePageUrl(p.options.HtmlSourceDir, path)
	if p.ignorer != nil && p.ignorer.Ignore(rel) {
		p.stats.pagesIgnored.Inc()
		p.logger.Debug("ignoring page", "path", path)
		return
	}

	target := filepath.Join(p.options.HtmlTargetDir, filepath.FromSlash(rel))
	logger := p.logger.With("stage", StageHtml.String(), "path", path, "target", target)

	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		p.failPage(fmt.Sprintf("html> read %s failed: %v", rel, err))
		logger.Error("failed to read page", "error", err)
		return
	}

	ctx := PageContext{
		HtmlSourceDir:   p.options.HtmlSourceDir,
		LayoutSourceDir: p.options.HtmlLayoutSourceDir,
		IsLocalhost:     p.options.HtmlIsLocalhost,
		ActivePageUrl:   url,
	}

	env := tmpl.NewEnvironment(p.fs, p.options.HtmlLayoutSourceDir)
	html, err := env.RenderString(string(data), ctx.Context())
	if err != nil {
		p.failPage(fmt.Sprintf("html> render %s failed: %v", rel, err))
		logger.Error("failed to render page", "error", err)
		return
	}

	out := []byte(html)
	if p.options.HtmlMinify {
		out, err = minifier.MinifyHtml(out)
		if err != nil {
			p.failPage(fmt.Sprintf("html> minify %s failed: %v", rel, err))
			logger.Error("failed to minify page", "error", err)
			return
		}
	}

	err = OutputFile(p.fs, target, out)
	p.report.SuccessOrError(err, "html> write "+target)
	if err != nil {
		p.stats.pagesFailed.Inc()
		return
	}

	p.stats.pagesWritten.Inc()
	p.pages.add(url)
}

func (p *Pipeline) failPage(msg string) {
	p.stats.pagesFailed.Inc()
	p.report.Error(msg)
}
