package sitepipe

import (
	"bytes"
	"fmt"

	"github.com/spf13/afero"

	"github.com/soyart/sitepipe/minifier"
)

// BuildJs concatenates JsFiles in order and writes the minified result
// to JsBundle. Read and minify errors are fatal. A failed write is not.
func (p *Pipeline) BuildJs() error {
	p.report.Status(">> build js")

	bundle := p.options.JsBundle
	if bundle == "" || len(p.options.JsFiles) == 0 {
		p.report.Status("js> nothing to bundle")
		return nil
	}

	files, err := ExpandGlobs(p.fs, p.options.JsFiles)
	if err != nil {
		p.report.Error("js> " + err.Error())
		return err
	}

	src := new(bytes.Buffer)
	for _, file := range files {
		b, err := afero.ReadFile(p.fs, file)
		if err != nil {
			p.report.Error("js> cannot read " + file)
			return fmt.Errorf("failed to read js file '%s': %w", file, err)
		}

		src.Write(b)
		src.WriteByte('\n')
	}

	p.logger.Debug("minifying js", "bundle", bundle, "files", files, "engine", p.options.JsMinify.Engine)

	out, err := minifier.MinifyJs(src.Bytes(), p.options.JsMinify)
	if err != nil {
		p.report.Error("js> minify failed")
		p.report.Detail(err.Error())
		return fmt.Errorf("failed to minify js bundle '%s': %w", bundle, err)
	}

	err = OutputFile(p.fs, bundle, out)
	p.report.SuccessOrError(err, "js> write "+bundle)

	return nil
}
