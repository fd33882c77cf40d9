package sitepipe

import (
	"errors"

	"github.com/spf13/afero"

	"github.com/soyart/sitepipe/minifier"
	"github.com/soyart/sitepipe/scss"
)

// BuildCss applies every CssReplaceInPlace directive, then compiles
// CssScssInputFile and writes the minified stylesheet to CssBundle.
// Nothing in this stage is fatal. A failed compile leaves CssBundle as it was.
func (p *Pipeline) BuildCss() error {
	p.report.Status(">> build scss")

	directives := p.options.CssReplaceInPlace
	err := p.forEach(len(directives), func(i int) error {
		return p.ReplaceInPlace(directives[i])
	})
	p.report.IfError(err, "pre> in-place replace processing error")

	input, bundle := p.options.CssScssInputFile, p.options.CssBundle
	if input == "" || bundle == "" {
		p.report.Status("css> no stylesheet configured")
		return nil
	}

	source, err := afero.ReadFile(p.fs, input)
	if err != nil {
		p.report.Error("css> scss conversion failed")
		p.report.Detail(err.Error())
		return nil
	}

	css, err := p.compiler.Compile(input, source)
	if err != nil {
		p.report.Error("css> scss conversion failed")

		var compileErr *scss.CompileError
		if errors.As(err, &compileErr) {
			p.report.Detail(compileErr.Formatted())
		} else {
			p.report.Detail(err.Error())
		}

		return nil
	}

	p.report.Success("css> scss conversion succeeded")

	out, err := minifier.MinifyCss([]byte(css))
	if err != nil {
		p.report.Error("css> minify failed")
		p.report.Detail(err.Error())
		return nil
	}

	err = WriteFileAtomic(p.fs, bundle, out)
	p.report.SuccessOrError(err, "css> write "+bundle)

	return nil
}
