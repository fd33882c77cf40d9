package sitepipe

import (
	"fmt"

	"github.com/spf13/afero"
)

// BuildFonts copies each font's source into its target directory,
// creating the directory first. Failures are reported per font and
// never fail the stage.
func (p *Pipeline) BuildFonts(fonts []FontEntry) error {
	p.report.Status(">> build fonts")

	err := p.forEach(len(fonts), func(i int) error {
		font := fonts[i]
		if err := p.copyFont(font); err != nil {
			p.report.Error(fmt.Sprintf("fonts> %s copy failed: %v", font.Font, err))
			return fmt.Errorf("font '%s': %w", font.Font, err)
		}

		p.stats.fontsCopied.Inc()
		p.report.Success("fonts> " + font.Font + " copied")
		return nil
	})
	p.report.IfError(err, "fonts> error processing fonts")

	return nil
}

func (p *Pipeline) copyFont(font FontEntry) error {
	ok, err := afero.DirExists(p.fs, font.FontTargetDir)
	if err != nil {
		return err
	}

	if !ok {
		if err := p.fs.MkdirAll(font.FontTargetDir, permDir); err != nil {
			return fmt.Errorf("failed to create target dir '%s': %w", font.FontTargetDir, err)
		}
	}

	return CopyInto(p.fs, font.FontSourceDir, font.FontTargetDir)
}
