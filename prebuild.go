package sitepipe

import (
	"fmt"
	"os"
)

// PreBuild prepares the build directory. With CleanBuildDir set,
// BuildDir is removed and recreated empty. Otherwise it does nothing.
func (p *Pipeline) PreBuild() error {
	p.report.Status(">> pre build")

	dir := p.options.BuildDir
	if !p.options.CleanBuildDir || dir == "" {
		return nil
	}

	err := p.fs.RemoveAll(dir)
	if err != nil && !os.IsNotExist(err) {
		p.report.Error("pre> cannot clean " + dir)
		return fmt.Errorf("failed to remove build dir '%s': %w", dir, err)
	}

	err = p.fs.MkdirAll(dir, permDir)
	p.report.SuccessOrError(err, "pre> clean "+dir)
	if err != nil {
		return fmt.Errorf("failed to create build dir '%s': %w", dir, err)
	}

	return nil
}
