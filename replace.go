package sitepipe

import (
	"fmt"
	"regexp"

	"github.com/spf13/afero"
)

// ReplaceInPlace rewrites d.File, replacing every case-insensitive match
// of d.Match with d.ReplaceWith. ReplaceWith may refer to capture groups
// as $1 or ${name}. A reference takes the longest run of letters, digits
// and underscores, so $1abc means the group named 1abc and expands empty.
// Write ${1}abc instead. $& is not supported; use $0 for the whole match.
// A file without matches is left untouched.
func (p *Pipeline) ReplaceInPlace(d ReplaceDirective) error {
	stat, err := p.fs.Stat(d.File)
	if err != nil {
		p.report.Error("css> error reading file " + d.File)
		return fmt.Errorf("directive '%s': %w", d.Name, err)
	}

	data, err := afero.ReadFile(p.fs, d.File)
	if err != nil {
		p.report.Error("css> error reading file " + d.File)
		return fmt.Errorf("directive '%s': %w", d.Name, err)
	}

	re, err := regexp.Compile("(?i)" + d.Match)
	if err != nil {
		p.report.Error(fmt.Sprintf("css> invalid pattern for %s: %v", d.Name, err))
		return fmt.Errorf("directive '%s': bad pattern: %w", d.Name, err)
	}

	if !re.Match(data) {
		p.report.Success("css> no match found for " + d.Name)
		return nil
	}

	replaced := re.ReplaceAll(data, []byte(d.ReplaceWith))
	err = afero.WriteFile(p.fs, d.File, replaced, stat.Mode().Perm())
	p.report.SuccessOrError(err, "css> write "+d.Name)
	if err != nil {
		return fmt.Errorf("directive '%s': %w", d.Name, writeError{err: err, target: d.File})
	}

	p.stats.replacements.Inc()
	return nil
}
