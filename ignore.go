package sitepipe

import (
	"fmt"
	"os"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/afero"
)

type Ignorer interface {
	Ignore(path string) bool
}

type ignorerGitignore struct {
	*ignore.GitIgnore
}

// ParseIgnore reads gitignore-style rules from path on fs.
// A missing file yields an Ignorer that ignores nothing.
func ParseIgnore(fs afero.Fs, path string) (Ignorer, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ignorerGitignore{}, nil
		}

		return nil, fmt.Errorf("failed to read ignore file at %s: %w", path, err)
	}

	lines := strings.Split(strings.ReplaceAll(string(b), "\r\n", "\n"), "\n")
	return &ignorerGitignore{GitIgnore: ignore.CompileIgnoreLines(lines...)}, nil
}

func (i *ignorerGitignore) Ignore(path string) bool {
	if i == nil {
		return false
	}
	if i.GitIgnore == nil {
		return false
	}
	return i.MatchesPath(path)
}
