// Package tmpl renders page templates with pongo2.
//
// Templates use Jinja/nunjucks syntax. Layouts and includes are resolved
// against a single layout directory on an afero filesystem, and are re-read
// from disk on every render.
package tmpl

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/flosch/pongo2/v6"
	"github.com/spf13/afero"
)

const GlobalStringHelper = "csStringHelper"

// Environment is a template set bound to one layout directory.
type Environment struct {
	set *pongo2.TemplateSet
}

// NewEnvironment returns an Environment that resolves {% extends %}
// and {% include %} names under layoutDir on fs. Template caching is off.
func NewEnvironment(fs afero.Fs, layoutDir string) *Environment {
	loader := &loaderAfero{fs: fs, baseDir: layoutDir}
	set := pongo2.NewSet("layouts:"+layoutDir, loader)

	// Debug mode bypasses the template cache
	set.Debug = true

	e := &Environment{set: set}
	e.AddGlobal(GlobalStringHelper, StringHelper{})

	return e
}

// AddGlobal makes v available by name in every template rendered by e.
func (e *Environment) AddGlobal(name string, v any) {
	e.set.Globals[name] = v
}

// RenderString renders template text src with ctx.
func (e *Environment) RenderString(src string, ctx pongo2.Context) (string, error) {
	tpl, err := e.set.FromString(src)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return out, nil
}

// loaderAfero implements pongo2.TemplateLoader on top of afero.
// Relative names always resolve against baseDir, never against
// the directory of the including template.
type loaderAfero struct {
	fs      afero.Fs
	baseDir string
}

func (l *loaderAfero) Abs(_, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}

	return filepath.Join(l.baseDir, name)
}

func (l *loaderAfero) Get(path string) (io.Reader, error) {
	b, err := afero.ReadFile(l.fs, l.Abs("", path))
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(b), nil
}
