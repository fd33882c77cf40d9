// Package scss compiles SCSS stylesheets into CSS.
//
// The default implementation drives a Dart Sass binary over the embedded
// protocol. Callers depend on the Compiler interface only.
package scss

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bep/godartsass/v2"
)

const (
	EnvDartSass     = "DART_SASS_BINARY"
	DartSassDefault = "sass"
)

// Compiler compiles the SCSS source of file into CSS text.
// Failures to compile the stylesheet are reported as *CompileError.
type Compiler interface {
	Compile(file string, source []byte) (string, error)
}

// CompileError is a stylesheet compile failure.
type CompileError struct {
	File string
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("scss compile error in %s: %v", e.File, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Formatted returns a multi-line human-readable diagnostic.
func (e *CompileError) Formatted() string {
	b := new(strings.Builder)
	b.WriteString("Error: ")
	b.WriteString(strings.TrimSpace(e.Err.Error()))
	b.WriteString("\n  on file ")
	b.WriteString(e.File)
	return b.String()
}

// DartSass is a Compiler backed by a lazily started Dart Sass process.
// Call Close after the build to stop the process.
type DartSass struct {
	Binary       string
	IncludePaths []string

	once       sync.Once
	transpiler *godartsass.Transpiler
	errStart   error
}

// NewDartSass returns a DartSass compiler using binary, falling back to
// $DART_SASS_BINARY and then "sass" on $PATH.
func NewDartSass(binary string, includePaths ...string) *DartSass {
	if binary == "" {
		binary = os.Getenv(EnvDartSass)
	}
	if binary == "" {
		binary = DartSassDefault
	}

	return &DartSass{
		Binary:       binary,
		IncludePaths: includePaths,
	}
}

func (d *DartSass) start() error {
	d.once.Do(func() {
		d.transpiler, d.errStart = godartsass.Start(godartsass.Options{
			DartSassEmbeddedFilename: d.Binary,
		})
	})

	if d.errStart != nil {
		return fmt.Errorf("failed to start dart-sass '%s': %w", d.Binary, d.errStart)
	}

	return nil
}

func (d *DartSass) Compile(file string, source []byte) (string, error) {
	if err := d.start(); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(file)
	if err != nil {
		return "", err
	}

	includes := append([]string{filepath.Dir(abs)}, d.IncludePaths...)
	result, err := d.transpiler.Execute(godartsass.Args{
		Source:       string(source),
		URL:          "file://" + filepath.ToSlash(abs),
		SourceSyntax: godartsass.SourceSyntaxSCSS,
		OutputStyle:  godartsass.OutputStyleExpanded,
		IncludePaths: includes,
	})
	if err != nil {
		return "", &CompileError{File: file, Err: err}
	}

	return result.CSS, nil
}

func (d *DartSass) Close() error {
	if d.transpiler == nil {
		return nil
	}

	return d.transpiler.Close()
}
