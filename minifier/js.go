package minifier

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/tdewolff/minify/v2/js"
)

const (
	EngineEsbuild  = "esbuild"
	EngineTdewolff = "tdewolff"
)

var ErrUnknownEngine = errors.New("unknown js minifier engine")

// JsOptions mirror the toggles of the uglify-style minify options.
type JsOptions struct {
	// Engine is either "esbuild" (default) or "tdewolff"
	Engine string `mapstructure:"engine"`

	// Mangle shortens local identifiers
	Mangle bool `mapstructure:"mangle"`

	// Compress rewrites syntax into shorter equivalents.
	// Ignored by the tdewolff engine, which always compresses.
	Compress bool `mapstructure:"compress"`

	// Target is an ECMAScript version such as "es2015" or "esnext".
	// Only used by esbuild.
	Target string `mapstructure:"target"`
}

var targets = map[string]api.Target{
	"":       api.ESNext,
	"esnext": api.ESNext,
	"es5":    api.ES5,
	"es2015": api.ES2015,
	"es2016": api.ES2016,
	"es2017": api.ES2017,
	"es2018": api.ES2018,
	"es2019": api.ES2019,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
}

// MinifyJs minifies a JavaScript program with the engine chosen in opts.
func MinifyJs(src []byte, opts JsOptions) ([]byte, error) {
	switch strings.ToLower(opts.Engine) {
	case "", EngineEsbuild:
		return minifyEsbuild(src, opts)

	case EngineTdewolff:
		return minifyTdewolff(src, opts)
	}

	return nil, fmt.Errorf("'%s': %w", opts.Engine, ErrUnknownEngine)
}

func minifyEsbuild(src []byte, opts JsOptions) ([]byte, error) {
	target, ok := targets[strings.ToLower(opts.Target)]
	if !ok {
		return nil, fmt.Errorf("unknown esbuild target '%s'", opts.Target)
	}

	result := api.Transform(string(src), api.TransformOptions{
		Loader:            api.LoaderJS,
		Target:            target,
		MinifyWhitespace:  true,
		MinifyIdentifiers: opts.Mangle,
		MinifySyntax:      opts.Compress,
	})

	if len(result.Errors) > 0 {
		errs := make([]error, len(result.Errors))
		for i, msg := range result.Errors {
			errs[i] = esbuildError(msg)
		}
		return nil, fmt.Errorf("failed to minify js: %w", errors.Join(errs...))
	}

	return result.Code, nil
}

func minifyTdewolff(src []byte, opts JsOptions) ([]byte, error) {
	minified := bytes.NewBuffer(nil)
	minifier := &js.Minifier{
		KeepVarNames: !opts.Mangle,
	}

	err := minifier.Minify(m, minified, bytes.NewBuffer(src), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to minify js: %w", err)
	}

	return minified.Bytes(), nil
}

func esbuildError(msg api.Message) error {
	if msg.Location == nil {
		return errors.New(msg.Text)
	}

	return fmt.Errorf("%d:%d: %s", msg.Location.Line, msg.Location.Column, msg.Text)
}
