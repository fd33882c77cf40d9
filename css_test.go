package sitepipe

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyart/sitepipe/scss"
)

func TestReplaceInPlace(t *testing.T) {
	type testCase struct {
		name      string
		content   string
		directive ReplaceDirective
		expected  string
		output    string
		err       bool
	}

	tests := []testCase{
		{
			name:    "case-insensitive global replace",
			content: "$primary: RED;\n$accent: red;\n",
			directive: ReplaceDirective{
				Name:        "colors",
				Match:       "red",
				ReplaceWith: "blue",
			},
			expected: "$primary: blue;\n$accent: blue;\n",
			output:   "css> write colors",
		},
		{
			name:    "capture groups",
			content: `@import "vendor/grid-v1";`,
			directive: ReplaceDirective{
				Name:        "grid",
				Match:       `grid-v(\d)`,
				ReplaceWith: "grid-v${1}0",
			},
			expected: `@import "vendor/grid-v10";`,
			output:   "css> write grid",
		},
		{
			name:    "unbraced group followed by word characters",
			content: `@import "vendor/grid-v1";`,
			directive: ReplaceDirective{
				Name:        "grid-unbraced",
				Match:       `grid-v(\d)`,
				ReplaceWith: "grid-v$1abc",
			},
			expected: `@import "vendor/grid-v";`,
			output:   "css> write grid-unbraced",
		},
		{
			name:    "whole match is $0",
			content: "$primary: red;",
			directive: ReplaceDirective{
				Name:        "whole",
				Match:       "red",
				ReplaceWith: "dark$0",
			},
			expected: "$primary: darkred;",
			output:   "css> write whole",
		},
		{
			name:    "no match keeps file",
			content: "$primary: green;",
			directive: ReplaceDirective{
				Name:        "nomatch",
				Match:       "purple",
				ReplaceWith: "blue",
			},
			expected: "$primary: green;",
			output:   "css> no match found for nomatch",
		},
		{
			name:    "invalid pattern",
			content: "$primary: green;",
			directive: ReplaceDirective{
				Name:        "invalid",
				Match:       "(green",
				ReplaceWith: "blue",
			},
			expected: "$primary: green;",
			output:   "css> invalid pattern for invalid",
			err:      true,
		},
	}

	for i := range tests {
		tc := &tests[i]
		fs := afero.NewMemMapFs()
		writeFiles(t, fs, map[string]string{"/site/scss/_vars.scss": tc.content})

		p := newTestPipeline(t, fs, BuildOptions{}, nil)
		tc.directive.File = "/site/scss/_vars.scss"

		err := p.ReplaceInPlace(tc.directive)
		if tc.err {
			assert.Error(t, err, tc.name)
		} else {
			assert.NoError(t, err, tc.name)
		}

		assert.Equal(t, tc.expected, readFile(t, fs, "/site/scss/_vars.scss"), tc.name)
		assert.Contains(t, p.out.String(), tc.output, tc.name)
	}
}

func TestReplaceInPlaceMissingFile(t *testing.T) {
	p := newTestPipeline(t, afero.NewMemMapFs(), BuildOptions{}, nil)

	err := p.ReplaceInPlace(ReplaceDirective{
		Name:  "missing",
		File:  "/site/scss/missing.scss",
		Match: "red",
	})
	assert.Error(t, err)
	assert.Contains(t, p.out.String(), "css> error reading file /site/scss/missing.scss")
}

func TestBuildCss(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/site/scss/main.scss":  `@import "vars"; body { color: $primary; }`,
		"/site/scss/_vars.scss": "$primary: RED;",
	})

	p := newTestPipeline(t, fs, BuildOptions{
		CssScssInputFile: "/site/scss/main.scss",
		CssBundle:        "/site/build/css/site.css",
		CssReplaceInPlace: []ReplaceDirective{
			{Name: "primary", File: "/site/scss/_vars.scss", Match: "red", ReplaceWith: "blue"},
			{Name: "absent", File: "/site/scss/absent.scss", Match: "red", ReplaceWith: "blue"},
		},
	}, nil)

	require.NoError(t, p.BuildCss())

	assert.Equal(t, "$primary: blue;", readFile(t, fs, "/site/scss/_vars.scss"))
	assert.Equal(t, "body{color:red}", readFile(t, fs, "/site/build/css/site.css"))
	assertNotExists(t, fs, "/site/build/css/site.css.tmp")

	out := p.out.String()
	assert.Contains(t, out, "css> scss conversion succeeded")
	assert.Contains(t, out, "css> write /site/build/css/site.css")
	assert.Contains(t, out, "pre> in-place replace processing error")
	assert.Equal(t, int64(1), p.Summary().Replacements)
	assert.Equal(t, int32(1), p.compiler.calls.Load())
}

func TestBuildCssCompileFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/site/scss/main.scss":      `body { color: red }}`,
		"/site/build/css/site.css":  "previous",
		"/site/fonts/roboto/r.woff": "font",
	})

	p := newTestPipeline(t, fs, BuildOptions{
		CssScssInputFile: "/site/scss/main.scss",
		CssBundle:        "/site/build/css/site.css",
	}, []FontEntry{
		{Font: "Roboto", FontSourceDir: "/site/fonts/roboto", FontTargetDir: "/site/build/fonts"},
	}, WithStages(StageCss|StageFonts))

	p.compiler.err = &scss.CompileError{
		File: "/site/scss/main.scss",
		Err:  errors.New(`unmatched "}".`),
	}

	_, err := p.Build()
	require.NoError(t, err)

	assert.Equal(t, "previous", readFile(t, fs, "/site/build/css/site.css"))
	assert.Equal(t, "font", readFile(t, fs, "/site/build/fonts/roboto/r.woff"))

	out := p.out.String()
	assert.Contains(t, out, "css> scss conversion failed")
	assert.Contains(t, out, `Error: unmatched "}".`)
	assert.Contains(t, out, "on file /site/scss/main.scss")
	assert.Contains(t, out, "<< buildCss done")
	assert.Contains(t, out, "<< buildFonts done")
}

func TestBuildCssMissingInput(t *testing.T) {
	p := newTestPipeline(t, afero.NewMemMapFs(), BuildOptions{
		CssScssInputFile: "/site/scss/missing.scss",
		CssBundle:        "/site/build/site.css",
	}, nil)

	require.NoError(t, p.BuildCss())
	assert.Contains(t, p.out.String(), "css> scss conversion failed")
	assert.Equal(t, int32(0), p.compiler.calls.Load())
}
