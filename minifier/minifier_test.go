package minifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinifyCss(t *testing.T) {
	out, err := MinifyCss([]byte("a {\n  color : red ;\n}\n"))
	require.NoError(t, err)
	assert.Equal(t, "a{color:red}", string(out))
}

func TestMinifyHtml(t *testing.T) {
	doc := "<!DOCTYPE html>\n<html>\n  <body>\n    <p>  hello   world </p>\n  </body>\n</html>\n"
	out, err := MinifyHtml([]byte(doc))
	require.NoError(t, err)

	assert.Less(t, len(out), len(doc))
	assert.Contains(t, string(out), "hello world")
	assert.Contains(t, string(out), "<html>")
}

func TestMinifyJs(t *testing.T) {
	src := []byte(`
function addNumbers(firstNumber, secondNumber) {
    // sum them up
    return firstNumber + secondNumber;
}
window.addNumbers = addNumbers;
`)

	type testCase struct {
		opts        JsOptions
		keepsLocals bool
	}

	tests := []testCase{
		{opts: JsOptions{Engine: EngineEsbuild, Mangle: true, Compress: true}, keepsLocals: false},
		{opts: JsOptions{Engine: EngineEsbuild, Mangle: false, Compress: true}, keepsLocals: true},
		{opts: JsOptions{Mangle: false}, keepsLocals: true},
		{opts: JsOptions{Engine: EngineTdewolff, Mangle: false}, keepsLocals: true},
	}

	for i := range tests {
		tc := &tests[i]
		out, err := MinifyJs(src, tc.opts)
		require.NoError(t, err, "case %d", i+1)

		s := string(out)
		assert.Less(t, len(s), len(src), "case %d", i+1)
		assert.NotContains(t, s, "sum them up", "case %d", i+1)
		assert.Contains(t, s, "addNumbers", "case %d", i+1)
		assert.Equal(t, tc.keepsLocals, strings.Contains(s, "firstNumber"), "case %d", i+1)
	}
}

func TestMinifyJsErrors(t *testing.T) {
	_, err := MinifyJs([]byte("function ( {"), JsOptions{})
	assert.Error(t, err)

	_, err = MinifyJs([]byte("var a = 1;"), JsOptions{Engine: "uglify"})
	assert.ErrorIs(t, err, ErrUnknownEngine)

	_, err = MinifyJs([]byte("var a = 1;"), JsOptions{Target: "es1999"})
	assert.Error(t, err)
}
