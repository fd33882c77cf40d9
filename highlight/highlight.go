// Package highlight turns source code into class-annotated HTML markup.
package highlight

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const StyleDefault = "github"

// The surrounding <pre> is left to the template, which usually wraps
// the filter output in its own <pre><code> block.
var formatter = chromahtml.New(
	chromahtml.WithClasses(true),
	chromahtml.PreventSurroundingPre(true),
)

// Highlight returns code highlighted as lang. Unknown languages are
// rendered with the plain-text fallback lexer.
func Highlight(code, lang string) (string, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(StyleDefault)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("failed to tokenise '%s' code: %w", lang, err)
	}

	buf := bytes.NewBuffer(nil)
	err = formatter.Format(buf, style, iterator)
	if err != nil {
		return "", fmt.Errorf("failed to format '%s' code: %w", lang, err)
	}

	return buf.String(), nil
}
