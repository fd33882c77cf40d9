package tmpl

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/flosch/pongo2/v6"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/kyokomi/emoji/v2"

	"github.com/soyart/sitepipe/highlight"
)

const (
	FilterFormatSourceCode = "formatSourceCode"
	FilterMarkdown         = "markdown"
	FilterEmojify          = "emojify"

	MarkdownExtensions = parser.CommonExtensions | parser.AutoHeadingIDs
	HtmlFlags          = html.CommonFlags
)

// pipePrefix lets templates indent embedded code with a "|" margin
var pipePrefix = regexp.MustCompile(`^[ \t]*\|`)

var braceEntities = strings.NewReplacer(
	"&#123;", "{",
	"&#125;", "}",
)

func init() {
	mustRegister(FilterFormatSourceCode, filterFormatSourceCode)
	mustRegister(FilterMarkdown, filterMarkdown)
	mustRegister(FilterEmojify, filterEmojify)
}

func mustRegister(name string, fn pongo2.FilterFunction) {
	err := pongo2.RegisterFilter(name, fn)
	if err != nil {
		panic(fmt.Sprintf("failed to register filter '%s': %v", name, err))
	}
}

// PrepareSourceCode strips the "|" margin from every line of code,
// restores entity-escaped braces and trims trailing whitespace.
func PrepareSourceCode(code string) string {
	lines := strings.Split(code, "\n")
	for i := range lines {
		line := pipePrefix.ReplaceAllString(lines[i], "")
		lines[i] = braceEntities.Replace(line)
	}

	return strings.TrimRightFunc(strings.Join(lines, "\n"), unicode.IsSpace)
}

// FormatSourceCode prepares code and highlights it as lang.
func FormatSourceCode(code, lang string) (string, error) {
	return highlight.Highlight(PrepareSourceCode(code), lang)
}

// ToHtml converts md (Markdown) into HTML document
func ToHtml(md []byte) []byte {
	root := markdown.Parse(md, parser.NewWithExtensions(MarkdownExtensions))
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: HtmlFlags,
	})
	return markdown.Render(root, renderer)
}

func filterFormatSourceCode(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if !in.IsString() {
		return in, nil
	}

	out, err := FormatSourceCode(in.String(), param.String())
	if err != nil {
		return nil, &pongo2.Error{
			Sender:    "filter:" + FilterFormatSourceCode,
			OrigError: err,
		}
	}

	return pongo2.AsSafeValue(out), nil
}

func filterMarkdown(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsSafeValue(string(ToHtml([]byte(in.String())))), nil
}

func filterEmojify(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(emoji.Sprint(in.String())), nil
}
