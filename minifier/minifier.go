package minifier

import (
	"bytes"
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
)

const (
	mediaTypeHtml = "text/html"
	mediaTypeCss  = "text/css"
	mediaTypeJs   = "application/javascript"
)

var m = minify.New()

func init() {
	m.Add(mediaTypeHtml, &html.Minifier{
		KeepDocumentTags:        true,
		KeepConditionalComments: true,
		KeepEndTags:             true,
		KeepDefaultAttrVals:     true,
		KeepWhitespace:          false,
	})
	m.Add(mediaTypeCss, &css.Minifier{
		KeepCSS2: true,
	})
}

func MinifyHtml(htmlDoc []byte) ([]byte, error) {
	minified := bytes.NewBuffer(nil)
	err := m.Minify(mediaTypeHtml, minified, bytes.NewBuffer(htmlDoc))
	if err != nil {
		return nil, fmt.Errorf("failed to minify html: %w", err)
	}

	return minified.Bytes(), nil
}

func MinifyCss(cssDoc []byte) ([]byte, error) {
	minified := bytes.NewBuffer(nil)
	err := m.Minify(mediaTypeCss, minified, bytes.NewBuffer(cssDoc))
	if err != nil {
		return nil, fmt.Errorf("failed to minify css: %w", err)
	}

	return minified.Bytes(), nil
}
