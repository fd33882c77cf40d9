package sitepipe

import (
	"regexp"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// PageContext is the data every page template is rendered with.
type PageContext struct {
	HtmlSourceDir   string
	LayoutSourceDir string
	IsLocalhost     bool
	ActivePageUrl   string
}

// ActivePageUrl computes the site URL of the page at path, and path
// relative to sourceRoot. Backslashes become forward slashes, and
// everything up to the last case-insensitive occurrence of sourceRoot
// is dropped. A trailing index.html segment is removed from the URL.
// Only a whole segment counts, so a name like myindex.html is kept:
//
//	ActivePageUrl("/site/src", "/site/src/blog/index.html") // "/blog/", "blog/index.html"
//	ActivePageUrl("/site/src", "/site/src/about.html")      // "/about.html", "about.html"
//	ActivePageUrl("/site/src", "/site/src/myindex.html")    // "/myindex.html", "myindex.html"
func ActivePageUrl(sourceRoot, path string) (url string, rel string) {
	root := strings.ReplaceAll(sourceRoot, `\`, "/")
	rel = strings.ReplaceAll(path, `\`, "/")

	if root != "" {
		re := regexp.MustCompile(`(?i).*` + regexp.QuoteMeta(root))
		if loc := re.FindStringIndex(rel); loc != nil {
			rel = rel[loc[1]:]
		}
	}

	rel = strings.TrimLeft(rel, "/")
	url = "/" + rel
	if rel == "index.html" || strings.HasSuffix(rel, "/index.html") {
		url = strings.TrimSuffix(url, "index.html")
	}

	return url, rel
}

func (c PageContext) IsActivePage(url string) bool {
	return c.ActivePageUrl == url
}

// IsActiveParentPage reports whether the active page lives under url.
// This is a plain prefix match, so "/" is the parent of every page.
func (c PageContext) IsActiveParentPage(url string) bool {
	return strings.HasPrefix(c.ActivePageUrl, url)
}

func (c PageContext) Context() pongo2.Context {
	return pongo2.Context{
		"htmlSourceDir":      c.HtmlSourceDir,
		"layoutSourceDir":    c.LayoutSourceDir,
		"isLocalhost":        c.IsLocalhost,
		"activePageUrl":      c.ActivePageUrl,
		"isActivePage":       c.IsActivePage,
		"isActiveParentPage": c.IsActiveParentPage,
	}
}
