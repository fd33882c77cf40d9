package sitepipe

import (
	"path/filepath"
	"sort"
	"strings"
	"time"
)

func (p *Pipeline) writeSitemap() {
	p.pages.mut.Lock()
	urls := append([]string(nil), p.pages.urls...)
	p.pages.mut.Unlock()

	date := time.Now()
	if stat, err := p.fs.Stat(p.options.HtmlSourceDir); err == nil {
		date = stat.ModTime()
	}

	target := filepath.Join(p.options.HtmlTargetDir, "sitemap.xml")
	err := OutputFile(p.fs, target, []byte(Sitemap(p.options.HtmlSitemapUrl, date, urls)))
	p.report.SuccessOrError(err, "html> write "+target)
}

// Sitemap returns a sitemap document listing urls under baseUrl.
// urls are site paths as returned by [ActivePageUrl], so index pages
// are already their directory URLs.
func Sitemap(baseUrl string, date time.Time, urls []string) string {
	dateStr := date.Format(time.DateOnly)
	baseUrl = strings.TrimSuffix(baseUrl, "/")

	sorted := append([]string(nil), urls...)
	sort.Strings(sorted)

	sm := new(strings.Builder)
	sm.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<urlset
xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
xsi:schemaLocation="http://www.sitemaps.org/schemas/sitemap/0.9
http://www.sitemaps.org/schemas/sitemap/0.9/sitemap.xsd"
xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
`)

	for _, url := range sorted {
		sm.WriteString("<url><loc>")
		sm.WriteString(baseUrl + url)
		sm.WriteString("</loc><lastmod>")
		sm.WriteString(dateStr)
		sm.WriteString("</lastmod><priority>1.0</priority></url>\n")
	}

	sm.WriteString("</urlset>")

	return sm.String()
}
