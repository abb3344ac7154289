package source

import (
	"bytes"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"github.com/IshaanNene/CatalogGoat/internal/types"
)

// Page URL candidates, most authoritative first.
var urlXPaths = []struct {
	expr string
	attr string
}{
	{`//link[@rel='canonical']`, "href"},
	{`//meta[@property='og:url']`, "content"},
}

// SnapshotURL derives a page URL from a snapshot filename. A "__" in the
// stem stands for a path separator, so product__alpet-d2.html maps to
// <base>/product/alpet-d2.
func SnapshotURL(baseURL, file string) string {
	stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	p := strings.ReplaceAll(stem, "__", "/")
	if stem == "index" {
		p = ""
	}
	return strings.TrimRight(baseURL, "/") + "/" + p
}

// ParseSnapshot builds a page record from a raw HTML document. fallbackURL is
// used when the document carries neither a canonical link nor og:url.
func ParseSnapshot(raw []byte, fallbackURL string) (types.PageRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return types.PageRecord{}, &types.ParseError{URL: fallbackURL, Format: "html", Err: err}
	}
	root, err := htmlquery.Parse(bytes.NewReader(raw))
	if err != nil {
		return types.PageRecord{}, &types.ParseError{URL: fallbackURL, Format: "html", Err: err}
	}

	page := types.PageRecord{URL: documentURL(root, fallbackURL)}
	page.Metadata.Title = strings.TrimSpace(doc.Find("title").First().Text())
	page.Metadata.Description = metaContent(doc, `meta[name="description"]`, `meta[property="og:description"]`)

	doc.Find("script, style, noscript, template").Remove()
	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}

	bodyHTML, err := body.Html()
	if err != nil {
		return types.PageRecord{}, fmt.Errorf("rendering body: %w", err)
	}
	page.Markdown, err = md.NewConverter("", true, nil).ConvertString(bodyHTML)
	if err != nil {
		return types.PageRecord{}, &types.ParseError{URL: page.URL, Format: "markdown", Err: err}
	}

	text, excerpt := readableText(raw, page.URL)
	if text == "" {
		text = collapseSpace(body.Text())
	}
	page.Text = text
	if page.Metadata.Description == "" {
		page.Metadata.Description = excerpt
	}
	return page, nil
}

// documentURL looks up the canonical page URL, resolved against fallback.
func documentURL(root *html.Node, fallback string) string {
	for _, x := range urlXPaths {
		n, err := htmlquery.Query(root, x.expr)
		if err != nil || n == nil {
			continue
		}
		href := strings.TrimSpace(htmlquery.SelectAttr(n, x.attr))
		if href == "" {
			continue
		}
		return resolve(fallback, href)
	}
	return fallback
}

func resolve(base, ref string) string {
	r, err := url.Parse(ref)
	if err != nil {
		return base
	}
	b, err := url.Parse(base)
	if err != nil || !b.IsAbs() {
		return r.String()
	}
	return b.ResolveReference(r).String()
}

func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if v, ok := doc.Find(sel).First().Attr("content"); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// readableText returns the main-content text and excerpt of the document.
// Both are empty when readability cannot find an article.
func readableText(raw []byte, pageURL string) (string, string) {
	u, err := url.Parse(pageURL)
	if err != nil {
		u = &url.URL{}
	}
	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(raw), u)
	if err != nil || article.Content == "" {
		return "", ""
	}
	content, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return "", strings.TrimSpace(article.Excerpt)
	}
	return collapseSpace(content.Text()), strings.TrimSpace(article.Excerpt)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
