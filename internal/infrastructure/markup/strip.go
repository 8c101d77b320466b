// Package markup turns HTML fragments found in abstracts and notes into plain text.
package markup

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const blockSelector = "p, div, br, li, ul, ol, tr, td, th, h1, h2, h3, h4, h5, h6, blockquote, section"

// Strip removes tags and decodes entities. Text without '<' or '&' is returned untouched;
// otherwise runs of whitespace collapse to a single space and block elements are separated.
func Strip(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return text
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}

	doc.Find("script, style").Remove()
	doc.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml(" ")
	})

	return strings.Join(strings.Fields(doc.Find("body").Text()), " ")
}
