package intake

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var spaceExpr = regexp.MustCompile(`\s+`)

// PlainText strips markup out of a submitted field. Citizen portals post
// rich-text descriptions; the analysis pipeline and storage only ever see
// plain text.
func PlainText(field string) string {
	if !strings.Contains(field, "<") {
		return collapse(field)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(field))
	if err != nil {
		return collapse(field)
	}
	doc.Find("script, style").Remove()

	return collapse(doc.Text())
}

func collapse(s string) string {
	return strings.TrimSpace(spaceExpr.ReplaceAllString(s, " "))
}
