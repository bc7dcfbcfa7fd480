package entities

import (
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// organizationMarkers decide whether a proper-noun span names an
// organization rather than a person.
var organizationMarkers = map[string]bool{
	"department": true, "corporation": true, "authority": true,
	"board": true, "council": true, "ministry": true, "municipality": true,
	"commission": true, "office": true, "bank": true, "company": true,
	"university": true, "college": true, "institute": true, "school": true,
	"hospital": true, "association": true, "society": true, "agency": true,
	"ltd": true, "inc": true, "corp": true,
}

// properNouns tags the text and chunks contiguous proper-noun spans into
// person and organization phrases. Tagging failure degrades to empty sets.
func (e *Extractor) properNouns(text string) (names, organizations []string) {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, nil
	}

	var span []string
	flush := func() {
		if len(span) == 0 {
			return
		}
		phrase := strings.Join(span, " ")
		span = nil
		if spanIsOrganization(phrase) {
			organizations = append(organizations, phrase)
			return
		}
		names = append(names, phrase)
	}

	for _, token := range doc.Tokens() {
		if token.Tag == "NNP" || token.Tag == "NNPS" {
			span = append(span, token.Text)
			continue
		}
		flush()
	}
	flush()

	return dedupe(names), dedupe(organizations)
}

func spanIsOrganization(phrase string) bool {
	for _, word := range strings.Fields(strings.ToLower(phrase)) {
		if organizationMarkers[strings.Trim(word, ".,")] {
			return true
		}
	}
	return false
}
