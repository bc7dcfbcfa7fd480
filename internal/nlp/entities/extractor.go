package entities

import (
	"regexp"
	"strings"
)

var (
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{2,4}`),                                                // DD-MM-YYYY, DD/MM/YYYY
		regexp.MustCompile(`\d{4}[-/]\d{1,2}[-/]\d{1,2}`),                                                  // YYYY-MM-DD
		regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4}\b`), // DD Month YYYY
	}
	phoneExpr    = regexp.MustCompile(`\b\d{10}\b|\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	emailExpr    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	sentenceExpr = regexp.MustCompile(`[.!?]+`)
)

// locationIndicators trigger phrase capture around their position.
var locationIndicators = []string{
	"street", "road", "avenue", "colony", "sector", "area",
	"district", "city", "town", "village", "block", "ward",
}

const maxLocations = 5

// Bundle carries all entities extracted from one petition text. Every slice
// is deduplicated in first-discovery order.
type Bundle struct {
	Dates         []string
	PhoneNumbers  []string
	Emails        []string
	Locations     []string
	Names         []string
	Organizations []string
}

// Extractor pulls structured entities out of free text. Extraction is always
// best-effort: a sub-step that cannot process the text yields an empty set,
// never an error.
type Extractor struct{}

// NewExtractor returns a ready extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract runs every extraction step over text.
func (e *Extractor) Extract(text string) Bundle {
	if text == "" {
		return Bundle{}
	}

	names, organizations := e.properNouns(text)
	return Bundle{
		Dates:         e.dates(text),
		PhoneNumbers:  e.phoneNumbers(text),
		Emails:        e.emails(text),
		Locations:     e.locations(text),
		Names:         names,
		Organizations: organizations,
	}
}

// Summary renders the bundle as labeled clauses, capped per entity kind.
func (e *Extractor) Summary(bundle Bundle) string {
	var parts []string

	if len(bundle.Names) > 0 {
		parts = append(parts, "Persons mentioned: "+strings.Join(head(bundle.Names, 3), ", "))
	}
	if len(bundle.Locations) > 0 {
		parts = append(parts, "Locations: "+strings.Join(head(bundle.Locations, 2), ", "))
	}
	if len(bundle.Organizations) > 0 {
		parts = append(parts, "Organizations: "+strings.Join(head(bundle.Organizations, 2), ", "))
	}
	if len(bundle.Dates) > 0 {
		parts = append(parts, "Dates: "+strings.Join(head(bundle.Dates, 2), ", "))
	}

	if len(parts) == 0 {
		return "No specific entities extracted"
	}
	return strings.Join(parts, "; ")
}

func (e *Extractor) dates(text string) []string {
	var matches []string
	for _, pattern := range datePatterns {
		matches = append(matches, pattern.FindAllString(text, -1)...)
	}
	return dedupe(matches)
}

func (e *Extractor) phoneNumbers(text string) []string {
	return dedupe(phoneExpr.FindAllString(text, -1))
}

func (e *Extractor) emails(text string) []string {
	return dedupe(emailExpr.FindAllString(text, -1))
}

// locations scans sentence by sentence for indicator words and captures a
// window of up to three words on either side of each hit.
func (e *Extractor) locations(text string) []string {
	var phrases []string
	for _, sentence := range sentenceExpr.Split(text, -1) {
		lowered := strings.ToLower(sentence)
		for _, indicator := range locationIndicators {
			if !strings.Contains(lowered, indicator) {
				continue
			}
			words := strings.Fields(sentence)
			for i, word := range words {
				if !strings.Contains(strings.ToLower(word), indicator) {
					continue
				}
				start := i - 3
				if start < 0 {
					start = 0
				}
				end := i + 4
				if end > len(words) {
					end = len(words)
				}
				phrases = append(phrases, strings.Join(words[start:end], " "))
			}
		}
	}

	phrases = dedupe(phrases)
	if len(phrases) > maxLocations {
		phrases = phrases[:maxLocations]
	}
	return phrases
}

func head(values []string, n int) []string {
	if len(values) < n {
		n = len(values)
	}
	return values[:n]
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
