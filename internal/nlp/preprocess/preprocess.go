package preprocess

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/kljensen/snowball/english"
)

var (
	urlExpr        = regexp.MustCompile(`(?i)(?:https?://|www\.)\S+`)
	emailLikeExpr  = regexp.MustCompile(`\S+@\S+`)
	nonAlphaExpr   = regexp.MustCompile(`[^a-z\s]`)
	whitespaceExpr = regexp.MustCompile(`\s+`)
)

// Preprocessor cleans and normalizes petition text for downstream analysis.
// Exactly one of stemming or lemmatization is applied; lemmatization is the
// default reduction.
type Preprocessor struct {
	lemmatizer  *golem.Lemmatizer
	useStemming bool
}

// Option adjusts preprocessor construction.
type Option func(*Preprocessor)

// WithStemming switches token reduction from lemmatization to stemming.
func WithStemming() Option {
	return func(p *Preprocessor) { p.useStemming = true }
}

// New builds a preprocessor with the English lemma dictionary loaded.
func New(opts ...Option) (*Preprocessor, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load lemma dictionary: %w", err)
	}

	p := &Preprocessor{lemmatizer: lemmatizer}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Clean lowercases text and strips URLs, emails and non-alphabetic characters.
func (p *Preprocessor) Clean(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = urlExpr.ReplaceAllString(text, "")
	text = emailLikeExpr.ReplaceAllString(text, "")
	text = nonAlphaExpr.ReplaceAllString(text, "")
	text = whitespaceExpr.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// Tokenize splits cleaned text into word tokens.
func (p *Preprocessor) Tokenize(text string) []string {
	return strings.Fields(text)
}

// Normalize runs the full pipeline: clean, tokenize, drop stopwords, reduce
// each token to its base form. Empty input yields an empty string.
func (p *Preprocessor) Normalize(text string) string {
	tokens := p.contentTokens(text)
	if len(tokens) == 0 {
		return ""
	}

	reduced := make([]string, 0, len(tokens))
	for _, token := range tokens {
		reduced = append(reduced, p.reduce(token))
	}

	return strings.Join(reduced, " ")
}

// Keywords returns the topN most frequent content words, ties broken by
// first occurrence.
func (p *Preprocessor) Keywords(text string, topN int) []string {
	tokens := p.contentTokens(text)
	if len(tokens) == 0 || topN <= 0 {
		return nil
	}

	counts := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	// Stable selection sort over first-occurrence order keeps ties deterministic.
	keywords := make([]string, 0, topN)
	for len(keywords) < topN && len(order) > 0 {
		best := 0
		for i, word := range order {
			if counts[word] > counts[order[best]] {
				best = i
			}
		}
		keywords = append(keywords, order[best])
		order = append(order[:best], order[best+1:]...)
	}

	return keywords
}

func (p *Preprocessor) contentTokens(text string) []string {
	tokens := p.Tokenize(p.Clean(text))
	kept := tokens[:0]
	for _, token := range tokens {
		if !stopwords[token] {
			kept = append(kept, token)
		}
	}
	return kept
}

func (p *Preprocessor) reduce(token string) string {
	if p.useStemming {
		return english.Stem(token, false)
	}
	return p.lemmatizer.Lemma(token)
}
