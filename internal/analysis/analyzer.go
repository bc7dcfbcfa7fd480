package analysis

import (
	"fmt"
	"strings"

	"PetitionRouter/internal/nlp/classify"
	"PetitionRouter/internal/nlp/entities"
	"PetitionRouter/internal/nlp/preprocess"
	"PetitionRouter/internal/nlp/sentiment"
)

const summaryKeywords = 5

// Config adjusts pipeline construction.
type Config struct {
	// UseStemming switches token reduction from lemmatization to stemming.
	UseStemming bool
}

// Bundle is the complete decision produced for one petition text.
type Bundle struct {
	Classification classify.Result
	Priority       sentiment.Priority
	Entities       entities.Bundle
	Keywords       []string
	Summary        string
	NormalizedText string
}

// Analyzer is the pipeline facade: it owns the fitted classifier (built once,
// read-only afterwards) and the stateless components around it. A single
// Analyzer may serve concurrent Analyze calls without locking.
type Analyzer struct {
	preprocessor *preprocess.Preprocessor
	classifier   *classify.Classifier
	scorer       *sentiment.Scorer
	extractor    *entities.Extractor
}

// New constructs the pipeline. Classifier training failure is fatal: the
// service cannot route petitions without a fitted model.
func New(cfg Config) (*Analyzer, error) {
	var opts []preprocess.Option
	if cfg.UseStemming {
		opts = append(opts, preprocess.WithStemming())
	}

	preprocessor, err := preprocess.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("build preprocessor: %w", err)
	}

	classifier, err := classify.New()
	if err != nil {
		return nil, fmt.Errorf("build classifier: %w", err)
	}

	return &Analyzer{
		preprocessor: preprocessor,
		classifier:   classifier,
		scorer:       sentiment.NewScorer(),
		extractor:    entities.NewExtractor(),
	}, nil
}

// Analyze runs the full pipeline over "<title>. <description>" in fixed
// order: normalize, classify, score priority, extract entities, compose the
// summary. Empty strings degrade to each component's neutral default.
func (a *Analyzer) Analyze(title, description string) Bundle {
	full := combine(title, description)

	bundle := Bundle{
		NormalizedText: a.preprocessor.Normalize(full),
		Keywords:       a.preprocessor.Keywords(full, summaryKeywords),
		Classification: a.classifier.Classify(full),
		Priority:       a.scorer.CalculatePriority(full),
		Entities:       a.extractor.Extract(full),
	}
	bundle.Summary = composeSummary(title, bundle)

	return bundle
}

// EntitySummary renders the human-readable entity digest for a bundle.
func (a *Analyzer) EntitySummary(bundle Bundle) string {
	return a.extractor.Summary(bundle.Entities)
}

func combine(title, description string) string {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(description) == "" {
		return ""
	}
	return title + ". " + description
}

func composeSummary(title string, bundle Bundle) string {
	parts := []string{
		"Petition: " + title,
		"Category: " + bundle.Classification.Category.String(),
		"Priority: " + string(bundle.Priority.Level),
		"Urgency: " + string(bundle.Priority.Urgency.Level),
	}

	if len(bundle.Entities.Locations) > 0 {
		parts = append(parts, "Location: "+bundle.Entities.Locations[0])
	}

	return strings.Join(parts, " | ")
}
