package classify

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

const (
	// Small additive smoothing keeps class boundaries sharp over the
	// tiny embedded corpus.
	smoothingAlpha = 0.1
	maxFeatures    = 500
)

var tokenExpr = regexp.MustCompile(`[a-z0-9_]{2,}`)

// Classifier routes petition text to one of the fixed department categories
// using a multinomial naive Bayes model over TF-IDF-weighted unigram and
// bigram features. Fitted once at construction and read-only afterwards, so
// concurrent Classify calls need no locking.
type Classifier struct {
	vocab         map[string]int
	idf           []float64
	logPrior      [NumCategories]float64
	logLikelihood [NumCategories][]float64
}

// New fits the model against the embedded corpus. An unusable corpus is a
// fatal construction error: the service cannot route petitions without a
// trained classifier.
func New() (*Classifier, error) {
	type document struct {
		category Category
		terms    []string
	}

	var docs []document
	for _, category := range Categories() {
		samples := trainingCorpus[category]
		if len(samples) == 0 {
			return nil, fmt.Errorf("train classifier: no samples for category %s", category)
		}
		for _, sample := range samples {
			terms := extractTerms(sample)
			if len(terms) == 0 {
				return nil, fmt.Errorf("train classifier: empty sample in category %s", category)
			}
			docs = append(docs, document{category: category, terms: terms})
		}
	}

	// Build the vocabulary: document frequency and corpus frequency per term.
	docFreq := map[string]int{}
	corpusFreq := map[string]int{}
	for _, doc := range docs {
		seen := map[string]bool{}
		for _, term := range doc.terms {
			corpusFreq[term]++
			if !seen[term] {
				seen[term] = true
				docFreq[term]++
			}
		}
	}

	terms := make([]string, 0, len(corpusFreq))
	for term := range corpusFreq {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if len(terms) > maxFeatures {
		sort.SliceStable(terms, func(i, j int) bool {
			return corpusFreq[terms[i]] > corpusFreq[terms[j]]
		})
		terms = terms[:maxFeatures]
		sort.Strings(terms)
	}

	c := &Classifier{
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	for i, term := range terms {
		c.vocab[term] = i
		c.idf[i] = math.Log(float64(1+len(docs))/float64(1+docFreq[term])) + 1
	}

	// Accumulate smoothed per-class feature weights from normalized vectors.
	var classDocs [NumCategories]int
	var classTotal [NumCategories]float64
	for i := range c.logLikelihood {
		c.logLikelihood[i] = make([]float64, len(terms))
	}
	featureSum := [NumCategories][]float64{}
	for i := range featureSum {
		featureSum[i] = make([]float64, len(terms))
	}

	for _, doc := range docs {
		classDocs[doc.category]++
		for _, f := range c.vectorize(doc.terms) {
			featureSum[doc.category][f.index] += f.weight
			classTotal[doc.category] += f.weight
		}
	}

	for _, category := range Categories() {
		c.logPrior[category] = math.Log(float64(classDocs[category]) / float64(len(docs)))
		denominator := math.Log(classTotal[category] + smoothingAlpha*float64(len(terms)))
		for i := range terms {
			c.logLikelihood[category][i] = math.Log(featureSum[category][i]+smoothingAlpha) - denominator
		}
	}

	return c, nil
}

// Classify predicts the department category for text. Empty or whitespace
// text short-circuits to Others at 0.5 confidence without touching the model.
func (c *Classifier) Classify(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Category: Others, Confidence: 0.5}
	}

	posterior := c.posterior(text)
	best := Others
	for _, category := range Categories() {
		if posterior[category] > posterior[best] || (posterior[category] == posterior[best] && category < best) {
			best = category
		}
	}

	distribution := make([]Score, 0, NumCategories)
	for _, category := range Categories() {
		distribution = append(distribution, Score{Category: category, Probability: posterior[category]})
	}

	return Result{
		Category:     best,
		Confidence:   posterior[best],
		Distribution: distribution,
	}
}

// TopCategories returns the n most probable categories sorted descending,
// ties broken by enumeration order.
func (c *Classifier) TopCategories(text string, n int) []Score {
	if strings.TrimSpace(text) == "" || n <= 0 {
		return nil
	}

	posterior := c.posterior(text)
	scores := make([]Score, 0, NumCategories)
	for _, category := range Categories() {
		scores = append(scores, Score{Category: category, Probability: posterior[category]})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Probability > scores[j].Probability
	})

	if n > len(scores) {
		n = len(scores)
	}
	return scores[:n]
}

func (c *Classifier) posterior(text string) [NumCategories]float64 {
	vector := c.vectorize(extractTerms(strings.ToLower(text)))

	var joint [NumCategories]float64
	for _, category := range Categories() {
		joint[category] = c.logPrior[category]
		for _, f := range vector {
			joint[category] += f.weight * c.logLikelihood[category][f.index]
		}
	}

	// Softmax over joint log-likelihoods with max subtraction for stability.
	max := joint[0]
	for _, v := range joint[1:] {
		if v > max {
			max = v
		}
	}

	var posterior [NumCategories]float64
	var total float64
	for i, v := range joint {
		posterior[i] = math.Exp(v - max)
		total += posterior[i]
	}
	for i := range posterior {
		posterior[i] /= total
	}
	return posterior
}

type feature struct {
	index  int
	weight float64
}

// vectorize maps terms to an L2-normalized TF-IDF vector over the fitted
// vocabulary. Features are ordered by index so float accumulation stays
// deterministic across calls.
func (c *Classifier) vectorize(terms []string) []feature {
	counts := map[int]float64{}
	for _, term := range terms {
		if idx, ok := c.vocab[term]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	vector := make([]feature, 0, len(counts))
	for idx, count := range counts {
		vector = append(vector, feature{index: idx, weight: count * c.idf[idx]})
	}
	sort.Slice(vector, func(i, j int) bool { return vector[i].index < vector[j].index })

	var norm float64
	for _, f := range vector {
		norm += f.weight * f.weight
	}
	norm = math.Sqrt(norm)
	for i := range vector {
		vector[i].weight /= norm
	}
	return vector
}

// extractTerms produces unigram and bigram features from lowercased text.
func extractTerms(text string) []string {
	words := tokenExpr.FindAllString(text, -1)
	terms := make([]string, 0, len(words)*2)
	terms = append(terms, words...)
	for i := 0; i+1 < len(words); i++ {
		terms = append(terms, words[i]+" "+words[i+1])
	}
	return terms
}
