package sentiment

import (
	"math"
	"strings"
)

// Polarity buckets the compound score into three classes.
type Polarity string

const (
	PolarityPositive Polarity = "positive"
	PolarityNegative Polarity = "negative"
	PolarityNeutral  Polarity = "neutral"
)

const (
	polarityThreshold = 0.05
	negationFactor    = -0.74
	// normalizationAlpha is the usual valence-lexicon constant mapping the
	// raw valence sum into [-1, 1].
	normalizationAlpha = 15
)

// Sentiment holds the component scores of one text.
type Sentiment struct {
	Compound float64
	Positive float64
	Negative float64
	Neutral  float64
	Polarity Polarity
}

// Scorer computes lexicon-based sentiment, urgency and priority. It carries
// no mutable state: every method is a pure function of its input and safe
// for unsynchronized concurrent use.
type Scorer struct{}

// NewScorer returns a ready scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Analyze scores text against the embedded valence lexicon, applying
// negation flips and booster adjustments from up to three preceding words.
func (s *Scorer) Analyze(text string) Sentiment {
	if strings.TrimSpace(text) == "" {
		return Sentiment{Neutral: 1, Polarity: PolarityNeutral}
	}

	tokens := wordTokens(text)

	var sum, posSum, negSum float64
	var neutralCount int
	for i, token := range tokens {
		valence, ok := valences[token]
		if !ok {
			if !negators[token] {
				if _, boost := boosters[token]; !boost {
					neutralCount++
				}
			}
			continue
		}

		valence = adjustValence(valence, tokens, i)

		sum += valence
		switch {
		case valence > 0:
			posSum += valence + 1
		case valence < 0:
			negSum += valence - 1
		default:
			neutralCount++
		}
	}

	compound := sum / math.Sqrt(sum*sum+normalizationAlpha)
	if compound > 1 {
		compound = 1
	} else if compound < -1 {
		compound = -1
	}

	total := posSum + math.Abs(negSum) + float64(neutralCount)
	result := Sentiment{Compound: compound, Polarity: polarityFor(compound)}
	if total > 0 {
		result.Positive = round4(posSum / total)
		result.Negative = round4(math.Abs(negSum) / total)
		result.Neutral = round4(float64(neutralCount) / total)
	} else {
		result.Neutral = 1
	}

	return result
}

// adjustValence applies boosters and negation from the three words before
// position i, with distance damping on boosters.
func adjustValence(valence float64, tokens []string, i int) float64 {
	damping := []float64{1, 0.95, 0.9}
	for back := 1; back <= 3 && i-back >= 0; back++ {
		previous := tokens[i-back]
		if boost, ok := boosters[previous]; ok {
			scaled := boost * damping[back-1]
			if valence < 0 {
				valence -= scaled
			} else {
				valence += scaled
			}
		}
		if negators[previous] {
			valence *= negationFactor
		}
	}
	return valence
}

func polarityFor(compound float64) Polarity {
	switch {
	case compound >= polarityThreshold:
		return PolarityPositive
	case compound <= -polarityThreshold:
		return PolarityNegative
	default:
		return PolarityNeutral
	}
}

func wordTokens(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		token := strings.Trim(field, `.,!?;:"'()[]{}`)
		token = strings.ReplaceAll(token, "'", "")
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
