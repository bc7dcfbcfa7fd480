package sentiment

import "strings"

// UrgencyLevel is the public urgency classification.
type UrgencyLevel string

const (
	UrgencyNormal   UrgencyLevel = "normal"
	UrgencyUrgent   UrgencyLevel = "urgent"
	UrgencyCritical UrgencyLevel = "critical"
)

// PriorityLevel is the final triage level.
type PriorityLevel string

const (
	PriorityLow    PriorityLevel = "low"
	PriorityMedium PriorityLevel = "medium"
	PriorityHigh   PriorityLevel = "high"
)

// tier groups urgency keywords with their per-match weight. The low tier
// carries weight 0: it surfaces matched keywords but never moves the score.
type tier struct {
	weight   int
	keywords []string
}

var urgencyTiers = []tier{
	{weight: 3, keywords: []string{
		"emergency", "urgent", "critical", "immediate", "asap", "danger",
		"life threatening", "severe", "crisis", "fatal",
	}},
	{weight: 2, keywords: []string{
		"important", "serious", "quickly", "soon", "priority", "major",
		"significant", "pressing", "crucial", "vital",
	}},
	{weight: 1, keywords: []string{
		"needed", "required", "necessary", "should", "need", "want",
		"request", "please", "kindly",
	}},
	{weight: 0, keywords: []string{
		"minor", "small", "little", "eventually", "sometime", "when possible",
	}},
}

// Urgency is the result of the keyword scan.
type Urgency struct {
	Level           UrgencyLevel
	MatchedKeywords []string
	Score           int
}

// Priority combines sentiment and urgency into the final triage decision.
type Priority struct {
	Level     PriorityLevel
	Score     int
	Sentiment Sentiment
	Urgency   Urgency
}

// DetectUrgency scans for case-insensitive substring matches against the
// static keyword tiers and sums the weighted hits. Level thresholds:
// score >= 3 critical, >= 2 urgent, otherwise normal.
func (s *Scorer) DetectUrgency(text string) Urgency {
	if text == "" {
		return Urgency{Level: UrgencyNormal}
	}

	lowered := strings.ToLower(text)
	result := Urgency{Level: UrgencyNormal}
	for _, t := range urgencyTiers {
		for _, keyword := range t.keywords {
			if strings.Contains(lowered, keyword) {
				result.MatchedKeywords = append(result.MatchedKeywords, keyword)
				result.Score += t.weight
			}
		}
	}

	switch {
	case result.Score >= 3:
		result.Level = UrgencyCritical
	case result.Score >= 2:
		result.Level = UrgencyUrgent
	}

	return result
}

// CalculatePriority folds sentiment into the urgency score: strongly
// negative text (+2), mildly negative (+1). Final level: >= 4 high,
// >= 2 medium, else low.
func (s *Scorer) CalculatePriority(text string) Priority {
	sent := s.Analyze(text)
	urgency := s.DetectUrgency(text)

	score := urgency.Score
	if sent.Compound < -0.3 {
		score += 2
	} else if sent.Compound < 0 {
		score++
	}

	level := PriorityLow
	switch {
	case score >= 4:
		level = PriorityHigh
	case score >= 2:
		level = PriorityMedium
	}

	return Priority{Level: level, Score: score, Sentiment: sent, Urgency: urgency}
}

// Emotion derives the dominant emotion label, urgency taking precedence
// over raw polarity.
func (s *Scorer) Emotion(text string) string {
	sent := s.Analyze(text)
	urgency := s.DetectUrgency(text)

	switch {
	case urgency.Level == UrgencyCritical || urgency.Level == UrgencyUrgent:
		return "distressed"
	case sent.Compound < -0.5:
		return "angry"
	case sent.Compound < -0.1:
		return "dissatisfied"
	case sent.Compound > 0.5:
		return "hopeful"
	default:
		return "neutral"
	}
}
