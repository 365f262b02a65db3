package classify

import (
	"math"
	"strings"

	"github.com/ppiankov/moodbot/internal/model"
)

// rule maps label substrings to a canonical sentiment. Rules are evaluated in
// order; the first match wins, so a label containing both "pos" and "neg"
// resolves to positive. Anything that matches no rule falls back to neutral.
type rule struct {
	substrings []string
	category   model.Sentiment
}

var rules = []rule{
	{substrings: []string{"positive", "pos"}, category: model.SentimentPositive},
	{substrings: []string{"negative", "neg"}, category: model.SentimentNegative},
}

// categorize maps a raw classifier label to a canonical sentiment using
// case-insensitive substring matching.
func categorize(label string) model.Sentiment {
	lower := strings.ToLower(label)
	for _, r := range rules {
		for _, sub := range r.substrings {
			if strings.Contains(lower, sub) {
				return r.category
			}
		}
	}
	return model.SentimentNeutral
}

// Normalize converts raw classifier output into the canonical verdict plus a
// completed three-way distribution.
//
// Per category, the stored probability is the best (maximum) raw score seen
// for that category, scaled to a percentage and rounded to one decimal. It is
// deliberately not a sum across pairs mapping to the same category. The
// verdict is the category holding the global maximum score; ties keep the
// first seen, and with every score at zero the verdict stays neutral.
//
// An empty input yields ErrClassificationUnavailable.
func Normalize(scores []model.LabelScore) (model.Sentiment, model.Distribution, error) {
	if len(scores) == 0 {
		return "", model.Distribution{}, ErrClassificationUnavailable
	}

	best := make(map[model.Sentiment]float64, 3)
	verdict := model.SentimentNeutral
	bestScore := 0.0

	for _, ls := range scores {
		category := categorize(ls.Label)

		if ls.Score > best[category] {
			best[category] = ls.Score
		}
		if ls.Score > bestScore {
			bestScore = ls.Score
			verdict = category
		}
	}

	dist := model.Distribution{
		Positive: toPercent(best[model.SentimentPositive]),
		Negative: toPercent(best[model.SentimentNegative]),
		Neutral:  toPercent(best[model.SentimentNeutral]),
	}

	return verdict, dist, nil
}

// toPercent scales a [0,1] score to a percentage rounded to one decimal.
func toPercent(score float64) float64 {
	return math.Round(score*1000) / 10
}
