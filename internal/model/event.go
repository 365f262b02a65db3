package model

import "time"

// Sentiment is a canonical three-way sentiment label, independent of whatever
// vocabulary the upstream classifier uses ("POSITIVE", "pos", "LABEL_1", ...).
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Sentiments lists the canonical labels in display order.
var Sentiments = []Sentiment{SentimentPositive, SentimentNegative, SentimentNeutral}

// LabelScore is one (label, confidence) pair as returned by a classifier
// provider. Score is a confidence in [0, 1]. Neither the number of pairs nor
// the label vocabulary is guaranteed.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Distribution holds the completed probability distribution over the three
// canonical sentiments, each a percentage in [0, 100] rounded to one decimal.
// Categories the classifier never mentioned stay at 0.0. The three values are
// not required to sum to 100.
type Distribution struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// MaxExcerptLen is the maximum number of characters of user text persisted
// per event.
const MaxExcerptLen = 500

// Excerpt truncates text to at most MaxExcerptLen characters, keeping the
// prefix. Truncation counts runes, not bytes.
func Excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxExcerptLen {
		return text
	}
	return string(runes[:MaxExcerptLen])
}

// ClassificationEvent is one persisted record per analyzed message. Once
// appended to the store it is never mutated.
type ClassificationEvent struct {
	Timestamp time.Time    // UTC instant of processing
	UserID    string       // opaque submitter identifier
	Text      string       // excerpt, at most MaxExcerptLen characters
	Sentiment Sentiment    // canonical verdict
	Probs     Distribution // completed three-way distribution
}

// NewEvent builds a ClassificationEvent for the given submission, stamping
// the current UTC time and truncating the text excerpt.
func NewEvent(userID, text string, sentiment Sentiment, probs Distribution) ClassificationEvent {
	return ClassificationEvent{
		Timestamp: time.Now().UTC(),
		UserID:    userID,
		Text:      Excerpt(text),
		Sentiment: sentiment,
		Probs:     probs,
	}
}

// StatsReport summarizes the full event history.
type StatsReport struct {
	Total         int                   `json:"total"`
	Distribution  map[Sentiment]float64 `json:"distribution"`        // percent per observed label; zero-count labels omitted
	AvgTextLength float64               `json:"average_text_length"` // mean excerpt length in characters, full precision
}
