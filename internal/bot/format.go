package bot

import (
	"fmt"
	"strings"

	"github.com/ppiankov/moodbot/internal/model"
)

// Greeting is the /start reply.
func Greeting() string {
	return "Hi! Send me any text and I will tell you its mood 😊\n\n" +
		"Commands:\n" +
		"/stats - usage statistics"
}

// FormatAnalysis renders one classification result for the user.
func FormatAnalysis(ev *model.ClassificationEvent) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s Mood: **%s**\n\n", emojiFor(ev.Sentiment), ev.Sentiment)
	sb.WriteString("Probabilities:\n")
	fmt.Fprintf(&sb, "• Positive: %.1f%%\n", ev.Probs.Positive)
	fmt.Fprintf(&sb, "• Negative: %.1f%%\n", ev.Probs.Negative)
	fmt.Fprintf(&sb, "• Neutral: %.1f%%", ev.Probs.Neutral)
	return sb.String()
}

// FormatStats renders the aggregate report. Sentiments appear in canonical
// order; labels with zero occurrences are left out entirely. The average
// length is shown without decimals.
func FormatStats(r *model.StatsReport) string {
	var sb strings.Builder
	sb.WriteString("📊 Statistics:\n\n")
	fmt.Fprintf(&sb, "📝 Total messages: %d\n\n", r.Total)
	sb.WriteString("📈 By mood:\n")

	for _, s := range model.Sentiments {
		if pct, ok := r.Distribution[s]; ok {
			fmt.Fprintf(&sb, "• %s: %.1f%%\n", s, pct)
		}
	}

	fmt.Fprintf(&sb, "\n📏 Average length: %.0f characters", r.AvgTextLength)
	return sb.String()
}

func emojiFor(s model.Sentiment) string {
	switch s {
	case model.SentimentPositive:
		return "😊"
	case model.SentimentNegative:
		return "😞"
	default:
		return "😐"
	}
}
