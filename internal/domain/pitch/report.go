package pitch

import "strings"

// Characteristics is the structured readout of a free-text pitch report.
// Flags are independent: a report may read both spin friendly and high
// scoring, or match nothing at all.
type Characteristics struct {
	PaceFriendly bool
	SpinFriendly bool
	HighScoring  bool
	LowScoring   bool
}

var paceKeywords = []string{
	"green", "grassy", "seam", "seaming", "swing", "swinging",
	"lively", "pace and bounce", "hard pitch", "fast pitch",
}

var spinKeywords = []string{
	"dry", "dusty", "turning", "turner", "spin", "crumbling",
	"rough", "grip", "assist spinners",
}

var highScoringKeywords = []string{
	"flat", "flat track", "batting paradise", "road", "true bounce",
	"good batting", "high scoring", "belter", "placid",
}

var lowScoringKeywords = []string{
	"two-paced", "two paced", "variable bounce", "uneven", "cracked",
	"cracks", "deteriorating", "low scoring", "difficult to bat",
	"slow and low",
}

// Analyze scans a free-text report for known surface descriptors. It is
// total: any input, including an empty or unrelated report, yields a
// valid Characteristics value.
func Analyze(report string) Characteristics {
	normalized := strings.ToLower(report)

	return Characteristics{
		PaceFriendly: containsAny(normalized, paceKeywords),
		SpinFriendly: containsAny(normalized, spinKeywords),
		HighScoring:  containsAny(normalized, highScoringKeywords),
		LowScoring:   containsAny(normalized, lowScoringKeywords),
	}
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
