// Package classify maps 0-100 analysis scores to display tiers.
// It is the single source of truth for tier boundaries: the score badge,
// the verdict label, and the bar fill all derive their color from here.
package classify

import "github.com/charmbracelet/lipgloss"

// Tier is a display band for a score: a human-readable verdict plus the
// color used for the badge and bar fill.
type Tier struct {
	Label string
	Color lipgloss.Color
}

type band struct {
	max  int // inclusive upper bound
	tier Tier
}

var biasBands = []band{
	{20, Tier{Label: "Minimal Bias", Color: lipgloss.Color("#16a34a")}},
	{40, Tier{Label: "Low Bias", Color: lipgloss.Color("#65a30d")}},
	{60, Tier{Label: "Moderate Bias", Color: lipgloss.Color("#ca8a04")}},
	{80, Tier{Label: "High Bias", Color: lipgloss.Color("#ea580c")}},
	{100, Tier{Label: "Extreme Bias", Color: lipgloss.Color("#dc2626")}},
}

var dramaBands = []band{
	{20, Tier{Label: "Calm", Color: lipgloss.Color("#0d9488")}},
	{40, Tier{Label: "Mildly Dramatic", Color: lipgloss.Color("#65a30d")}},
	{60, Tier{Label: "Emotionally Charged", Color: lipgloss.Color("#ca8a04")}},
	{80, Tier{Label: "Highly Dramatic", Color: lipgloss.Color("#ea580c")}},
	{100, Tier{Label: "Sensationalist", Color: lipgloss.Color("#dc2626")}},
}

// BiasTier returns the bias display tier for a score. Scores outside
// [0, 100] are clamped so the function is total.
func BiasTier(score int) Tier {
	return tierFor(biasBands, score)
}

// DramaTier returns the drama display tier for a score.
func DramaTier(score int) Tier {
	return tierFor(dramaBands, score)
}

func tierFor(bands []band, score int) Tier {
	score = Clamp(score)
	for _, b := range bands {
		if score <= b.max {
			return b.tier
		}
	}
	// Unreachable: the last band's bound is 100 and Clamp caps at 100.
	return bands[len(bands)-1].tier
}

// Clamp bounds a score to the [0, 100] domain.
func Clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
