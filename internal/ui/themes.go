package ui

// Theme is a named color palette. Score tier colors are not themed; they
// come from the classifier so severity reads the same everywhere.
type Theme struct {
	Primary    string
	Secondary  string
	Subtle     string
	Background string
	Text       string
	Error      string
	Success    string
}

var Themes = map[string]Theme{
	"default": {
		Primary:    "#7D56F4",
		Secondary:  "#04B575",
		Subtle:     "240",
		Background: "#1A1A2E",
		Text:       "#FAFAFA",
		Error:      "#FF5F5F",
		Success:    "#04B575",
	},
	"paper": {
		Primary:    "#005F87",
		Secondary:  "#875F00",
		Subtle:     "250",
		Background: "#FFFFFF",
		Text:       "#262626",
		Error:      "#D70000",
		Success:    "#008700",
	},
	"midnight": {
		Primary:    "#5FAFFF",
		Secondary:  "#87D7AF",
		Subtle:     "238",
		Background: "#0F111A",
		Text:       "#D0D0D0",
		Error:      "#FF6E67",
		Success:    "#5AF78E",
	},
}

// GetThemeNames returns theme names in a stable cycling order.
func GetThemeNames() []string {
	return []string{"default", "paper", "midnight"}
}
