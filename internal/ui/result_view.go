package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spinfilter/spinfilter/internal/classify"
)

const scoreBarWidth = 30
const emotionBarWidth = 20

// renderResult builds the scrollable result document: bias verdict,
// article metadata, summary, per-paragraph findings, then whatever
// enrichment has arrived so far. Sections for enrichment that failed or
// has not run are simply absent.
func (m *Model) renderResult() string {
	r := m.result
	if r == nil {
		return ""
	}

	width := m.viewport.Width - 2
	if width < 20 {
		width = 20
	}

	var sections []string

	sections = append(sections, m.renderBiasCard(width))

	if info := m.renderArticleInfo(width); info != "" {
		sections = append(sections, info)
	}

	if r.Summary != "" {
		sections = append(sections, m.renderSection("Summary", r.Summary, width))
	}

	if r.BiasSummary != "" {
		sections = append(sections, m.renderSection("Bias Assessment", r.BiasSummary, width))
	}

	if len(r.Reasons) > 0 {
		var lines []string
		for _, reason := range r.Reasons {
			lines = append(lines, "• "+reason)
		}
		sections = append(sections, m.renderSection("Findings", strings.Join(lines, "\n"), width))
	}

	if len(r.Paragraphs) > 0 {
		sections = append(sections, m.renderParagraphs(width))
	}

	if drama := m.renderDramaCard(width); drama != "" {
		sections = append(sections, drama)
	}

	if similar := m.renderSimilar(width); similar != "" {
		sections = append(sections, similar)
	}

	return strings.Join(sections, "\n\n")
}

func (m *Model) renderBiasCard(width int) string {
	r := m.result

	var body string
	if r.BiasScore == nil {
		body = m.styles.HelpDesc.Render("No bias score returned for this submission.")
	} else {
		score := classify.Clamp(*r.BiasScore)
		tier := classify.BiasTier(score)
		tierStyle := lipgloss.NewStyle().Bold(true).Foreground(tier.Color)

		body = lipgloss.JoinVertical(lipgloss.Left,
			tierStyle.Render(fmt.Sprintf("%s  (%d/100)", tier.Label, score)),
			"",
			scoreBar(score, tier.Color, scoreBarWidth),
		)
	}

	return m.styles.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.CardLabel.Render("Bias"),
		"",
		body,
	))
}

func (m *Model) renderArticleInfo(width int) string {
	r := m.result

	var lines []string
	if r.Title != "" {
		lines = append(lines, m.styles.Title.Render(truncateLabel(r.Title, width)))
	}

	var meta []string
	if len(r.Authors) > 0 {
		meta = append(meta, strings.Join(r.Authors, ", "))
	}
	if r.Date != "" {
		meta = append(meta, r.Date)
	}
	if len(meta) > 0 {
		lines = append(lines, m.styles.HelpDesc.Render(strings.Join(meta, " · ")))
	}
	if len(r.Keywords) > 0 {
		lines = append(lines, m.styles.HelpDesc.Render("keywords: "+strings.Join(r.Keywords, ", ")))
	}

	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderSection(title, body string, width int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.CardLabel.Render(title),
		m.styles.Normal.Width(width).Render(body),
	)
}

// renderParagraphs lays out the analyzed text paragraph by paragraph.
// Flagged paragraphs carry their suggested rewrite inline; the reason a
// paragraph was flagged stays hidden until toggled.
func (m *Model) renderParagraphs(width int) string {
	lines := []string{m.styles.CardLabel.Render("Paragraphs")}

	for i, p := range m.result.Paragraphs {
		marker := "  "
		if i == m.paragraphCursor {
			marker = m.styles.Highlight.Render("> ")
		}

		var heading string
		if p.Biased() {
			tier := classify.BiasTier(classify.Clamp(p.BiasScore))
			tierStyle := lipgloss.NewStyle().Bold(true).Foreground(tier.Color)
			heading = tierStyle.Render(fmt.Sprintf("¶ %d  %s (%d)", i+1, tier.Label, p.BiasScore))
		} else {
			heading = m.styles.HelpDesc.Render(fmt.Sprintf("¶ %d", i+1))
		}

		lines = append(lines, "", marker+heading)
		lines = append(lines, m.styles.Normal.Width(width).Render(p.Text))

		if p.Biased() {
			if p.Unchanged() {
				lines = append(lines, m.styles.HelpDesc.Render("  rewrite: unchanged"))
			} else {
				lines = append(lines, m.styles.Success.Width(width).Render("  rewrite: "+p.UnbiasedReplacement))
			}
			if m.reasons.IsOpen(i) && p.ReasonBiased != "" {
				lines = append(lines, m.styles.Help.Width(width).Render("  why: "+p.ReasonBiased))
			}
		}
	}

	return strings.Join(lines, "\n")
}

func (m *Model) renderDramaCard(width int) string {
	st := m.pipeline.State()
	if st.DramaIndex == nil {
		return ""
	}

	score := classify.Clamp(*st.DramaIndex)
	tier := classify.DramaTier(score)
	tierStyle := lipgloss.NewStyle().Bold(true).Foreground(tier.Color)

	lines := []string{
		m.styles.CardLabel.Render("Drama Index"),
		"",
		tierStyle.Render(fmt.Sprintf("%s  (%d/100)", tier.Label, score)),
		"",
		scoreBar(score, tier.Color, scoreBarWidth),
	}

	if m.result.DramaSummary != "" {
		lines = append(lines, "", m.styles.Normal.Width(width-8).Render(m.result.DramaSummary))
	}

	if len(st.Emotions) > 0 {
		names := make([]string, 0, len(st.Emotions))
		for name := range st.Emotions {
			names = append(names, name)
		}
		sort.Strings(names)

		lines = append(lines, "")
		for _, name := range names {
			value := classify.Clamp(st.Emotions[name])
			lines = append(lines, fmt.Sprintf("%-12s %s %3d",
				name,
				scoreBar(value, lipgloss.Color(m.styles.theme.Secondary), emotionBarWidth),
				value,
			))
		}
	}

	return m.styles.Card.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderSimilar(width int) string {
	st := m.pipeline.State()

	if st.SimilarInFlight {
		return m.styles.CardLabel.Render("Similar Articles") + "\n" +
			m.styles.HelpDesc.Render(m.spinner.View()+" Searching...")
	}
	if st.Similar == nil {
		return ""
	}
	if len(st.Similar) == 0 {
		return m.styles.CardLabel.Render("Similar Articles") + "\n" +
			m.styles.HelpDesc.Render("No similar articles found.")
	}

	lines := []string{m.styles.CardLabel.Render("Similar Articles")}
	for _, article := range st.Similar {
		title := article.Title
		if title == "" {
			title = article.URL
		}
		lines = append(lines, "• "+m.styles.Normal.Render(truncateLabel(title, width-2)))

		var meta []string
		if article.SourceName != "" {
			meta = append(meta, article.SourceName)
		}
		if article.PublishedAt != "" {
			meta = append(meta, article.PublishedAt)
		}
		if article.URL != "" && article.Title != "" {
			meta = append(meta, truncateLabel(article.URL, width-20))
		}
		if len(meta) > 0 {
			lines = append(lines, "  "+m.styles.HelpDesc.Render(strings.Join(meta, " · ")))
		}
	}
	return strings.Join(lines, "\n")
}

// scoreBar renders a fixed-width horizontal gauge for a 0-100 value.
func scoreBar(value int, color lipgloss.Color, width int) string {
	filled := value * width / 100
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(color).Render(bar)
}

func truncateLabel(s string, width int) string {
	if width < 4 {
		width = 4
	}
	return runewidth.Truncate(s, width, "…")
}
