package ui

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spinfilter/spinfilter/internal/api"
	"github.com/spinfilter/spinfilter/internal/classify"
)

// pasteIntoInput replaces the URL input with the clipboard contents.
// Multi-line clipboard text keeps only the first line; a URL never spans
// lines.
func (m *Model) pasteIntoInput() {
	text, err := clipboard.ReadAll()
	if err != nil {
		m.statusMessage = "Clipboard unavailable"
		return
	}
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	m.urlInput.SetValue(strings.TrimSpace(text))
	m.urlInput.CursorEnd()
}

func (m *Model) copySummary() {
	if m.result == nil || m.result.Summary == "" {
		m.statusMessage = "No summary to copy"
		return
	}
	if err := clipboard.WriteAll(m.result.Summary); err != nil {
		m.statusMessage = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.statusMessage = "Summary copied to clipboard"
}

// reportDocument is the JSON shape of an exported analysis: the primary
// result plus whatever enrichment arrived, flattened for pasting into
// notes or another tool.
type reportDocument struct {
	Title        string         `json:"title,omitempty"`
	URL          string         `json:"url,omitempty"`
	Mode         string         `json:"mode"`
	AnalyzedAt   string         `json:"analyzed_at"`
	BiasScore    *int           `json:"bias_score,omitempty"`
	BiasTier     string         `json:"bias_tier,omitempty"`
	Summary      string         `json:"summary,omitempty"`
	BiasSummary  string         `json:"bias_summary,omitempty"`
	Reasons      []string       `json:"reasons,omitempty"`
	Keywords     []string       `json:"keywords,omitempty"`
	Paragraphs   []reportPara   `json:"paragraphs,omitempty"`
	DramaIndex   *int           `json:"drama_index,omitempty"`
	DramaTier    string         `json:"drama_tier,omitempty"`
	Emotions     map[string]int `json:"emotions,omitempty"`
	SimilarLinks []api.Article  `json:"similar_articles,omitempty"`
}

type reportPara struct {
	Text      string `json:"text"`
	BiasScore int    `json:"bias_score"`
	Rewrite   string `json:"rewrite,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

func (m *Model) copyReport() {
	if m.result == nil {
		return
	}

	doc := reportDocument{
		Title:       m.result.Title,
		URL:         m.submittedURL,
		Mode:        m.mode.String(),
		AnalyzedAt:  m.submittedAt.Format(time.RFC3339),
		BiasScore:   m.result.BiasScore,
		Summary:     m.result.Summary,
		BiasSummary: m.result.BiasSummary,
		Reasons:     m.result.Reasons,
		Keywords:    m.result.Keywords,
	}
	if m.result.BiasScore != nil {
		doc.BiasTier = classify.BiasTier(classify.Clamp(*m.result.BiasScore)).Label
	}
	for _, p := range m.result.Paragraphs {
		rp := reportPara{Text: p.Text, BiasScore: p.BiasScore}
		if p.Biased() {
			if !p.Unchanged() {
				rp.Rewrite = p.UnbiasedReplacement
			}
			rp.Reason = p.ReasonBiased
		}
		doc.Paragraphs = append(doc.Paragraphs, rp)
	}

	st := m.pipeline.State()
	if st.DramaIndex != nil {
		doc.DramaIndex = st.DramaIndex
		doc.DramaTier = classify.DramaTier(classify.Clamp(*st.DramaIndex)).Label
		doc.Emotions = st.Emotions
	}
	if len(st.Similar) > 0 {
		doc.SimilarLinks = st.Similar
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		m.statusMessage = fmt.Sprintf("Export failed: %v", err)
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		m.statusMessage = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.statusMessage = "Report copied to clipboard as JSON"
}
