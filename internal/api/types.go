package api

import (
	"encoding/json"
	"strings"
)

// envelope is the wire shape shared by all backend endpoints. The backend
// signals failure through the status field, not the HTTP status code, so
// every response body is decoded into this first.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e envelope) ok() bool {
	return e.Status == "ok" || e.Status == "success"
}

// wireResult is the raw analysis payload as the backend emits it.
// Optional numeric fields are pointers so "not scored yet" stays
// distinguishable from a confirmed zero.
type wireResult struct {
	BiasScore    *int            `json:"bias_score"`
	Summary      string          `json:"summary"`
	Text         string          `json:"text"` // transcript for audio submissions
	Title        string          `json:"title"`
	Authors      []string        `json:"authors"`
	Date         string          `json:"date"`
	TopImage     string          `json:"top_image"`
	Keywords     []string        `json:"keywords"`
	Reasons      []string        `json:"reasons"`
	BiasSummary  string          `json:"bias_summary"`
	DramaSummary string          `json:"drama_summary"`
	Paragraphs   []wireParagraph `json:"paragraphs"`
}

type wireParagraph struct {
	Text                string `json:"text"`
	BiasScore           int    `json:"bias_score"`
	UnbiasedReplacement string `json:"unbiased_replacement"`
	ReasonBiased        string `json:"reason_biased"`
}

// AnalysisResult is the normalized primary analysis. It is created whole
// from one response and replaced wholesale on the next submission, never
// merged across submissions.
type AnalysisResult struct {
	BiasScore    *int
	Summary      string
	Transcript   string
	Title        string
	Authors      []string
	Date         string
	TopImage     string
	Keywords     []string
	Reasons      []string
	BiasSummary  string
	DramaSummary string
	Paragraphs   []Paragraph
}

// Paragraph is one segment of the analyzed text with its per-paragraph
// bias verdict and suggested rewrite.
type Paragraph struct {
	Text                string
	BiasScore           int
	UnbiasedReplacement string
	ReasonBiased        string
}

// Biased reports whether the backend flagged this paragraph. A zero score
// means unbiased, matching the backend's convention.
func (p Paragraph) Biased() bool {
	return p.BiasScore != 0
}

// Unchanged reports whether the rewrite adds nothing over the original,
// either because the backend omitted it or returned the same text.
func (p Paragraph) Unchanged() bool {
	replacement := strings.TrimSpace(p.UnbiasedReplacement)
	return replacement == "" || replacement == strings.TrimSpace(p.Text)
}

// EnrichmentText returns the text the drama stage should score: the
// transcript for audio submissions, the summary otherwise.
func (r *AnalysisResult) EnrichmentText(audio bool) string {
	if audio && r.Transcript != "" {
		return r.Transcript
	}
	return r.Summary
}

func (w wireResult) normalize() *AnalysisResult {
	result := &AnalysisResult{
		BiasScore:    w.BiasScore,
		Summary:      w.Summary,
		Transcript:   w.Text,
		Title:        w.Title,
		Authors:      w.Authors,
		Date:         w.Date,
		TopImage:     w.TopImage,
		Keywords:     w.Keywords,
		Reasons:      w.Reasons,
		BiasSummary:  w.BiasSummary,
		DramaSummary: w.DramaSummary,
	}
	for _, p := range w.Paragraphs {
		result.Paragraphs = append(result.Paragraphs, Paragraph{
			Text:                p.Text,
			BiasScore:           p.BiasScore,
			UnbiasedReplacement: p.UnbiasedReplacement,
			ReasonBiased:        p.ReasonBiased,
		})
	}
	return result
}

// Article is one similar-article search hit.
type Article struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	SourceName  string `json:"source_name"`
	PublishedAt string `json:"published_at"`
}
