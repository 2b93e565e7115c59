// Package enrich owns the best-effort enrichment state layered on top of a
// primary analysis: the drama/emotion score and the similar-articles list.
// Enrichment is strictly additive: nothing in here may surface an error to
// the main result view; failures leave fields absent and get logged.
package enrich

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/spinfilter/spinfilter/internal/api"
)

const maxQueryKeywords = 3

// State is the enrichment attached to the current analysis. A nil
// DramaIndex means the drama stage hasn't resolved (or failed); a nil
// Similar slice means no search has completed yet, while an empty non-nil
// slice means the search finished with no results.
type State struct {
	DramaIndex      *int
	Emotions        map[string]int
	Similar         []api.Article
	SimilarInFlight bool
}

// Pipeline holds enrichment state for the current result plus a session
// cache so re-analyzing the same text or query skips the network.
type Pipeline struct {
	state State
	cache *gocache.Cache
}

// NewPipeline creates a pipeline with the given cache TTL.
func NewPipeline(cacheTTL time.Duration) *Pipeline {
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Minute
	}
	return &Pipeline{
		cache: gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// State returns the current enrichment state.
func (p *Pipeline) State() State {
	return p.state
}

// Reset clears all enrichment. The controller calls this synchronously
// before dispatching a new primary request so stale enrichment from the
// previous result can never be shown against a new one. The session cache
// survives resets on purpose.
func (p *Pipeline) Reset() {
	p.state = State{}
}

// ApplyDrama stores a resolved drama score.
func (p *Pipeline) ApplyDrama(score *api.DramaScore) {
	if score == nil {
		return
	}
	index := score.Index
	p.state.DramaIndex = &index
	p.state.Emotions = score.Emotions
}

// CachedDrama returns a previously scored drama result for text, if any.
func (p *Pipeline) CachedDrama(text string) (*api.DramaScore, bool) {
	if v, found := p.cache.Get(dramaKey(text)); found {
		score := v.(api.DramaScore)
		return &score, true
	}
	return nil, false
}

// RememberDrama caches a drama score under its source text.
func (p *Pipeline) RememberDrama(text string, score *api.DramaScore) {
	if score != nil {
		p.cache.SetDefault(dramaKey(text), *score)
	}
}

// BeginSimilar marks the tertiary fetch as started. It returns false when
// the fetch would be redundant: results are already populated for this
// result, or a fetch is in flight. Single task queue, so a bool guard is
// all the single-flight protection needed.
func (p *Pipeline) BeginSimilar() bool {
	if p.state.Similar != nil || p.state.SimilarInFlight {
		return false
	}
	p.state.SimilarInFlight = true
	return true
}

// FinishSimilar stores the search outcome. Failed searches pass nil and
// get an empty list, so the view renders "no results" instead of a
// spinner that never resolves.
func (p *Pipeline) FinishSimilar(articles []api.Article) {
	if articles == nil {
		articles = []api.Article{}
	}
	p.state.Similar = articles
	p.state.SimilarInFlight = false
}

// CachedSimilar returns previously fetched articles for a query.
func (p *Pipeline) CachedSimilar(query string) ([]api.Article, bool) {
	if v, found := p.cache.Get(similarKey(query)); found {
		return v.([]api.Article), true
	}
	return nil, false
}

// RememberSimilar caches a successful (possibly empty) search outcome.
func (p *Pipeline) RememberSimilar(query string, articles []api.Article) {
	p.cache.SetDefault(similarKey(query), articles)
}

// SimilarQuery derives the search query for a result: the first three
// keywords joined by spaces, else the first six words of the summary,
// else empty.
func SimilarQuery(result *api.AnalysisResult) string {
	if result == nil {
		return ""
	}
	if len(result.Keywords) > 0 {
		keywords := result.Keywords
		if len(keywords) > maxQueryKeywords {
			keywords = keywords[:maxQueryKeywords]
		}
		return strings.Join(keywords, " ")
	}
	words := strings.Fields(result.Summary)
	if len(words) > 6 {
		words = words[:6]
	}
	return strings.Join(words, " ")
}

func dramaKey(text string) string {
	h := fnv.New64a()
	h.Write([]byte(text))
	return fmt.Sprintf("drama:%x", h.Sum64())
}

func similarKey(query string) string {
	return "similar:" + query
}
