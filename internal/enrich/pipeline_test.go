package enrich

import (
	"testing"
	"time"

	"github.com/spinfilter/spinfilter/internal/api"
)

func TestSimilarQuery(t *testing.T) {
	tests := []struct {
		name   string
		result *api.AnalysisResult
		want   string
	}{
		{
			name:   "first three keywords",
			result: &api.AnalysisResult{Keywords: []string{"economy", "policy", "inflation", "markets"}},
			want:   "economy policy inflation",
		},
		{
			name:   "fewer than three keywords",
			result: &api.AnalysisResult{Keywords: []string{"economy"}},
			want:   "economy",
		},
		{
			name:   "summary fallback takes six words",
			result: &api.AnalysisResult{Summary: "one two three four five six seven eight"},
			want:   "one two three four five six",
		},
		{
			name:   "short summary",
			result: &api.AnalysisResult{Summary: "just a few words"},
			want:   "just a few words",
		},
		{
			name:   "nothing available",
			result: &api.AnalysisResult{},
			want:   "",
		},
		{
			name:   "nil result",
			result: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SimilarQuery(tt.result); got != tt.want {
				t.Errorf("SimilarQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBeginSimilarSingleFlight(t *testing.T) {
	p := NewPipeline(time.Minute)

	if !p.BeginSimilar() {
		t.Fatal("first BeginSimilar should start a fetch")
	}
	if p.BeginSimilar() {
		t.Error("BeginSimilar while in flight should be refused")
	}

	p.FinishSimilar([]api.Article{{Title: "a"}})
	if p.BeginSimilar() {
		t.Error("BeginSimilar with populated results should be refused")
	}

	// A new submission resets the guard.
	p.Reset()
	if !p.BeginSimilar() {
		t.Error("BeginSimilar after Reset should start a fetch")
	}
}

func TestFinishSimilarNilBecomesEmpty(t *testing.T) {
	p := NewPipeline(time.Minute)
	p.BeginSimilar()
	p.FinishSimilar(nil)

	st := p.State()
	if st.Similar == nil {
		t.Fatal("failed search must store an empty list, not nil")
	}
	if len(st.Similar) != 0 {
		t.Errorf("expected empty list, got %d articles", len(st.Similar))
	}
	if st.SimilarInFlight {
		t.Error("fetch should no longer be in flight")
	}
}

func TestResetClearsState(t *testing.T) {
	p := NewPipeline(time.Minute)

	score := &api.DramaScore{Index: 44, Emotions: map[string]int{"anger": 30}}
	p.ApplyDrama(score)
	p.BeginSimilar()
	p.FinishSimilar([]api.Article{{Title: "a"}})

	p.Reset()
	st := p.State()
	if st.DramaIndex != nil || st.Emotions != nil || st.Similar != nil || st.SimilarInFlight {
		t.Errorf("Reset left residual state: %+v", st)
	}
}

func TestDramaCache(t *testing.T) {
	p := NewPipeline(time.Minute)

	if _, found := p.CachedDrama("some text"); found {
		t.Fatal("cache should start empty")
	}

	p.RememberDrama("some text", &api.DramaScore{Index: 62, Emotions: map[string]int{"fear": 25}})

	score, found := p.CachedDrama("some text")
	if !found {
		t.Fatal("expected cache hit")
	}
	if score.Index != 62 || score.Emotions["fear"] != 25 {
		t.Errorf("unexpected cached score %+v", score)
	}

	if _, found := p.CachedDrama("different text"); found {
		t.Error("different text must not hit the cache")
	}

	// The session cache deliberately survives a reset.
	p.Reset()
	if _, found := p.CachedDrama("some text"); !found {
		t.Error("cache should survive Reset")
	}
}

func TestSimilarCache(t *testing.T) {
	p := NewPipeline(time.Minute)

	articles := []api.Article{{Title: "Other take", URL: "https://example.org/b"}}
	p.RememberSimilar("economy policy", articles)

	got, found := p.CachedSimilar("economy policy")
	if !found || len(got) != 1 || got[0].Title != "Other take" {
		t.Errorf("unexpected cache result %v found=%v", got, found)
	}
}

func TestApplyDramaNilIsNoop(t *testing.T) {
	p := NewPipeline(time.Minute)
	p.ApplyDrama(nil)
	if p.State().DramaIndex != nil {
		t.Error("nil score must not set an index")
	}
}
