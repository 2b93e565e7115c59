package api

import (
	"context"
	"encoding/json"
	"fmt"
)

// DramaScore is the secondary enrichment result: an intensity index plus an
// optional per-emotion breakdown. Emotions is nil when the backend omits it.
type DramaScore struct {
	Index    int
	Emotions map[string]int
}

// dramaEnvelope carries the drama endpoint's response. The drama_index
// field is a loosely shaped array: [score] or [score, {emotion: value}].
type dramaEnvelope struct {
	Status     string            `json:"status"`
	Message    string            `json:"message"`
	DramaIndex []json.RawMessage `json:"drama_index"`
}

// ScoreDrama requests the drama index and emotion breakdown for text.
func (c *Client) ScoreDrama(ctx context.Context, text string) (*DramaScore, error) {
	req, err := c.newJSONRequest(ctx, "/drama-index", map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	var env dramaEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("decode drama response: %w", err)}
	}
	if env.Status != "success" {
		return nil, &ServiceError{Status: env.Status, Message: env.Message}
	}
	if len(env.DramaIndex) == 0 {
		return nil, &TransportError{Err: fmt.Errorf("drama_index missing from response")}
	}

	var index float64
	if err := json.Unmarshal(env.DramaIndex[0], &index); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("decode drama score: %w", err)}
	}

	score := &DramaScore{Index: int(index)}

	if len(env.DramaIndex) > 1 {
		var raw map[string]float64
		if err := json.Unmarshal(env.DramaIndex[1], &raw); err == nil && len(raw) > 0 {
			score.Emotions = scaleEmotions(raw)
		}
	}

	return score, nil
}

// scaleEmotions converts emotion values to 0-100 intensities. The model
// emits softmax probabilities in [0, 1]; newer backends pre-scale them.
func scaleEmotions(raw map[string]float64) map[string]int {
	scaled := make(map[string]int, len(raw))
	probabilities := true
	for _, v := range raw {
		if v > 1.0 {
			probabilities = false
			break
		}
	}
	for name, v := range raw {
		if probabilities {
			v *= 100
		}
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		scaled[name] = int(v + 0.5)
	}
	return scaled
}

// SearchSimilar looks up articles related to the current analysis. The
// returned list may be empty; that is a valid "no results" outcome.
func (c *Client) SearchSimilar(ctx context.Context, query, url string) ([]Article, error) {
	req, err := c.newJSONRequest(ctx, "/search-similar", map[string]string{
		"query": query,
		"url":   url,
	})
	if err != nil {
		return nil, err
	}

	env, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var articles []Article
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &articles); err != nil {
			return nil, &TransportError{Err: fmt.Errorf("decode articles: %w", err)}
		}
	}
	return articles, nil
}
