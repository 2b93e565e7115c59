package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// mockHTTPClient is a test double for HTTPClient
type mockHTTPClient struct {
	responses []*http.Response
	errors    []error
	callCount int
	requests  []*http.Request
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	// Capture a copy of the request body so tests can inspect it
	if req.Body != nil {
		bodyBytes, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		clone := req.Clone(req.Context())
		clone.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		m.requests = append(m.requests, clone)
	} else {
		m.requests = append(m.requests, req)
	}
	defer func() { m.callCount++ }()
	if m.callCount < len(m.errors) && m.errors[m.callCount] != nil {
		return nil, m.errors[m.callCount]
	}
	if m.callCount < len(m.responses) {
		return m.responses[m.callCount], nil
	}
	return nil, io.EOF
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestAnalyzeURLSuccess(t *testing.T) {
	body := `{
		"status": "ok",
		"data": {
			"bias_score": 73,
			"summary": "A neutral retelling.",
			"title": "Some Headline",
			"authors": ["A. Writer"],
			"date": "2026-08-30",
			"top_image": "https://example.com/img.jpg",
			"keywords": ["economy", "policy", "inflation", "markets"],
			"reasons": ["loaded language"],
			"paragraphs": [
				{"text": "X", "bias_score": 5, "reason_biased": "loaded language", "unbiased_replacement": "Y"},
				{"text": "Plain facts.", "bias_score": 0}
			]
		}
	}`

	mock := &mockHTTPClient{responses: []*http.Response{jsonResponse(200, body)}}
	client := NewClient(WithHTTPClient(mock))

	result, err := client.AnalyzeURL(context.Background(), "https://example.com/a")
	if err != nil {
		t.Fatalf("AnalyzeURL failed: %v", err)
	}

	if result.BiasScore == nil || *result.BiasScore != 73 {
		t.Errorf("expected bias score 73, got %v", result.BiasScore)
	}
	if result.Title != "Some Headline" {
		t.Errorf("unexpected title %q", result.Title)
	}
	if len(result.Paragraphs) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(result.Paragraphs))
	}
	if !result.Paragraphs[0].Biased() {
		t.Error("paragraph 0 should be biased")
	}
	if result.Paragraphs[1].Biased() {
		t.Error("paragraph 1 should not be biased")
	}

	// Request shape: POST /fetch-url with a JSON url payload
	req := mock.requests[0]
	if req.Method != http.MethodPost || !strings.HasSuffix(req.URL.Path, "/fetch-url") {
		t.Errorf("unexpected request %s %s", req.Method, req.URL.Path)
	}
	var payload map[string]string
	reqBody, _ := io.ReadAll(req.Body)
	if err := json.Unmarshal(reqBody, &payload); err != nil {
		t.Fatalf("request body not JSON: %v", err)
	}
	if payload["url"] != "https://example.com/a" {
		t.Errorf("unexpected url payload %q", payload["url"])
	}
}

func TestAnalyzeURLAbsentScoreStaysAbsent(t *testing.T) {
	mock := &mockHTTPClient{responses: []*http.Response{
		jsonResponse(200, `{"status":"ok","data":{"summary":"pending analysis"}}`),
	}}
	client := NewClient(WithHTTPClient(mock))

	result, err := client.AnalyzeURL(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("AnalyzeURL failed: %v", err)
	}
	if result.BiasScore != nil {
		t.Errorf("absent bias_score must normalize to nil, got %d", *result.BiasScore)
	}
}

func TestAnalyzeURLServiceError(t *testing.T) {
	mock := &mockHTTPClient{responses: []*http.Response{
		jsonResponse(500, `{"status":"error","message":"URL not provided"}`),
	}}
	client := NewClient(WithHTTPClient(mock))

	_, err := client.AnalyzeURL(context.Background(), "https://example.com")
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %T: %v", err, err)
	}
	if svcErr.Error() != "URL not provided" {
		t.Errorf("expected server message verbatim, got %q", svcErr.Error())
	}
}

func TestAnalyzeURLTransportError(t *testing.T) {
	mock := &mockHTTPClient{errors: []error{errors.New("connection refused")}}
	client := NewClient(WithHTTPClient(mock))

	_, err := client.AnalyzeURL(context.Background(), "https://example.com")
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "Could not reach the server") {
		t.Errorf("expected generic unreachable message, got %q", err.Error())
	}
	if mock.callCount != 1 {
		t.Errorf("expected exactly 1 attempt (no retries), got %d", mock.callCount)
	}
}

func TestAnalyzeURLMalformedBody(t *testing.T) {
	mock := &mockHTTPClient{responses: []*http.Response{
		jsonResponse(200, `<html>gateway timeout</html>`),
	}}
	client := NewClient(WithHTTPClient(mock))

	_, err := client.AnalyzeURL(context.Background(), "https://example.com")
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError for non-envelope body, got %T", err)
	}
}

func TestAnalyzeAudioFileUpload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp3")
	if err := os.WriteFile(path, []byte("fake audio bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/convert-audio" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("expected multipart body: %v", err)
		}
		f, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file field: %v", err)
		}
		defer f.Close()
		if header.Filename != "clip.mp3" {
			t.Errorf("unexpected filename %q", header.Filename)
		}
		content, _ := io.ReadAll(f)
		if string(content) != "fake audio bytes" {
			t.Errorf("upload content mismatch")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status": "ok",
			"data":   map[string]any{"text": "the transcript", "bias_score": 12},
		})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	result, err := client.AnalyzeAudioFile(context.Background(), path)
	if err != nil {
		t.Fatalf("AnalyzeAudioFile failed: %v", err)
	}
	if result.Transcript != "the transcript" {
		t.Errorf("expected transcript, got %q", result.Transcript)
	}
	if result.BiasScore == nil || *result.BiasScore != 12 {
		t.Errorf("expected bias score 12, got %v", result.BiasScore)
	}
}

func TestAnalyzeVideoURLEndpoint(t *testing.T) {
	mock := &mockHTTPClient{responses: []*http.Response{
		jsonResponse(200, `{"status":"ok","data":{"summary":"video summary"}}`),
	}}
	client := NewClient(WithHTTPClient(mock))

	result, err := client.AnalyzeVideoURL(context.Background(), "https://youtube.com/watch?v=x")
	if err != nil {
		t.Fatalf("AnalyzeVideoURL failed: %v", err)
	}
	if result.Summary != "video summary" {
		t.Errorf("unexpected summary %q", result.Summary)
	}
	if !strings.HasSuffix(mock.requests[0].URL.Path, "/fetch-video") {
		t.Errorf("unexpected path %s", mock.requests[0].URL.Path)
	}
}

func TestScoreDrama(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantErr      bool
		wantIndex    int
		wantEmotions map[string]int
	}{
		{
			name:      "score with probability emotions",
			body:      `{"status":"success","drama_index":[62, {"anger": 0.4, "fear": 0.25}]}`,
			wantIndex: 62,
			wantEmotions: map[string]int{
				"anger": 40,
				"fear":  25,
			},
		},
		{
			name:      "score with pre-scaled emotions",
			body:      `{"status":"success","drama_index":[88, {"anger": 70, "joy": 5}]}`,
			wantIndex: 88,
			wantEmotions: map[string]int{
				"anger": 70,
				"joy":   5,
			},
		},
		{
			name:      "score without emotions",
			body:      `{"status":"success","drama_index":[30]}`,
			wantIndex: 30,
		},
		{
			name:    "non-success status",
			body:    `{"status":"error","message":"model unavailable"}`,
			wantErr: true,
		},
		{
			name:    "empty drama_index",
			body:    `{"status":"success","drama_index":[]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockHTTPClient{responses: []*http.Response{jsonResponse(200, tt.body)}}
			client := NewClient(WithHTTPClient(mock))

			score, err := client.ScoreDrama(context.Background(), "some text")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ScoreDrama failed: %v", err)
			}
			if score.Index != tt.wantIndex {
				t.Errorf("index = %d, want %d", score.Index, tt.wantIndex)
			}
			if tt.wantEmotions == nil {
				if score.Emotions != nil {
					t.Errorf("expected nil emotions, got %v", score.Emotions)
				}
				return
			}
			for name, want := range tt.wantEmotions {
				if got := score.Emotions[name]; got != want {
					t.Errorf("emotion %q = %d, want %d", name, got, want)
				}
			}
		})
	}
}

func TestSearchSimilar(t *testing.T) {
	body := `{"status":"ok","data":[
		{"title":"Other take","url":"https://example.org/b","source_name":"Example Org","published_at":"2026-08-29"}
	]}`
	mock := &mockHTTPClient{responses: []*http.Response{jsonResponse(200, body)}}
	client := NewClient(WithHTTPClient(mock))

	articles, err := client.SearchSimilar(context.Background(), "economy policy inflation", "https://example.com/a")
	if err != nil {
		t.Fatalf("SearchSimilar failed: %v", err)
	}
	if len(articles) != 1 || articles[0].SourceName != "Example Org" {
		t.Errorf("unexpected articles %+v", articles)
	}

	var payload map[string]string
	reqBody, _ := io.ReadAll(mock.requests[0].Body)
	json.Unmarshal(reqBody, &payload)
	if payload["query"] != "economy policy inflation" {
		t.Errorf("unexpected query %q", payload["query"])
	}
	if payload["url"] != "https://example.com/a" {
		t.Errorf("unexpected url %q", payload["url"])
	}
}

func TestSearchSimilarFailure(t *testing.T) {
	mock := &mockHTTPClient{responses: []*http.Response{
		jsonResponse(200, `{"status":"error","message":"quota exceeded"}`),
	}}
	client := NewClient(WithHTTPClient(mock))

	_, err := client.SearchSimilar(context.Background(), "q", "u")
	if err == nil {
		t.Fatal("expected error on non-ok status")
	}
}
