package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// AnalyzeURL submits an article URL for scraping and bias analysis.
func (c *Client) AnalyzeURL(ctx context.Context, url string) (*AnalysisResult, error) {
	req, err := c.newJSONRequest(ctx, "/fetch-url", map[string]string{"url": url})
	if err != nil {
		return nil, err
	}
	return c.analysisRequest(req)
}

// AnalyzeVideoURL submits a video URL; the backend downloads and
// transcribes it before scoring.
func (c *Client) AnalyzeVideoURL(ctx context.Context, url string) (*AnalysisResult, error) {
	req, err := c.newJSONRequest(ctx, "/fetch-video", map[string]string{"url": url})
	if err != nil {
		return nil, err
	}
	return c.analysisRequest(req)
}

// AnalyzeAudioFile uploads a local audio file for transcription and analysis.
func (c *Client) AnalyzeAudioFile(ctx context.Context, path string) (*AnalysisResult, error) {
	req, err := c.newUploadRequest(ctx, "/convert-audio", path)
	if err != nil {
		return nil, err
	}
	return c.analysisRequest(req)
}

// AnalyzeVideoFile uploads a local video file for transcription and analysis.
func (c *Client) AnalyzeVideoFile(ctx context.Context, path string) (*AnalysisResult, error) {
	req, err := c.newUploadRequest(ctx, "/convert-video", path)
	if err != nil {
		return nil, err
	}
	return c.analysisRequest(req)
}

func (c *Client) analysisRequest(req *http.Request) (*AnalysisResult, error) {
	env, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var w wireResult
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &w); err != nil {
			return nil, &TransportError{Err: fmt.Errorf("decode analysis payload: %w", err)}
		}
	}
	return w.normalize(), nil
}

// newUploadRequest builds a multipart upload request with the file under
// the "file" field. The whole file is buffered; uploads are short podcast
// or clip sized, not streaming media.
func (c *Client) newUploadRequest(ctx context.Context, path, filePath string) (*http.Request, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, nil
}
