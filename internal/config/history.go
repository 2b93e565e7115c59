package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// historyLimit caps how many recent submissions are kept.
const historyLimit = 20

// History remembers what the user submitted recently so the idle screen
// can offer quick re-analysis. Only the submission targets are stored;
// analysis results are session-local and never persisted.
type History struct {
	Version   string         `json:"version"`
	UpdatedAt time.Time      `json:"updated_at"`
	Entries   []HistoryEntry `json:"entries"`
}

// HistoryEntry is one past submission. Target is a URL for url/video
// submissions and a file path for uploads.
type HistoryEntry struct {
	Mode        string `json:"mode"` // "url", "audio", "video"
	Target      string `json:"target"`
	Title       string `json:"title,omitempty"`
	SubmittedAt string `json:"submitted_at"`
}

func GetHistoryPath() string {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "history.json")
}

func LoadHistory() (*History, error) {
	path := GetHistoryPath()
	if path == "" {
		return &History{}, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &History{Version: "1.0"}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}

	return &h, nil
}

func (h *History) Save() error {
	path := GetHistoryPath()
	if path == "" {
		return fmt.Errorf("cannot determine history path")
	}

	h.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// Add records a submission, newest first, deduplicating by mode+target.
func (h *History) Add(mode, target, title string) {
	entries := []HistoryEntry{{
		Mode:        mode,
		Target:      target,
		Title:       title,
		SubmittedAt: time.Now().Format(time.RFC3339),
	}}
	for _, e := range h.Entries {
		if e.Mode == mode && e.Target == target {
			continue
		}
		entries = append(entries, e)
		if len(entries) == historyLimit {
			break
		}
	}
	h.Entries = entries
}

// Recent returns up to n entries, newest first.
func (h *History) Recent(n int) []HistoryEntry {
	if n > len(h.Entries) {
		n = len(h.Entries)
	}
	return h.Entries[:n]
}
