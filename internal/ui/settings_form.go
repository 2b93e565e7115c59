package ui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spinfilter/spinfilter/internal/config"
)

// RunSettingsForm shows an interactive form for the handful of settings
// worth editing outside the config file, then persists them.
func RunSettingsForm(cfg *config.Config) error {
	backendURL := cfg.BackendURL
	theme := cfg.Theme
	if theme == "" {
		theme = "default"
	}
	logLevel := cfg.LogLevel
	if logLevel == "" {
		logLevel = "info"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Backend URL").
				Description("Base URL of the analysis backend").
				Value(&backendURL).
				Validate(validateBackendURL),
			huh.NewSelect[string]().
				Title("Theme").
				Options(huh.NewOptions(GetThemeNames()...)...).
				Value(&theme),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&logLevel),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.BackendURL = strings.TrimRight(strings.TrimSpace(backendURL), "/")
	cfg.Theme = theme
	cfg.LogLevel = logLevel

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func validateBackendURL(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("backend URL is required")
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("enter a full URL, e.g. http://127.0.0.1:5000")
	}
	return nil
}
