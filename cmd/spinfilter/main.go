package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spinfilter/spinfilter/internal/config"
	"github.com/spinfilter/spinfilter/internal/ui"
)

func main() {
	setup := flag.Bool("setup", false, "run interactive setup and exit")
	writeConfig := flag.Bool("write-config", false, "write an example config file and exit")
	flag.Parse()

	if *writeConfig {
		if err := config.SaveExampleConfig(); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *setup {
		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if err := ui.RunSettingsForm(cfg); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	m := ui.NewModel()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(), // Use alternate screen buffer (clears terminal)
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
