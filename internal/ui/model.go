package ui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spinfilter/spinfilter/internal/api"
	"github.com/spinfilter/spinfilter/internal/config"
	"github.com/spinfilter/spinfilter/internal/enrich"
	"github.com/spinfilter/spinfilter/internal/logging"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoading:
		return "Loading"
	case StateSuccess:
		return "Success"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// InputMode selects which kind of material the next submission sends.
type InputMode int

const (
	ModeURL InputMode = iota
	ModeAudio
	ModeVideo

	modeCount = 3
)

func (m InputMode) String() string {
	switch m {
	case ModeAudio:
		return "audio"
	case ModeVideo:
		return "video"
	default:
		return "url"
	}
}

func (m InputMode) Label() string {
	switch m {
	case ModeAudio:
		return "Audio File"
	case ModeVideo:
		return "Video"
	default:
		return "Article URL"
	}
}

type Model struct {
	state  State
	mode   InputMode
	width  int
	height int
	styles Styles
	keys   KeyMap

	themeIndex int
	showHelp   bool

	urlInput     textinput.Model
	picker       filepicker.Model
	pickingFile  bool
	selectedFile string

	spinner  spinner.Model
	viewport viewport.Model

	// generation stamps every dispatched request. A completion message
	// carrying a stale generation belongs to a superseded submission and
	// is dropped on arrival.
	generation int

	result         *api.AnalysisResult
	errMsg         string
	statusMessage  string
	submittedAudio bool
	submittedURL   string
	submittedAt    time.Time

	pipeline        *enrich.Pipeline
	reasons         reasonToggles
	paragraphCursor int

	historyCursor int

	client  *api.Client
	cfg     *config.Config
	history *config.History
	logger  *slog.Logger
}

func NewModel() *Model {
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{BackendURL: "http://127.0.0.1:5000", CacheTTLMinutes: 15, RequestTimeoutS: 120}
	}

	history, err := config.LoadHistory()
	if err != nil {
		history = nil // nil-checked by callers
	}

	themeNames := GetThemeNames()
	themeIndex := -1
	themeName := cfg.Theme

	for i, name := range themeNames {
		if name == themeName {
			themeIndex = i
			break
		}
	}

	if themeIndex == -1 {
		themeIndex = 0
		themeName = themeNames[0]
	}

	ti := textinput.New()
	ti.Placeholder = "https://example.com/article"
	ti.CharLimit = 2048
	ti.Width = 60
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(Themes[themeName].Primary))

	fp := filepicker.New()
	fp.AllowedTypes = audioExtensions
	if home, err := os.UserHomeDir(); err == nil {
		fp.CurrentDirectory = home
	}

	logPath := ""
	if dir, err := config.GetConfigDir(); err == nil {
		logPath = filepath.Join(dir, "spinfilter.log")
	}

	client := api.NewClient(
		api.WithBaseURL(cfg.BackendURL),
		api.WithTimeout(time.Duration(cfg.RequestTimeoutS)*time.Second),
	)

	m := &Model{
		state:         StateIdle,
		mode:          ModeURL,
		styles:        NewStyles(Themes[themeName]),
		keys:          DefaultKeyMap(),
		themeIndex:    themeIndex,
		urlInput:      ti,
		picker:        fp,
		spinner:       s,
		viewport:      viewport.New(80, 20),
		pipeline:      enrich.NewPipeline(time.Duration(cfg.CacheTTLMinutes) * time.Minute),
		reasons:       newReasonToggles(),
		historyCursor: -1,
		client:        client,
		cfg:           cfg,
		history:       history,
		logger:        logging.New(logPath, cfg.LogLevel),
	}
	return m
}

var audioExtensions = []string{".mp3", ".wav", ".m4a", ".ogg", ".flac"}
var videoExtensions = []string{".mp4", ".mov", ".mkv", ".webm", ".avi"}

// Completion messages. Each carries the generation that dispatched it.

type analysisDoneMsg struct {
	gen    int
	result *api.AnalysisResult
	err    error
}

type dramaDoneMsg struct {
	gen   int
	score *api.DramaScore
}

type similarDoneMsg struct {
	gen      int
	articles []api.Article
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, textinput.Blink)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.urlInput.Width = msg.Width - 20
		m.viewport.Width = msg.Width - 2
		m.viewport.Height = msg.Height - 6
		if m.viewport.Height < 3 {
			m.viewport.Height = 3
		}
		m.picker.Height = msg.Height - 8
		if m.result != nil {
			m.refreshResultView()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case analysisDoneMsg:
		if msg.gen != m.generation {
			return m, nil
		}
		if msg.err != nil {
			m.state = StateFailed
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.result = msg.result
		m.state = StateSuccess
		m.reasons.Reset()
		m.paragraphCursor = 0
		m.viewport.GotoTop()
		m.recordHistory()
		m.refreshResultView()
		return m, m.startDrama()

	case dramaDoneMsg:
		if msg.gen != m.generation {
			return m, nil
		}
		// A nil score is a failed or skipped stage. The pipeline ignores
		// it and the drama section simply stays absent.
		m.pipeline.ApplyDrama(msg.score)
		m.refreshResultView()
		return m, nil

	case similarDoneMsg:
		// A failed search arrives as nil and is stored as an empty list:
		// silent, but terminal, so the section shows "no results" instead
		// of searching forever.
		if msg.gen != m.generation {
			return m, nil
		}
		m.pipeline.FinishSimilar(msg.articles)
		m.refreshResultView()
		return m, nil
	}

	if m.pickingFile {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) View() string {
	var content string
	centered := true

	switch {
	case m.pickingFile:
		content = m.pickerView()
		centered = false
	case m.state == StateLoading:
		content = m.loadingView()
	case m.state == StateSuccess:
		content = m.resultScreen()
		centered = false
	case m.state == StateFailed:
		content = m.failedView()
	default:
		content = m.idleView()
	}

	if centered && m.width > 0 && m.height > 0 {
		content = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}

	return content
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if keyMatches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.pickingFile {
		return m.handlePickerKeys(msg)
	}

	switch m.state {
	case StateLoading:
		return m, nil
	case StateSuccess:
		return m.handleSuccessKeys(msg)
	case StateFailed:
		return m.handleFailedKeys(msg)
	default:
		return m.handleIdleKeys(msg)
	}
}

func (m *Model) handleIdleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.urlInput.Focused() && m.mode != ModeAudio {
		switch {
		case keyMatches(msg, m.keys.Submit):
			return m, m.submit()
		case keyMatches(msg, m.keys.NextMode):
			m.switchMode(1)
			return m, nil
		case keyMatches(msg, m.keys.PrevMode):
			m.switchMode(-1)
			return m, nil
		case keyMatches(msg, m.keys.Paste):
			m.pasteIntoInput()
			return m, nil
		case keyMatches(msg, m.keys.Back):
			m.urlInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.urlInput, cmd = m.urlInput.Update(msg)
		return m, cmd
	}

	switch {
	case keyMatches(msg, m.keys.Quit):
		return m, tea.Quit
	case keyMatches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case keyMatches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	case keyMatches(msg, m.keys.NextMode):
		m.switchMode(1)
		return m, nil
	case keyMatches(msg, m.keys.PrevMode):
		m.switchMode(-1)
		return m, nil
	case keyMatches(msg, m.keys.FocusInput):
		if m.mode != ModeAudio {
			m.historyCursor = -1
			return m, m.urlInput.Focus()
		}
		return m, nil
	case keyMatches(msg, m.keys.PickFile):
		if m.mode != ModeURL {
			return m, m.openFilePicker()
		}
		return m, nil
	case keyMatches(msg, m.keys.Up):
		m.moveHistoryCursor(-1)
		return m, nil
	case keyMatches(msg, m.keys.Down):
		m.moveHistoryCursor(1)
		return m, nil
	case keyMatches(msg, m.keys.Submit):
		if m.historyCursor >= 0 {
			return m, m.resubmitHistory()
		}
		return m, m.submit()
	case keyMatches(msg, m.keys.Back):
		m.historyCursor = -1
		m.statusMessage = ""
		return m, nil
	}

	return m, nil
}

func (m *Model) handleSuccessKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Quit):
		return m, tea.Quit
	case keyMatches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case keyMatches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		m.refreshResultView()
		return m, nil
	case keyMatches(msg, m.keys.NextMode):
		m.switchMode(1)
		return m, nil
	case keyMatches(msg, m.keys.PrevMode):
		m.switchMode(-1)
		return m, nil
	case keyMatches(msg, m.keys.NewAnalysis):
		m.clearResult()
		return m, m.focusForMode()
	case keyMatches(msg, m.keys.FindSimilar):
		return m, m.startSimilar()
	case keyMatches(msg, m.keys.CopySummary):
		m.copySummary()
		return m, nil
	case keyMatches(msg, m.keys.Export):
		m.copyReport()
		return m, nil
	case msg.String() == "j":
		m.moveParagraphCursor(1)
		return m, nil
	case msg.String() == "k":
		m.moveParagraphCursor(-1)
		return m, nil
	case keyMatches(msg, m.keys.ToggleDiff), keyMatches(msg, m.keys.Submit):
		m.toggleReason()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleFailedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Quit):
		return m, tea.Quit
	case keyMatches(msg, m.keys.NextMode):
		m.switchMode(1)
		return m, nil
	case keyMatches(msg, m.keys.PrevMode):
		m.switchMode(-1)
		return m, nil
	case keyMatches(msg, m.keys.Submit), keyMatches(msg, m.keys.Back):
		m.state = StateIdle
		m.errMsg = ""
		return m, m.focusForMode()
	}
	return m, nil
}

func (m *Model) handlePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if keyMatches(msg, m.keys.Back) {
		m.pickingFile = false
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		m.selectedFile = path
		m.pickingFile = false
		m.statusMessage = ""
	}

	return m, cmd
}

func (m *Model) openFilePicker() tea.Cmd {
	if m.mode == ModeAudio {
		m.picker.AllowedTypes = audioExtensions
	} else {
		m.picker.AllowedTypes = videoExtensions
	}
	m.pickingFile = true
	m.urlInput.Blur()
	return m.picker.Init()
}

// submit validates the current input and, if it passes, supersedes any
// previous submission and dispatches the analysis request. All derived
// state is cleared before the request leaves, never on arrival.
func (m *Model) submit() tea.Cmd {
	if m.state == StateLoading {
		return nil
	}

	target, isFile, ok := m.submitTarget()
	if !ok {
		return nil
	}

	m.generation++
	gen := m.generation
	m.result = nil
	m.errMsg = ""
	m.statusMessage = ""
	m.pipeline.Reset()
	m.reasons.Reset()
	m.paragraphCursor = 0
	m.historyCursor = -1
	m.state = StateLoading
	m.submittedAudio = m.mode == ModeAudio
	m.submittedAt = time.Now()
	if isFile {
		m.submittedURL = ""
	} else {
		m.submittedURL = target
	}

	mode := m.mode
	client := m.client
	logger := m.logger

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx := context.Background()
		var result *api.AnalysisResult
		var err error

		switch {
		case mode == ModeAudio:
			result, err = client.AnalyzeAudioFile(ctx, target)
		case mode == ModeVideo && isFile:
			result, err = client.AnalyzeVideoFile(ctx, target)
		case mode == ModeVideo:
			result, err = client.AnalyzeVideoURL(ctx, target)
		default:
			result, err = client.AnalyzeURL(ctx, target)
		}
		if err != nil {
			logger.Warn("analysis failed", "mode", mode.String(), "error", err)
		}
		return analysisDoneMsg{gen: gen, result: result, err: err}
	})
}

func (m *Model) submitTarget() (string, bool, bool) {
	switch m.mode {
	case ModeAudio:
		if m.selectedFile == "" {
			m.statusMessage = "Choose an audio file first (press f)"
			return "", false, false
		}
		return m.selectedFile, true, true
	case ModeVideo:
		if m.selectedFile != "" {
			return m.selectedFile, true, true
		}
		if url := strings.TrimSpace(m.urlInput.Value()); url != "" {
			return url, false, true
		}
		m.statusMessage = "Enter a video URL or choose a file (press f)"
		return "", false, false
	default:
		url := strings.TrimSpace(m.urlInput.Value())
		if url == "" {
			m.statusMessage = "Enter an article URL first"
			return "", false, false
		}
		return url, false, true
	}
}

// startDrama kicks off the secondary enrichment stage. It runs after
// every successful analysis and fails silently: a broken drama endpoint
// never disturbs the already-rendered result.
func (m *Model) startDrama() tea.Cmd {
	text := m.result.EnrichmentText(m.submittedAudio)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if score, found := m.pipeline.CachedDrama(text); found {
		m.pipeline.ApplyDrama(score)
		m.refreshResultView()
		return nil
	}

	gen := m.generation
	client := m.client
	pipeline := m.pipeline
	logger := m.logger

	return func() tea.Msg {
		score, err := client.ScoreDrama(context.Background(), text)
		if err != nil {
			logger.Warn("drama scoring failed", "error", err)
			return dramaDoneMsg{gen: gen}
		}
		pipeline.RememberDrama(text, score)
		return dramaDoneMsg{gen: gen, score: score}
	}
}

// startSimilar runs the on-demand related-articles search. The pipeline's
// single-flight guard makes repeat presses while a search is running a
// no-op.
func (m *Model) startSimilar() tea.Cmd {
	if m.state != StateSuccess || m.result == nil {
		return nil
	}
	if !m.pipeline.BeginSimilar() {
		return nil
	}

	// The query may be empty when the result carries neither keywords nor
	// a summary; the backend accepts an empty query.
	query := enrich.SimilarQuery(m.result)

	if cached, found := m.pipeline.CachedSimilar(query); found {
		m.pipeline.FinishSimilar(cached)
		m.refreshResultView()
		return nil
	}

	m.refreshResultView()

	gen := m.generation
	client := m.client
	pipeline := m.pipeline
	logger := m.logger
	sourceURL := m.submittedURL

	return func() tea.Msg {
		articles, err := client.SearchSimilar(context.Background(), query, sourceURL)
		if err != nil {
			logger.Warn("similar search failed", "query", query, "error", err)
			return similarDoneMsg{gen: gen}
		}
		pipeline.RememberSimilar(query, articles)
		return similarDoneMsg{gen: gen, articles: articles}
	}
}

func (m *Model) switchMode(delta int) {
	m.mode = InputMode((int(m.mode) + delta + modeCount) % modeCount)
	m.clearResult()
	m.selectedFile = ""
	m.historyCursor = -1
	if m.mode == ModeAudio {
		m.urlInput.Blur()
	} else {
		m.urlInput.Focus()
	}
}

// clearResult drops the current result and all state derived from it.
// The generation advances so that anything still in flight lands stale.
func (m *Model) clearResult() {
	m.generation++
	m.state = StateIdle
	m.result = nil
	m.errMsg = ""
	m.statusMessage = ""
	m.pipeline.Reset()
	m.reasons.Reset()
	m.paragraphCursor = 0
}

func (m *Model) focusForMode() tea.Cmd {
	if m.mode != ModeAudio {
		return m.urlInput.Focus()
	}
	return nil
}

func (m *Model) moveParagraphCursor(delta int) {
	if m.result == nil || len(m.result.Paragraphs) == 0 {
		return
	}
	m.paragraphCursor += delta
	if m.paragraphCursor < 0 {
		m.paragraphCursor = 0
	}
	if m.paragraphCursor > len(m.result.Paragraphs)-1 {
		m.paragraphCursor = len(m.result.Paragraphs) - 1
	}
	m.refreshResultView()
}

// toggleReason flips the reason panel for the paragraph under the cursor.
// Only flagged paragraphs carry a reason, so the toggle is a no-op on
// clean ones.
func (m *Model) toggleReason() {
	if m.result == nil || m.paragraphCursor >= len(m.result.Paragraphs) {
		return
	}
	if !m.result.Paragraphs[m.paragraphCursor].Biased() {
		return
	}
	m.reasons.Toggle(m.paragraphCursor)
	m.refreshResultView()
}

func (m *Model) moveHistoryCursor(delta int) {
	if m.history == nil {
		return
	}
	recent := m.history.Recent(historyDisplayLimit)
	if len(recent) == 0 {
		return
	}
	m.urlInput.Blur()
	m.historyCursor += delta
	if m.historyCursor < 0 {
		m.historyCursor = 0
	}
	if m.historyCursor > len(recent)-1 {
		m.historyCursor = len(recent) - 1
	}
}

const historyDisplayLimit = 5

// resubmitHistory loads the selected recent submission back into the
// input state and dispatches it.
func (m *Model) resubmitHistory() tea.Cmd {
	if m.history == nil {
		return nil
	}
	recent := m.history.Recent(historyDisplayLimit)
	if m.historyCursor < 0 || m.historyCursor >= len(recent) {
		return nil
	}
	entry := recent[m.historyCursor]

	switch entry.Mode {
	case "audio":
		m.mode = ModeAudio
		m.selectedFile = entry.Target
	case "video":
		m.mode = ModeVideo
		if strings.HasPrefix(entry.Target, "http") {
			m.selectedFile = ""
			m.urlInput.SetValue(entry.Target)
		} else {
			m.selectedFile = entry.Target
		}
	default:
		m.mode = ModeURL
		m.selectedFile = ""
		m.urlInput.SetValue(entry.Target)
	}

	m.historyCursor = -1
	return m.submit()
}

func (m *Model) recordHistory() {
	if m.history == nil {
		return
	}
	target := m.submittedURL
	if target == "" {
		target = m.selectedFile
	}
	if target == "" {
		return
	}
	title := ""
	if m.result != nil {
		title = m.result.Title
	}
	m.history.Add(m.mode.String(), target, title)
	if err := m.history.Save(); err != nil {
		m.logger.Warn("failed to save history", "error", err)
	}
}

func (m *Model) cycleTheme() {
	themeNames := GetThemeNames()
	m.themeIndex = (m.themeIndex + 1) % len(themeNames)
	newTheme := themeNames[m.themeIndex]
	m.styles = NewStyles(Themes[newTheme])
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(Themes[newTheme].Primary))

	if m.cfg != nil {
		m.cfg.Theme = newTheme
		_ = m.cfg.Save()
	}
}

func (m *Model) refreshResultView() {
	if m.result == nil {
		return
	}
	m.viewport.SetContent(m.renderResult())
}

// Views

func (m *Model) idleView() string {
	title := m.styles.Title.Render("  SpinFilter")
	modeLine := m.renderModeTabs()

	var inputLine string
	switch m.mode {
	case ModeAudio:
		inputLine = m.renderFileLine("audio file")
	case ModeVideo:
		if m.selectedFile != "" {
			inputLine = m.renderFileLine("video file")
		} else {
			inputLine = m.urlInput.View()
		}
	default:
		inputLine = m.urlInput.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		"",
		title,
		"",
		modeLine,
		"",
		inputLine,
		"",
	)

	if m.statusMessage != "" {
		content = lipgloss.JoinVertical(lipgloss.Left,
			content,
			m.styles.Error.Render("  "+m.statusMessage),
			"",
		)
	}

	card := m.styles.Card.Render(content)

	parts := []string{"", card}
	if historyBlock := m.renderHistory(); historyBlock != "" {
		parts = append(parts, "", historyBlock)
	}
	parts = append(parts, "", m.idleHelp())

	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m *Model) renderModeTabs() string {
	var tabs []string
	for i := 0; i < modeCount; i++ {
		label := InputMode(i).Label()
		if InputMode(i) == m.mode {
			tabs = append(tabs, m.styles.Highlight.Render("["+label+"]"))
		} else {
			tabs = append(tabs, m.styles.HelpDesc.Render(" "+label+" "))
		}
	}
	return strings.Join(tabs, "  ")
}

func (m *Model) renderFileLine(kind string) string {
	if m.selectedFile == "" {
		return m.styles.HelpDesc.Render(fmt.Sprintf("No %s selected. Press f to browse.", kind))
	}
	return m.styles.Normal.Render(filepath.Base(m.selectedFile)) +
		m.styles.HelpDesc.Render("  (f to change)")
}

func (m *Model) renderHistory() string {
	if m.history == nil {
		return ""
	}
	recent := m.history.Recent(historyDisplayLimit)
	if len(recent) == 0 {
		return ""
	}

	lines := []string{m.styles.HelpKey.Render("Recent")}
	for i, entry := range recent {
		label := entry.Title
		if label == "" {
			label = entry.Target
		}
		label = truncateLabel(label, 56)
		prefix := "  "
		style := m.styles.HelpDesc
		if i == m.historyCursor {
			prefix = "> "
			style = m.styles.Highlight
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s%-7s %s", prefix, "["+entry.Mode+"]", label)))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) idleHelp() string {
	entries := []helpEntry{
		{"enter", "analyze"},
		{"tab", "mode"},
	}
	switch m.mode {
	case ModeAudio:
		entries = append(entries, helpEntry{"f", "choose file"})
	case ModeVideo:
		entries = append(entries, helpEntry{"f", "choose file"}, helpEntry{"ctrl+v", "paste"})
	default:
		entries = append(entries, helpEntry{"ctrl+v", "paste"})
	}
	entries = append(entries,
		helpEntry{"j/k", "recent"},
		helpEntry{"t", "theme"},
		helpEntry{"ctrl+c", "quit"},
	)
	return m.renderHelpLine(entries)
}

func (m *Model) loadingView() string {
	verb := "Analyzing article"
	switch m.mode {
	case ModeAudio:
		verb = "Transcribing and analyzing audio"
	case ModeVideo:
		verb = "Transcribing and analyzing video"
	}

	status := fmt.Sprintf("%s %s...", m.spinner.View(), verb)

	content := m.styles.Border.Render(
		lipgloss.JoinVertical(lipgloss.Center,
			m.styles.Title.Render("SpinFilter"),
			"",
			m.styles.Normal.Render(status),
		),
	)

	return lipgloss.JoinVertical(lipgloss.Center, "", content)
}

func (m *Model) failedView() string {
	content := m.styles.Border.Render(
		lipgloss.JoinVertical(lipgloss.Center,
			m.styles.Error.Render("✗ Analysis Failed"),
			"",
			m.styles.Normal.Render(m.errMsg),
		),
	)

	help := m.renderHelpLine([]helpEntry{
		{"enter", "back"},
		{"tab", "switch mode"},
		{"q", "quit"},
	})
	return lipgloss.JoinVertical(lipgloss.Center, "", content, "", help)
}

func (m *Model) pickerView() string {
	title := m.styles.Title.Render("  Choose a file")
	help := m.renderHelpLine([]helpEntry{
		{"enter", "select"},
		{"esc", "cancel"},
	})
	return lipgloss.JoinVertical(lipgloss.Left, "", title, "", m.picker.View(), "", "  "+help)
}

func (m *Model) resultScreen() string {
	headerLeft := m.styles.HelpKey.Render("SpinFilter")
	modeTag := m.styles.HelpDesc.Render("[" + m.mode.Label() + "]")
	headerGap := ""
	if m.width > 0 {
		gap := m.width - lipgloss.Width(headerLeft) - lipgloss.Width(modeTag) - 4
		if gap > 0 {
			headerGap = strings.Repeat(" ", gap)
		}
	}
	header := m.styles.HeaderBar.Width(m.width - 1).Render(headerLeft + " " + headerGap + modeTag)

	var statusLine string
	if m.statusMessage != "" {
		statusLine = m.styles.Help.Render("  " + m.statusMessage)
	}

	var footer string
	if m.showHelp {
		footer = m.renderFullHelp()
	} else {
		footer = m.renderResultFooter()
	}

	parts := []string{header, m.viewport.View()}
	if statusLine != "" {
		parts = append(parts, statusLine)
	}
	parts = append(parts, footer)

	content := strings.Join(parts, "\n")

	// Pad output to exactly m.height lines so the alternate screen buffer
	// repaints cleanly and doesn't leave stale content from previous frames.
	if m.height > 0 {
		rendered := strings.Split(content, "\n")
		for len(rendered) < m.height {
			rendered = append(rendered, "")
		}
		return strings.Join(rendered[:m.height], "\n")
	}
	return content
}

func (m *Model) renderResultFooter() string {
	line1 := []helpEntry{
		{"j/k", "paragraph"},
		{"space", "why biased"},
		{"↑/↓", "scroll"},
		{"s", "similar"},
	}
	line2 := []helpEntry{
		{"y", "copy summary"},
		{"e", "copy report"},
		{"n", "new"},
		{"tab", "mode"},
		{"?", "help"},
		{"q", "quit"},
	}

	return m.styles.FooterBar.Width(m.width - 1).Render(
		m.renderHelpLine(line1) + "\n" + m.renderHelpLine(line2),
	)
}

func (m *Model) renderFullHelp() string {
	sections := []struct {
		title   string
		entries []helpEntry
	}{
		{"Navigation", []helpEntry{
			{"j / k", "move between paragraphs"},
			{"↑ / ↓ / pgup / pgdn", "scroll"},
		}},
		{"Result", []helpEntry{
			{"space / enter", "toggle paragraph reason"},
			{"s", "find similar articles"},
			{"y", "copy summary to clipboard"},
			{"e", "copy full report as JSON"},
		}},
		{"Session", []helpEntry{
			{"n", "new analysis"},
			{"tab / shift+tab", "switch input mode"},
			{"t", "cycle theme"},
		}},
		{"General", []helpEntry{
			{"?", "toggle this help"},
			{"q / ctrl+c", "quit"},
		}},
	}

	var lines []string
	for _, sec := range sections {
		lines = append(lines, m.styles.HelpKey.Render("  "+sec.title))
		for _, e := range sec.entries {
			lines = append(lines, fmt.Sprintf("    %s  %s",
				m.styles.HelpKey.Render(fmt.Sprintf("%-20s", e.key)),
				m.styles.HelpDesc.Render(e.desc),
			))
		}
	}

	return m.styles.FooterBar.Width(m.width - 1).Render(strings.Join(lines, "\n"))
}

// Help rendering

type helpEntry struct {
	key  string
	desc string
}

func (m *Model) renderHelpLine(entries []helpEntry) string {
	var parts []string
	sep := m.styles.HelpSep.Render(" · ")
	for _, e := range entries {
		parts = append(parts, m.styles.HelpKey.Render(e.key)+" "+m.styles.HelpDesc.Render(e.desc))
	}
	return strings.Join(parts, sep)
}

func keyMatches(msg tea.KeyMsg, target key.Binding) bool {
	for _, k := range target.Keys() {
		if msg.String() == k {
			return true
		}
	}
	return false
}
