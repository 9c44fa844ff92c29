package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/centipede-arena/internal/core"
	"github.com/vovakirdan/centipede-arena/internal/registry"
	"github.com/vovakirdan/centipede-arena/internal/storage"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the Bubble Tea model for watching a match.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       ViewerKeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	status     string
	quitting   bool
	goingBack  bool
	matchSaved bool // Whether the current match has been saved
}

// NewModel resets game with cfg and wraps it in a viewer model.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (Model, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = core.DefaultConfig().TickInterval
	}

	if err := game.Reset(cfg); err != nil {
		return Model{}, err
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, viewportHeight(cfg.ScreenH)),
		store:      store,
		config:     cfg,
		keys:       DefaultViewerKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}, nil
}

// viewportHeight leaves room for the status and help lines.
func viewportHeight(h int) int {
	return max(h-2, 1)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickInterval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, viewportHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.goingBack = true
		return m, tea.Quit
	case core.ActionFaster:
		m.config.TickInterval = faster(m.config.TickInterval)
		m.status = fmt.Sprintf("tick every %v", m.config.TickInterval)
	case core.ActionSlower:
		m.config.TickInterval = slower(m.config.TickInterval)
		m.status = fmt.Sprintf("tick every %v", m.config.TickInterval)
	case core.ActionRestart:
		m.restart()
	case core.ActionPause, core.ActionStep:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// restart begins a new match with a fresh seed.
func (m *Model) restart() {
	m.saveMatch()
	m.config.Seed = time.Now().UnixNano()
	if err := m.game.Reset(m.config); err != nil {
		m.status = fmt.Sprintf("restart failed: %v", err)
		return
	}
	m.gameState = m.game.State()
	m.matchSaved = false
	m.inputFrame.Clear()
	m.status = fmt.Sprintf("new match, seed %d", m.config.Seed)
}

// handleTick advances the match by one step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver {
		m.saveMatch()
	}

	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickInterval)
}

// saveMatch stores a finished match once.
func (m *Model) saveMatch() {
	if m.matchSaved || !m.gameState.GameOver {
		return
	}
	m.matchSaved = true
	if m.store == nil {
		return
	}

	_, err := m.store.SaveMatch(storage.Match{
		MatchupID: m.game.ID(),
		Score:     m.gameState.Score,
		Winner:    m.gameState.Winner,
		Ticks:     int(m.gameState.Tick),
		Seed:      m.config.Seed,
		Completed: true,
	})
	if err != nil {
		m.status = "could not save match"
	}
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.status = "screenshot failed"
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.status = "screenshot failed"
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.status = "screenshot failed"
		return
	}
	m.status = "saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" +
		statusStyle.Render(m.status) + "\n" +
		helpStyle.Render(m.help.View(m.keys))
}

// GoingBack reports whether the viewer was left with the back key.
func (m Model) GoingBack() bool {
	return m.goingBack
}

// Run watches one match. It reports whether the user asked to go back
// rather than quit.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (goBack bool, err error) {
	model, err := NewModel(game, store, cfg)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.GoingBack(), nil
}
