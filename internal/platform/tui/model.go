package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/neonmask/neon-ascent/internal/core"
	"github.com/neonmask/neon-ascent/internal/registry"
	"github.com/neonmask/neon-ascent/internal/storage"
)

// phase is the session stage: the run itself, the post-run name entry,
// and the ranking screen.
type phase int

const (
	phasePlaying phase = iota
	phaseNameEntry
	phaseRanking
)

// Model is the Bubble Tea model driving a full play session:
// run -> name entry -> ranking -> new run.
type Model struct {
	game   registry.Game
	screen *core.Screen
	store  *storage.Store
	config core.RuntimeConfig

	keys  *KeyMapper
	input core.InputFrame
	state core.GameState
	phase phase

	name         textinput.Model
	ranking      table.Model
	rankingEmpty bool
	rankingKeys  RankingKeyMap
	help         help.Model

	username string
	saved    bool
	quitting bool
}

// NewModel creates a session model for the given game. username prefills
// the post-run name entry (SSH sessions pass the login name).
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, username string) Model {
	// Use a time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	name := textinput.New()
	name.Placeholder = "your name"
	name.CharLimit = 14
	name.Width = 16
	name.SetValue(username)
	name.Focus()

	return Model{
		game:        game,
		screen:      core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:       store,
		config:      cfg,
		keys:        NewKeyMapper(),
		input:       core.NewInputFrame(),
		name:        name,
		rankingKeys: DefaultRankingKeyMap(),
		help:        help.New(),
		username:    username,
	}
}

// Init initializes the model and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseNameEntry:
		return m.handleNameKey(msg)
	case phaseRanking:
		return m.handleRankingKey(msg)
	}

	if msg.String() == "ctrl+c" || msg.String() == "q" {
		m.quitting = true
		return m, tea.Quit
	}
	action, _ := m.keys.MapKey(msg)
	switch action {
	case core.ActionRestart:
		if m.state.GameOver {
			m.input.Set(action)
		}
	case core.ActionNone:
	default:
		m.input.Set(action)
	}
	return m, nil
}

func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		m.saveRun(m.name.Value())
		m.enterRanking()
		return m, nil
	case "esc": // skip the save
		m.enterRanking()
		return m, nil
	}
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

func (m Model) handleRankingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.rankingKeys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.rankingKeys.Restart):
		m.restart()
		return m, nil
	}
	var cmd tea.Cmd
	m.ranking, cmd = m.ranking.Update(msg)
	return m, cmd
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	if m.phase != phasePlaying {
		return m, tickCmd(m.config.TickRate)
	}

	if m.input.Has(core.ActionRestart) && m.state.GameOver {
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.input)
	m.state = result.State
	m.input.Clear()

	if m.state.GameOver && !m.saved {
		if m.store != nil && m.state.Score > 0 {
			m.phase = phaseNameEntry
			m.name.SetValue(m.username)
			m.name.Focus()
		} else {
			m.enterRanking()
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRun persists the finished run. Best-effort: a broken store never
// interrupts the session.
func (m *Model) saveRun(name string) {
	if m.store == nil || m.saved {
		return
	}
	//nolint:errcheck // Best-effort save, session continues regardless
	m.store.SaveRun(storage.RunEntry{
		Name:      name,
		Score:     m.state.Score,
		Distance:  m.state.Distance,
		Crystals:  m.state.Crystals,
		Seed:      m.config.Seed,
		EndReason: m.state.EndReason,
	})
	m.saved = true
}

func (m *Model) enterRanking() {
	entries := loadRanking(m.store)
	m.ranking = newRankingTable(entries, m.config.ScreenH)
	m.rankingEmpty = len(entries) == 0
	m.saved = true
	m.phase = phaseRanking
}

// restart begins a fresh run on a new time-based seed.
func (m *Model) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.state = m.game.State()
	m.input.Clear()
	m.saved = false
	m.phase = phasePlaying
}

// View renders the current phase.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case phaseRanking:
		return rankingView(m.ranking, m.help, m.rankingKeys, m.config.ScreenW, m.config.ScreenH, m.rankingEmpty)
	case phaseNameEntry:
		return m.nameEntryView()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

var nameEntryStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(1, 3)

func (m Model) nameEntryView() string {
	box := nameEntryStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Bold(true).Render("RUN OVER"),
		"",
		"enter your name for the ranking:",
		m.name.View(),
		"",
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("enter to save · esc to skip"),
	))
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, box)
}

// Run starts the Bubble Tea program for a local play session.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, username string) error {
	model := NewModel(game, store, cfg, username)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
