package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/neonmask/neon-ascent/internal/storage"
)

const maxRankingRows = 12

// RankingKeyMap defines the key bindings for the ranking screen.
type RankingKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Restart key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RankingKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RankingKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Restart, k.Quit},
	}
}

// DefaultRankingKeyMap returns default key bindings.
func DefaultRankingKeyMap() RankingKeyMap {
	return RankingKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "new run"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	rankingTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("14")).
				MarginBottom(1)

	rankingFrameStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Padding(1, 2)
)

// newRankingTable builds the top-runs table for the ranking screen.
func newRankingTable(entries []storage.RunEntry, height int) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Name", Width: 14},
		{Title: "Score", Width: 9},
		{Title: "Dist", Width: 7},
		{Title: "Date", Width: 13},
	}

	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			e.Name,
			fmt.Sprintf("%d", e.Score),
			fmt.Sprintf("%dm", e.Distance),
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}

	tableHeight := len(rows) + 1
	if max := height - 10; tableHeight > max && max > 2 {
		tableHeight = max
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// loadRanking fetches the top runs, degrading to an empty ranking when
// the store is unavailable or broken.
func loadRanking(store *storage.Store) []storage.RunEntry {
	if store == nil {
		return nil
	}
	entries, err := store.TopRuns(maxRankingRows)
	if err != nil {
		return nil
	}
	return entries
}

// rankingView lays out the ranking screen centered on the terminal.
func rankingView(t table.Model, h help.Model, keys RankingKeyMap, width, height int, empty bool) string {
	title := rankingTitleStyle.Render("NEON ASCENT — TOP RUNS")
	body := t.View()
	if empty {
		body = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).
			Render("no runs recorded yet — go set one")
	}
	content := lipgloss.JoinVertical(lipgloss.Center, title, body, "", h.View(keys))
	framed := rankingFrameStyle.Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, framed)
}
