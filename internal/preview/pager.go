// Package preview shows generated configuration files before they are saved.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rklebes/wifi-setup/internal/files"
)

// keyMap defines keyboard shortcuts
type keyMap struct {
	Next key.Binding
	Prev key.Binding
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp implements help.KeyMap for inline help
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Up, k.Down, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Up, k.Down}, {k.Quit}}
}

func newKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next file"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous file"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k", "pgup"),
			key.WithHelp("↑/pgup", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "pgdown"),
			key.WithHelp("↓/pgdn", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "close"),
		),
	}
}

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
	tabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// chrome is the number of rows taken by the tab bar and the footer.
const chrome = 4

// Pager is the Bubble Tea model for the file preview: one tab per document,
// each shown in a scrollable viewport.
type Pager struct {
	docs   []files.Document
	active int
	vp     viewport.Model
	keys   keyMap
	help   help.Model
}

// NewPager builds a pager over docs with an 80x24 layout until the first
// window size message arrives.
func NewPager(docs []files.Document) *Pager {
	m := &Pager{
		docs: docs,
		vp:   viewport.New(80, 24-chrome),
		keys: newKeyMap(),
		help: help.New(),
	}
	m.show(0)
	return m
}

// Active returns the index of the document on screen.
func (m *Pager) Active() int { return m.active }

func (m *Pager) show(i int) {
	if len(m.docs) == 0 {
		return
	}
	m.active = (i + len(m.docs)) % len(m.docs)
	m.vp.SetContent(m.docs[m.active].Contents)
	m.vp.GotoTop()
}

// Init implements tea.Model
func (m *Pager) Init() tea.Cmd { return nil }

// Update implements tea.Model
func (m *Pager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-chrome, 1)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.show(m.active + 1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.show(m.active - 1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m *Pager) View() string {
	if len(m.docs) == 0 {
		return "No files to show.\n"
	}
	tabs := make([]string, len(m.docs))
	for i, d := range m.docs {
		if i == m.active {
			tabs[i] = activeTabStyle.Render(d.Name)
		} else {
			tabs[i] = tabStyle.Render(d.Name)
		}
	}
	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...))
	b.WriteString("\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf("%3.0f%%  ", m.vp.ScrollPercent()*100)))
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
