// Package tui provides an interactive preview of a channel's items.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/tesso57/feedsmith/internal/application/settings"
	"github.com/tesso57/feedsmith/internal/domain/syndication"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dateStyle  = lipgloss.NewStyle().Faint(true)
)

// previewItem adapts a syndication item to the bubbles list.
type previewItem struct {
	item syndication.Item
}

// FilterValue implements list.Item.
func (p previewItem) FilterValue() string { return p.item.Title }

// itemDelegate renders one feed item per line.
type itemDelegate struct {
	styles list.DefaultItemStyles
}

func newItemDelegate() itemDelegate {
	return itemDelegate{styles: list.NewDefaultItemStyles()}
}

// Height returns the height of the item.
func (d itemDelegate) Height() int { return 1 }

// Spacing returns the spacing between items.
func (d itemDelegate) Spacing() int { return 0 }

// Update handles messages for the delegate.
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render renders the item.
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	p, ok := item.(previewItem)
	if !ok {
		return
	}

	line := p.item.Title
	if p.item.PubDate != nil {
		line += " " + dateStyle.Render(syndication.RFC3339Date(*p.item.PubDate))
	}
	line = truncate(line, m.Width())

	if index == m.Index() {
		line = d.styles.SelectedTitle.Render(line)
	} else {
		line = d.styles.NormalTitle.Render(line)
	}

	_, _ = fmt.Fprint(w, line)
}

// Model is the preview application state.
type Model struct {
	channel  settings.Channel
	list     list.Model
	quitting bool
}

// NewModel builds a preview of the items a channel would publish.
func NewModel(channel settings.Channel, items []syndication.Item) Model {
	entries := make([]list.Item, 0, len(items))
	for _, item := range items {
		entries = append(entries, previewItem{item: item})
	}

	l := list.New(entries, newItemDelegate(), 80, 20)
	l.Title = previewTitle(channel, len(items))
	l.SetShowStatusBar(false)
	return Model{channel: channel, list: l}
}

func previewTitle(channel settings.Channel, n int) string {
	title := channel.Title
	if title == "" {
		title = channel.Name
	}
	return fmt.Sprintf("%s (%d items)", titleStyle.Render(title), n)
}

func truncate(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Truncate(strings.Join(strings.Fields(text), " "), width, "...")
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

// Run shows the preview until the user quits.
func Run(channel settings.Channel, items []syndication.Item) error {
	_, err := tea.NewProgram(NewModel(channel, items), tea.WithAltScreen()).Run()
	return err
}
