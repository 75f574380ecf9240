package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// DepListModel - Interactive dependency selection
// =============================================================================

// DepItem is one selectable dependency with its usage count.
type DepItem struct {
	Name  string
	Count int
}

// DepListModel is the bubbletea model for picking one dependency out of a
// wildcard match list.
type DepListModel struct {
	Title    string
	Items    []DepItem
	Cursor   int
	Selected *DepItem
	Height   int
	Offset   int
}

// NewDepListModel creates a new dependency list model.
func NewDepListModel(title string, items []DepItem) DepListModel {
	return DepListModel{
		Title:  title,
		Items:  items,
		Height: 15,
	}
}

func (m DepListModel) Init() tea.Cmd {
	return nil
}

func (m DepListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = &m.Items[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m DepListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Items) {
		end = len(m.Items)
	}

	for i := m.Offset; i < end; i++ {
		item := m.Items[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-30s  %s", cursor, item.Name,
			listDimStyle.Render(fmt.Sprintf("%d nodes", item.Count)))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Items))))

	return b.String()
}

// pickDependency runs the interactive picker and returns the chosen name.
// An empty string means the user quit without selecting.
func pickDependency(title string, items []DepItem) (string, error) {
	model := NewDepListModel(title, items)
	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("run picker: %w", err)
	}
	if m, ok := final.(DepListModel); ok && m.Selected != nil {
		return m.Selected.Name, nil
	}
	return "", nil
}
