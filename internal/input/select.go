package input

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user quits a menu without choosing.
var ErrCancelled = errors.New("selection cancelled")

var (
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("white")).Bold(true)
)

// Option is one menu entry.
type Option struct {
	Value string
	Label string
	Hint  string
}

func (o Option) label() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Value
}

// SelectOne shows a single-choice menu and returns the chosen value.
func SelectOne(title string, options []Option, defaultValue string) (string, error) {
	m := newMenuModel(title, options, false)
	for i, o := range options {
		if o.Value == defaultValue {
			m.cursor = i
		}
	}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", fmt.Errorf("failed to show menu: %w", err)
	}
	result := final.(menuModel)
	if !result.done {
		return "", ErrCancelled
	}
	return options[result.cursor].Value, nil
}

// SelectMany shows a multi-choice menu and returns the checked values in
// menu order.
func SelectMany(title string, options []Option, preselected []string) ([]string, error) {
	m := newMenuModel(title, options, true)
	for i, o := range options {
		for _, v := range preselected {
			if o.Value == v {
				m.checked[i] = true
			}
		}
	}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, fmt.Errorf("failed to show menu: %w", err)
	}
	result := final.(menuModel)
	if !result.done {
		return nil, ErrCancelled
	}
	return result.values(), nil
}

// menuModel is the BubbleTea model behind both select menus.
type menuModel struct {
	title   string
	options []Option
	multi   bool
	cursor  int
	checked map[int]bool
	done    bool
}

func newMenuModel(title string, options []Option, multi bool) menuModel {
	return menuModel{
		title:   title,
		options: options,
		multi:   multi,
		checked: make(map[int]bool),
	}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}

	case " ", "x":
		if m.multi {
			m.checked[m.cursor] = !m.checked[m.cursor]
		}

	case "enter":
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m menuModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title) + "\n")
	if m.multi {
		b.WriteString(mutedStyle.Render("    [↑/↓] Navigate    [Space] Toggle    [Enter] Confirm    [q] Cancel") + "\n\n")
	} else {
		b.WriteString(mutedStyle.Render("    [↑/↓] Navigate    [Enter] Select    [q] Cancel") + "\n\n")
	}

	for i, o := range m.options {
		cursor := "  "
		if m.cursor == i {
			cursor = "> "
		}
		box := ""
		if m.multi {
			box = "[ ] "
			if m.checked[i] {
				box = "[x] "
			}
		}

		line := cursor + box + o.label()
		if m.cursor == i {
			line = selectedStyle.Render(line)
		}
		if o.Hint != "" {
			line += " " + mutedStyle.Render(o.Hint)
		}
		b.WriteString("    " + line + "\n")
	}

	return b.String()
}

func (m menuModel) values() []string {
	var out []string
	for i, o := range m.options {
		if m.checked[i] {
			out = append(out, o.Value)
		}
	}
	return out
}
