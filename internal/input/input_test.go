package input

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestPrompt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   string
		want  string
	}{
		{"typed value", "demo\n", "my-app", "demo"},
		{"enter takes default", "\n", "my-app", "my-app"},
		{"eof takes default", "", "my-app", "my-app"},
		{"trims whitespace", "  spaced  \n", "", "spaced"},
		{"last line without newline", "tail", "x", "tail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)
			assert.Equal(t, tt.want, p.Prompt("Project name", tt.def))
			assert.Contains(t, out.String(), "Project name")
		})
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input      string
		defaultYes bool
		want       bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"\n", true, true},
		{"\n", false, false},
		{"maybe\n", true, false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)
			assert.Equal(t, tt.want, p.Confirm("Continue?", tt.defaultYes))
		})
	}
}

func TestPrompter_SequentialReads(t *testing.T) {
	p := NewPrompter(strings.NewReader("first\nsecond\n"), &bytes.Buffer{})
	assert.Equal(t, "first", p.Prompt("a", ""))
	assert.Equal(t, "second", p.Prompt("b", ""))
}

func press(m menuModel, keys ...tea.KeyMsg) menuModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(menuModel)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keySpace = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func TestMenuModel_Single(t *testing.T) {
	opts := []Option{{Value: "react"}, {Value: "vue"}, {Value: "svelte"}}

	m := press(newMenuModel("Frontend", opts, false), keyDown, keyDown, keyDown, keyUp, keyEnter)
	assert.True(t, m.done)
	assert.Equal(t, 1, m.cursor)

	m = press(newMenuModel("Frontend", opts, false), keyQuit)
	assert.False(t, m.done)
}

func TestMenuModel_Multi(t *testing.T) {
	opts := []Option{{Value: "tailwind"}, {Value: "router"}, {Value: "typescript", Hint: "types"}}

	m := press(newMenuModel("Extras", opts, true), keySpace, keyDown, keyDown, keySpace, keyEnter)
	assert.True(t, m.done)
	assert.Equal(t, []string{"tailwind", "typescript"}, m.values())

	view := m.View()
	assert.Contains(t, view, "[x] tailwind")
	assert.Contains(t, view, "[ ] router")
	assert.Contains(t, view, "types")
}
