package generator

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const (
	contextLines = 3
	tabWidth     = 4
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("22"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("52"))
)

// RenderChange writes a single-hunk preview of before → after.
//
// Patches only ever touch one contiguous region, so the hunk is the span
// between the longest common line prefix and suffix.
func RenderChange(w io.Writer, path, before, after string) {
	if before == after {
		fmt.Fprintln(w, headerStyle.Render("  "+path+": no changes"))
		return
	}

	old := strings.Split(before, "\n")
	newer := strings.Split(after, "\n")

	prefix := 0
	for prefix < len(old) && prefix < len(newer) && old[prefix] == newer[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(old)-prefix && suffix < len(newer)-prefix &&
		old[len(old)-1-suffix] == newer[len(newer)-1-suffix] {
		suffix++
	}

	from := max(prefix-contextLines, 0)
	oldEnd := len(old) - suffix
	newEnd := len(newer) - suffix
	ctxEnd := min(newEnd+contextLines, len(newer))

	width := terminalWidth() - 10

	var b strings.Builder
	b.WriteString(headerStyle.Render("--- "+path) + "\n")
	b.WriteString(headerStyle.Render("+++ "+path) + "\n")
	b.WriteString(hunkStyle.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@",
		from+1, oldEnd+(ctxEnd-newEnd)-from, from+1, ctxEnd-from)) + "\n")

	for _, line := range newer[from:prefix] {
		b.WriteString(" " + truncateLine(expandTabs(line), width) + "\n")
	}
	for _, line := range old[prefix:oldEnd] {
		b.WriteString(removedStyle.Render("-"+truncateLine(expandTabs(line), width)) + "\n")
	}
	for _, line := range newer[prefix:newEnd] {
		b.WriteString(addedStyle.Render("+"+truncateLine(expandTabs(line), width)) + "\n")
	}
	for _, line := range newer[newEnd:ctxEnd] {
		b.WriteString(" " + truncateLine(expandTabs(line), width) + "\n")
	}

	fmt.Fprint(w, b.String())
}

func expandTabs(s string) string {
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			spaces := tabWidth - (col % tabWidth)
			b.WriteString(strings.Repeat(" ", spaces))
			col += spaces
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

func truncateLine(s string, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = 80
	}
	if utf8.RuneCountInString(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	if maxWidth < 3 {
		return "..."[:maxWidth]
	}
	return string(runes[:maxWidth-3]) + "..."
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
