package ui

import (
	"fmt"
	"io"
	"strings"
)

// ErrorMessage represents a structured, actionable error to present to users.
type ErrorMessage struct {
	Problem string   // one-line problem statement
	Causes  []string // possible causes
	Actions []string // actionable steps to resolve
	Hints   []string // optional hints (e.g., commands to try)
}

// Format renders the error using the color theme. It does not include ANSI
// codes when colors are disabled (NO_COLOR or dumb terminal).
func (e ErrorMessage) Format(c *ColorConfig) string {
	var b strings.Builder
	b.WriteString(c.Error(errorMark(c)))
	b.WriteString(c.Header("Error"))
	b.WriteString("\n")
	if e.Problem != "" {
		fmt.Fprintf(&b, "  %s: %s\n", c.Label("Problem"), e.Problem)
	}
	writeList(&b, c.Label("Possible causes"), "   • ", e.Causes, nil)
	writeList(&b, c.Label("Try"), "   → ", e.Actions, nil)
	writeList(&b, c.Label("Hints"), "   · ", e.Hints, c.Description)
	return b.String()
}

func errorMark(c *ColorConfig) string {
	if c.EmojiEnabled {
		return "✗ "
	}
	return "[ERR] "
}

func writeList(b *strings.Builder, label, bullet string, items []string, style func(string) string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "  %s:\n", label)
	for _, it := range items {
		if style != nil {
			it = style(it)
		}
		b.WriteString(bullet)
		b.WriteString(it)
		b.WriteString("\n")
	}
}

// PrintError prints the structured error to w using the global theme.
func PrintError(w io.Writer, e ErrorMessage) {
	fmt.Fprintln(w, e.Format(NewColorConfigFromGlobal()))
}
