package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Printer centralizes output formatting for commands.
// - Respects --output (text|json|yaml)
// - Uses ColorConfig for styling when printing text
// - Provides helpers for common message types
type Printer struct {
	format string
	out    io.Writer
	Colors *ColorConfig
}

func NewPrinter(format string) Printer {
	return Printer{format: format, out: os.Stdout, Colors: NewColorConfig()}
}

// WithOutput returns a copy of p writing to w.
func (p Printer) WithOutput(w io.Writer) Printer {
	p.out = w
	return p
}

// Format reports the --output format the printer was built for.
func (p Printer) Format() string { return p.format }

// Out returns the writer the printer writes to.
func (p Printer) Out() io.Writer {
	if p.out == nil {
		return os.Stdout
	}
	return p.out
}

// Textf prints formatted text (always text path).
func (p Printer) Textf(format string, a ...any) { fmt.Fprintf(p.Out(), format, a...) }

// JSON pretty-prints a JSON value.
func (p Printer) JSON(v any) error {
	enc := json.NewEncoder(p.Out())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML prints v as a YAML document.
func (p Printer) YAML(v any) error {
	enc := yaml.NewEncoder(p.Out())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Structured prints v as JSON or YAML according to the printer format and
// reports false for the text format, leaving text rendering to the caller.
func (p Printer) Structured(v any) (bool, error) {
	switch p.format {
	case "json":
		return true, p.JSON(v)
	case "yaml":
		return true, p.YAML(v)
	}
	return false, nil
}

// Success prints a success line with themed prefix.
func (p Printer) Success(msg string) {
	c := p.Colors
	// Don't add extra space if message already starts with whitespace
	space := " "
	if len(msg) > 0 && (msg[0] == ' ' || msg[0] == '\t') {
		space = ""
	}
	if c.EmojiEnabled {
		fmt.Fprintf(p.Out(), "%s%s%s\n", c.Success("✓"), space, msg)
	} else {
		fmt.Fprintf(p.Out(), "%s%s%s\n", c.Success("[OK]"), space, msg)
	}
}

// Info prints an informational line.
func (p Printer) Info(msg string) {
	c := p.Colors
	if c.EmojiEnabled {
		fmt.Fprintln(p.Out(), c.Info("ℹ"), msg)
	} else {
		fmt.Fprintln(p.Out(), c.Info("[INFO]"), msg)
	}
}

// Warn prints a warning line.
func (p Printer) Warn(msg string) {
	c := p.Colors
	if c.EmojiEnabled {
		fmt.Fprintln(p.Out(), c.Warning("!"), msg)
	} else {
		fmt.Fprintln(p.Out(), c.Warning("[WARN]"), msg)
	}
}

// Error prints an error line.
func (p Printer) Error(msg string) {
	c := p.Colors
	if c.EmojiEnabled {
		fmt.Fprintln(p.Out(), c.Error("✗"), msg)
	} else {
		fmt.Fprintln(p.Out(), c.Error("[ERR]"), msg)
	}
}

// Status prints msg prefixed by the StatusIcon for status.
func (p Printer) Status(status, msg string) {
	fmt.Fprintln(p.Out(), p.Colors.StatusIcon(status), msg)
}

// Header prints a section header.
func (p Printer) Header(title string) {
	fmt.Fprintln(p.Out(), p.Colors.Header(" "+title+" "))
}

// Section prints a section header with separator
func (p Printer) Section(title string) {
	fmt.Fprintln(p.Out())
	fmt.Fprintln(p.Out(), p.Colors.SubHeader(title))
	fmt.Fprintln(p.Out(), p.Colors.Separator(40))
}

// KeyValueLine prints a key-value pair with proper formatting
func (p Printer) KeyValueLine(key, value, colorType string) {
	var coloredValue string
	switch colorType {
	case "blue":
		coloredValue = p.Colors.Apply(p.Colors.Theme.Info, value)
	case "yellow":
		coloredValue = p.Colors.Apply(p.Colors.Theme.Warning, value)
	case "green":
		coloredValue = p.Colors.Apply(p.Colors.Theme.Success, value)
	case "dim":
		coloredValue = p.Colors.Apply(p.Colors.Theme.Description, value)
	default:
		coloredValue = p.Colors.Value(value)
	}
	fmt.Fprintf(p.Out(), "%s %s\n", p.Colors.Label(key+":"), coloredValue)
}
