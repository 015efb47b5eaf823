package ui

import (
	"os"
	"strings"
)

// Color codes for terminal output
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Cyan    = "\033[36m"
	Magenta = "\033[35m"

	BrightBlack   = "\033[90m"
	BrightRed     = "\033[91m"
	BrightGreen   = "\033[92m"
	BrightYellow  = "\033[93m"
	BrightMagenta = "\033[95m"
	BrightCyan    = "\033[96m"
)

// Theme defines the color scheme for different UI elements
type Theme struct {
	// Status indicators
	Success string
	Warning string
	Error   string
	Info    string

	// UI elements
	Header      string
	SubHeader   string
	Label       string
	Value       string
	Command     string
	Flag        string
	Description string
	Separator   string

	// Prompts and secrets
	Prompt string
	Masked string
}

// DefaultTheme returns the default color theme
func DefaultTheme() *Theme {
	return &Theme{
		Success: BrightGreen,
		Warning: BrightYellow,
		Error:   BrightRed,
		Info:    BrightCyan,

		Header:      Bold + BrightCyan,
		SubHeader:   Bold + Cyan,
		Label:       Bold, // terminal default foreground stays readable on any background
		Value:       "",
		Command:     BrightGreen,
		Flag:        BrightYellow,
		Description: BrightBlack,
		Separator:   BrightBlack,

		Prompt: Bold + BrightMagenta,
		Masked: Dim,
	}
}

// ColorConfig manages color output settings
type ColorConfig struct {
	Enabled      bool
	EmojiEnabled bool
	Theme        *Theme
}

// NewColorConfig creates a new color configuration with default settings.
// Colors are off when NO_COLOR is set or TERM is empty or dumb.
func NewColorConfig() *ColorConfig {
	noColor := os.Getenv("NO_COLOR") != ""
	term := os.Getenv("TERM")

	return &ColorConfig{
		Enabled:      !noColor && term != "dumb" && term != "",
		EmojiEnabled: true,
		Theme:        DefaultTheme(),
	}
}

// Apply applies a color to text if colors are enabled
func (c *ColorConfig) Apply(color, text string) string {
	if !c.Enabled || color == "" {
		return text
	}
	return color + text + Reset
}

func (c *ColorConfig) Success(text string) string     { return c.Apply(c.Theme.Success, text) }
func (c *ColorConfig) Warning(text string) string     { return c.Apply(c.Theme.Warning, text) }
func (c *ColorConfig) Error(text string) string       { return c.Apply(c.Theme.Error, text) }
func (c *ColorConfig) Info(text string) string        { return c.Apply(c.Theme.Info, text) }
func (c *ColorConfig) Header(text string) string      { return c.Apply(c.Theme.Header, text) }
func (c *ColorConfig) SubHeader(text string) string   { return c.Apply(c.Theme.SubHeader, text) }
func (c *ColorConfig) Label(text string) string       { return c.Apply(c.Theme.Label, text) }
func (c *ColorConfig) Value(text string) string       { return c.Apply(c.Theme.Value, text) }
func (c *ColorConfig) Command(text string) string     { return c.Apply(c.Theme.Command, text) }
func (c *ColorConfig) Flag(text string) string        { return c.Apply(c.Theme.Flag, text) }
func (c *ColorConfig) Description(text string) string { return c.Apply(c.Theme.Description, text) }
func (c *ColorConfig) Prompt(text string) string      { return c.Apply(c.Theme.Prompt, text) }
func (c *ColorConfig) Masked(text string) string      { return c.Apply(c.Theme.Masked, text) }

// FormatCommandAligned formats a command and its description with the
// description starting at column width.
func (c *ColorConfig) FormatCommandAligned(cmd, desc string, width int) string {
	pad := width - len(cmd)
	if pad < 1 {
		pad = 1
	}
	return "  " + c.Command(cmd) + strings.Repeat(" ", pad) + c.Description(desc)
}

// FormatFlagAligned is FormatCommandAligned for a flag name.
func (c *ColorConfig) FormatFlagAligned(flag, desc string, width int) string {
	pad := width - len(flag)
	if pad < 1 {
		pad = 1
	}
	return "  " + c.Flag(flag) + strings.Repeat(" ", pad) + c.Description(desc)
}

// Separator returns a colored separator line
func (c *ColorConfig) Separator(width int) string {
	return c.Apply(c.Theme.Separator, strings.Repeat("─", width))
}

// StatusIcon returns a colored status icon (respects emoji settings)
func (c *ColorConfig) StatusIcon(status string) string {
	if !c.EmojiEnabled {
		switch strings.ToLower(status) {
		case "success", "written":
			return c.Success("[OK]")
		case "unchanged", "skipped":
			return c.Info("[--]")
		case "warning":
			return c.Warning("[WARN]")
		case "error", "failed":
			return c.Error("[ERR]")
		default:
			return c.Description("[ ]")
		}
	}

	switch strings.ToLower(status) {
	case "success", "written":
		return c.Success("✓")
	case "unchanged", "skipped":
		return c.Info("=")
	case "warning":
		return c.Warning("⚠")
	case "error", "failed":
		return c.Error("✗")
	default:
		return c.Description("○")
	}
}
