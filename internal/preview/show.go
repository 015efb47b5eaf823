package preview

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/rklebes/wifi-setup/internal/files"
	"github.com/rklebes/wifi-setup/internal/ui"
)

// Options selects how Show presents documents.
type Options struct {
	// TUI runs the interactive pager; otherwise documents are printed.
	TUI bool
	In  io.Reader
	Out io.Writer
}

// Show presents docs. When the pager cannot take over the terminal it falls
// back to printing the documents.
func Show(docs []files.Document, opts Options) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if !opts.TUI {
		_, err := io.WriteString(opts.Out, Static(docs))
		return err
	}

	p := tea.NewProgram(
		NewPager(docs),
		tea.WithAltScreen(),
		tea.WithInput(opts.In),
		tea.WithOutput(opts.Out),
	)
	_, err := p.Run()
	ui.ResetTerminalAfterTUI()
	if err != nil {
		if strings.Contains(err.Error(), "tty") || strings.Contains(err.Error(), "device not configured") {
			log.WithError(err).Debug("pager unavailable, printing files instead")
			_, werr := io.WriteString(opts.Out, Static(docs))
			return werr
		}
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

// Static renders every document in a rounded box titled with its file name.
func Static(docs []files.Document) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	var b strings.Builder
	for _, d := range docs {
		body := strings.TrimRight(d.Contents, "\n")
		b.WriteString(boxStyle.Render(titleStyle.Render(d.Name) + "\n" + body))
		b.WriteString("\n")
	}
	return b.String()
}
