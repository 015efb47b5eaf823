package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/rklebes/wifi-setup/internal/config"
	"github.com/rklebes/wifi-setup/internal/files"
	"github.com/rklebes/wifi-setup/internal/preview"
	ui "github.com/rklebes/wifi-setup/internal/ui"
	"github.com/rklebes/wifi-setup/internal/wizard"
)

// Deps holds all injectable dependencies for command handlers.
type Deps struct {
	Cfg      config.Config
	Printer  ui.Printer
	Prompter wizard.Prompter
	Store    files.Store
	Output   io.Writer
	// Prompts receives questions and wizard messages; stderr when stdout
	// carries json or yaml.
	Prompts   io.Writer
	AssumeYes bool
	// Preview shows documents to the user before they are saved.
	Preview func(docs []files.Document) error
}

// stdinReader is shared by every prompt so piped answers buffered by one
// read are not lost to the next.
var stdinReader = bufio.NewReader(os.Stdin)

// ttyPrompter is the production implementation of wizard.Prompter. It
// reads answers from stdin, so a script can pipe them in.
type ttyPrompter struct {
	in     *bufio.Reader
	out    io.Writer
	colors *ui.ColorConfig
	// noEcho reads secrets with echo off; only valid when stdin is a terminal.
	noEcho bool
}

func (p *ttyPrompter) show(prompt string) {
	if p.colors != nil {
		prompt = p.colors.Prompt(prompt)
	}
	fmt.Fprint(p.out, prompt)
}

func (p *ttyPrompter) ReadLine(prompt string) (string, error) {
	p.show(prompt)
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadSecret reads without echo on a terminal. Surrounding spaces are kept
// since they are part of a passphrase.
func (p *ttyPrompter) ReadSecret(prompt string) (string, error) {
	p.show(prompt)
	if p.noEcho {
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return p.readLine()
}

func (p *ttyPrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		// A final answer without a trailing newline still counts.
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var _ wizard.Prompter = (*ttyPrompter)(nil)

// newDeps creates production dependencies from the current flags and config.
func newDeps() *Deps {
	cfg := loadCfg()
	stdinTTY := term.IsTerminal(int(os.Stdin.Fd()))
	printer := getPrinter()
	promptOut := io.Writer(os.Stdout)
	if flagOutput != "text" {
		promptOut = os.Stderr
	}
	prompter := &ttyPrompter{in: stdinReader, out: promptOut, colors: printer.Colors, noEcho: stdinTTY}
	if !stdinTTY {
		log.Debug("stdin is not a terminal, reading answers line by line")
	}
	useTUI := !flagNoTUI && stdinTTY && term.IsTerminal(int(os.Stdout.Fd()))

	return &Deps{
		Cfg:       cfg,
		Printer:   printer,
		Prompter:  prompter,
		Store:     files.New(cfg.OutDir, cfg.Owner),
		Output:    os.Stdout,
		Prompts:   promptOut,
		AssumeYes: flagYes,
		Preview: func(docs []files.Document) error {
			return preview.Show(docs, preview.Options{TUI: useTUI, In: os.Stdin, Out: os.Stdout})
		},
	}
}

// getPrinter returns a UI printer bound to the current --output flag.
func getPrinter() ui.Printer { return ui.NewPrinterFromGlobal(flagOutput) }
