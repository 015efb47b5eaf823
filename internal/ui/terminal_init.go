package ui

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"golang.org/x/term"
)

var terminalInitialized bool

// InitTerminal must run before lipgloss or bubbletea touch the terminal.
// termenv probes the background color with OSC 11 and the reply can leak
// into the prompt stream; a preset COLORFGBG skips the probe.
func InitTerminal() {
	if terminalInitialized {
		return
	}
	terminalInitialized = true

	if os.Getenv("COLORFGBG") == "" {
		os.Setenv("COLORFGBG", "0;15")
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		// Disable focus reporting (CSI ? 1004 l)
		fmt.Fprint(os.Stdout, "\033[?1004l")
		time.Sleep(20 * time.Millisecond)
		FlushStdinWithTimeout(150 * time.Millisecond)
	}
}

// ResetTerminalAfterTUI restores terminal modes after the preview pager
// exits and drops late replies (cursor reports, focus events) so they do not
// end up in the next prompt's answer.
func ResetTerminalAfterTUI() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}

	fmt.Fprint(os.Stdout, "\033[?1004l") // focus reporting
	fmt.Fprint(os.Stdout, "\033[?1003l") // all mouse tracking
	fmt.Fprint(os.Stdout, "\033[?1000l") // X10 mouse tracking
	fmt.Fprint(os.Stdout, "\033[?1006l") // SGR mouse mode
	fmt.Fprint(os.Stdout, "\033[?25h")   // show cursor
	fmt.Fprint(os.Stdout, "\r")

	time.Sleep(30 * time.Millisecond)
	FlushStdinWithTimeout(150 * time.Millisecond)
}

// FlushStdinWithTimeout reads and discards stdin for the given duration.
// It never reads from a pipe, so piped answers to prompts survive.
func FlushStdinWithTimeout(timeout time.Duration) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return
	}

	if err := syscall.SetNonblock(fd, true); err != nil {
		return
	}
	defer syscall.SetNonblock(fd, false)

	buf := make([]byte, 256)
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if n, _ := os.Stdin.Read(buf); n <= 0 {
			time.Sleep(5 * time.Millisecond)
		}
	}
}
