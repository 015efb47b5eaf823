package main

import "github.com/rklebes/wifi-setup/internal/ui"

func main() {
	// Must run before lipgloss or bubbletea touch the terminal.
	ui.InitTerminal()

	Execute()
}
