package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan = lipgloss.Color("36")  // Teal - primary actions
	colorBlue = lipgloss.Color("75")  // Light blue - commands
	colorDim  = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	stylePrompt  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Help
// =============================================================================

var helpEntries = []struct{ usage, desc string }{
	{"versionsList:{group}.{name}", "list the versions of a package"},
	{"downloadInfos:{group}.{name}:{version}", "show download metadata of a version"},
	{cmdHelp, "show this help"},
	{cmdQuit, "log out and quit"},
}

// printHelp prints the instruction grammar.
func printHelp(w io.Writer) {
	fmt.Fprintln(w, StyleTitle.Render("Instructions"))
	usage := lipgloss.NewStyle().Width(42)
	for _, e := range helpEntries {
		fmt.Fprintln(w, "  "+usage.Render(styleCommand.Render(e.usage))+" "+StyleDim.Render(e.desc))
	}
}
