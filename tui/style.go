package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleListing = lipgloss.NewStyle().
			Bold(true)

	styleExits = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleMiss = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleTerminal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228")).
			Bold(true)

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindListing
	kindExits
	kindSystem
	kindMiss
	kindTerminal
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "You see:"),
		strings.HasPrefix(line, "Nearby:"),
		strings.HasPrefix(line, "Here with you:"):
		return kindListing
	case strings.HasPrefix(line, "Exits:"),
		strings.HasPrefix(line, "There are no visible exits"):
		return kindExits
	case strings.HasPrefix(line, "You don't see"),
		strings.HasPrefix(line, "You don't have"),
		strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "You cannot"):
		return kindMiss
	case strings.HasPrefix(line, "*** "):
		return kindTerminal
	default:
		return kindNarrative
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindListing:
		return styledListing(line)
	case kindExits:
		return styleExits.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindMiss:
		return styleMiss.Render(line)
	case kindTerminal:
		return styleTerminal.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// styledListing renders "You see: a, b." with the names bold.
func styledListing(line string) string {
	idx := strings.Index(line, ": ")
	if idx < 0 {
		return styleNarrative.Render(line)
	}
	return styleNarrative.Render(line[:idx+2]) + styleListing.Render(line[idx+2:])
}

// styledPlayerInput renders the echoed player input with the prompt prefix.
func styledPlayerInput(input string) string {
	return stylePlayerInput.Render("> " + input)
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
