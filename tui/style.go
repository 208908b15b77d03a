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

	styleNarration = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleCrusade = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75")).
			Bold(true)

	styleUnlock = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	styleLocked = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarration lineKind = iota
	kindCrusade
	kindUnlock
	kindLocked
	kindSystem
	kindError
	kindTrace
	kindInput // echoed command
	kindMeta  // slash-command output, shown in brackets
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "*** Achievement unlocked"),
		strings.HasPrefix(line, "  [x] "):
		return kindUnlock
	case strings.HasPrefix(line, "  [ ] "),
		strings.HasPrefix(line, "Achievement reset:"):
		return kindLocked
	case strings.HasPrefix(line, "A new crusade begins"),
		strings.HasSuffix(line, " completed!"):
		return kindCrusade
	case strings.HasPrefix(line, "There is no"),
		strings.HasPrefix(line, "You don't have"),
		strings.HasPrefix(line, "I don't know how"),
		strings.HasPrefix(line, "Which "),
		strings.HasPrefix(line, "Unknown zone"),
		strings.HasPrefix(line, "No crusade in progress"),
		strings.HasPrefix(line, "The crusade is over"):
		return kindError
	default:
		return kindNarration
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindCrusade:
		return styleCrusade.Render(line)
	case kindUnlock:
		return styleUnlock.Render(line)
	case kindLocked:
		return styleLocked.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	case kindInput:
		return stylePlayerInput.Render(line)
	case kindMeta:
		return styleSystem.Render("[" + line + "]")
	default:
		return styleNarration.Render(line)
	}
}
