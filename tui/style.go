package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("24")).
			Foreground(lipgloss.Color("230")).
			Bold(true)

	styleStatusAlert = lipgloss.NewStyle().
				Background(lipgloss.Color("24")).
				Foreground(lipgloss.Color("214")).
				Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212"))

	styleNarration = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleReward = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	styleEvent = lipgloss.NewStyle().
			Foreground(lipgloss.Color("177"))

	stylePetLife = lipgloss.NewStyle().
			Foreground(lipgloss.Color("151"))

	styleListing = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleAlert = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarration lineKind = iota
	kindReward
	kindEvent
	kindPetLife
	kindListing
	kindSystem
	kindAlert
)

var alertPrefixes = []string{
	"Not enough money",
	"House is full",
	"Invalid",
	"You don't have",
	"Unknown supply",
	"Quantity must",
	"No active game",
	"No save file",
	"No story event",
	"Could not",
	"Usage:",
	"I don't know how to",
}

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "🎉"), strings.HasPrefix(line, "🎯"),
		strings.HasPrefix(line, "📖 Chapter"), strings.HasPrefix(line, "Earned $"):
		return kindReward
	case strings.HasPrefix(line, "📖 Story Event"), strings.HasPrefix(line, "Choices:"),
		strings.HasPrefix(line, "Waiting for your choice"):
		return kindEvent
	case strings.HasPrefix(line, "🐾"), strings.Contains(line, " needs attention: "):
		return kindPetLife
	case strings.HasPrefix(line, "  "):
		return kindListing
	}
	for _, p := range alertPrefixes {
		if strings.HasPrefix(line, p) {
			return kindAlert
		}
	}
	return kindNarration
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindReward:
		return styleReward.Render(line)
	case kindEvent:
		return styleEvent.Render(line)
	case kindPetLife:
		return stylePetLife.Render(line)
	case kindListing:
		return styleListing.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindAlert:
		return styleAlert.Render(line)
	default:
		return styleNarration.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
