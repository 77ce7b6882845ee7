// Package ui provides the visual styling for the FrozenBOT interactive
// console.
package ui

import "github.com/charmbracelet/lipgloss"

// Frozen SRL palette.
var (
	Cream     = lipgloss.Color("#fdf6ec")
	Charcoal  = lipgloss.Color("#2b2d42")
	IceBlue   = lipgloss.Color("#8ecae6")
	Berry     = lipgloss.Color("#e76f8f")
	Pistachio = lipgloss.Color("#95d5b2")
	Warning   = lipgloss.Color("#ffb703")
	Error     = lipgloss.Color("#e63946")
)

// Styles bundles the lipgloss styles the chat view uses.
type Styles struct {
	Title     lipgloss.Style
	Bot       lipgloss.Style
	BotText   lipgloss.Style
	User      lipgloss.Style
	UserText  lipgloss.Style
	PromptBar lipgloss.Style
	Status    lipgloss.Style
	Err       lipgloss.Style
}

// DefaultStyles returns the standard FrozenBOT look.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(Charcoal).
			Background(IceBlue).
			Padding(0, 1),
		Bot:       lipgloss.NewStyle().Bold(true).Foreground(Berry),
		BotText:   lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#2b2d42", Dark: "#fdf6ec"}),
		User:      lipgloss.NewStyle().Bold(true).Foreground(IceBlue),
		UserText:  lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#3d405b", Dark: "#d9d9d9"}),
		PromptBar: lipgloss.NewStyle().Foreground(Pistachio),
		Status:    lipgloss.NewStyle().Faint(true),
		Err:       lipgloss.NewStyle().Bold(true).Foreground(Error),
	}
}
