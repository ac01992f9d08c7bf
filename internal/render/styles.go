package render

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorText    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#DDDDDD"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorError   = lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#F7768E"}
	colorGreen   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	summaryStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText)

	sourceStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	timeStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	descriptionStyle = lipgloss.NewStyle().
				Foreground(colorText).
				PaddingLeft(2)

	linkStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Underline(true).
			PaddingLeft(2)

	topicStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGreen)

	statusStyles = map[string]lipgloss.Style{
		"loading": lipgloss.NewStyle().Foreground(colorPrimary),
		"error":   lipgloss.NewStyle().Foreground(colorError).Bold(true),
		"empty":   lipgloss.NewStyle().Foreground(colorDim).Italic(true),
		"info":    lipgloss.NewStyle().Foreground(colorText),
	}
)
