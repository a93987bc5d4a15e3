package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorError    = lipgloss.Color("#FF4747")
	colorProgress = lipgloss.Color("#00CB7D")
	colorSuccess  = lipgloss.Color("#0069D9")
	colorMuted    = lipgloss.Color("240")
	colorAccent   = lipgloss.Color("205")
)

// Styles holds the lipgloss styles used by the form.
type Styles struct {
	Title         lipgloss.Style
	Label         lipgloss.Style
	FocusedLabel  lipgloss.Style
	Value         lipgloss.Style
	Help          lipgloss.Style
	Preview       lipgloss.Style
	ToastError    lipgloss.Style
	ToastProgress lipgloss.Style
	ToastSuccess  lipgloss.Style
}

// DefaultStyles returns the standard form styling.
func DefaultStyles() Styles {
	toast := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	return Styles{
		Title:         lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Label:         lipgloss.NewStyle().Foreground(colorMuted),
		FocusedLabel:  lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		Value:         lipgloss.NewStyle(),
		Help:          lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1),
		Preview:       lipgloss.NewStyle().Foreground(colorProgress),
		ToastError:    toast.Foreground(lipgloss.Color("#FFFFFF")).Background(colorError),
		ToastProgress: toast.Foreground(lipgloss.Color("#FFFFFF")).Background(colorProgress),
		ToastSuccess:  toast.Foreground(lipgloss.Color("#FFFFFF")).Background(colorSuccess),
	}
}
