package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette shared by every wizard step
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#22c55e"} // Green
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#6366f1", Dark: "#818cf8"} // Indigo
	ColorAccent    = lipgloss.AdaptiveColor{Light: "#f59e0b", Dark: "#fbbf24"} // Amber
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"} // Green
	ColorWarning   = lipgloss.AdaptiveColor{Light: "#ea580c", Dark: "#fb923c"} // Orange
	ColorError     = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"} // Red

	// Neutral colors
	ColorText       = lipgloss.AdaptiveColor{Light: "#1f2937", Dark: "#f3f4f6"}
	ColorTextMuted  = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	ColorTextSubtle = lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#6b7280"}
	ColorBorder     = lipgloss.AdaptiveColor{Light: "#d1d5db", Dark: "#374151"}
	ColorBorderDim  = lipgloss.AdaptiveColor{Light: "#e5e7eb", Dark: "#1f2937"}
	ColorHighlight  = lipgloss.AdaptiveColor{Light: "#dbeafe", Dark: "#1e3a5f"}
)

// Layout constants
const (
	ContentWidth  = 60
	OpinionHeight = 6
	ProgressWidth = 40
)

// ═══════════════════════════════════════════════════════════════════════════
// Header Styles
// ═══════════════════════════════════════════════════════════════════════════

var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	HeaderInfoStyle = lipgloss.NewStyle().
			Foreground(ColorTextSubtle)

	StepCounterStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)
)

// ═══════════════════════════════════════════════════════════════════════════
// Question Styles
// ═══════════════════════════════════════════════════════════════════════════

var (
	QuestionStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true).
			MarginBottom(1)

	OptionalStyle = lipgloss.NewStyle().
			Foreground(ColorTextSubtle).
			Italic(true)

	RatingStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Foreground(ColorTextMuted).
			Padding(0, 1)

	RatingSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Foreground(ColorPrimary).
				Bold(true).
				Padding(0, 1)

	RatingCursorStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorSecondary).
				Foreground(ColorText).
				Padding(0, 1)

	ScaleLabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSubtle)

	CounterStyle = lipgloss.NewStyle().
			Foreground(ColorTextSubtle)

	CounterFullStyle = lipgloss.NewStyle().
				Foreground(ColorWarning)
)

// ═══════════════════════════════════════════════════════════════════════════
// Menu / Selection Styles
// ═══════════════════════════════════════════════════════════════════════════

var (
	MenuItemStyle = lipgloss.NewStyle().
			Padding(0, 2)

	MenuItemSelectedStyle = lipgloss.NewStyle().
				Background(ColorHighlight).
				Foreground(ColorText).
				Padding(0, 2)
)

// ═══════════════════════════════════════════════════════════════════════════
// Form / Input Styles
// ═══════════════════════════════════════════════════════════════════════════

var (
	InputLabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	InputFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	InputErrorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Padding(0, 1)
)

// ═══════════════════════════════════════════════════════════════════════════
// Button Styles
// ═══════════════════════════════════════════════════════════════════════════

var (
	ButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#052e16"}).
			Background(ColorPrimary).
			Bold(true).
			Padding(0, 2)

	ButtonDisabledStyle = lipgloss.NewStyle().
				Foreground(ColorTextSubtle).
				Background(ColorBorderDim).
				Padding(0, 2)

	ButtonSecondaryStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Padding(0, 2)
)

// ═══════════════════════════════════════════════════════════════════════════
// Footer / Help Bar Styles
// ═══════════════════════════════════════════════════════════════════════════

var (
	FooterBarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorBorderDim).
			Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	HelpTextStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	HelpSeparatorStyle = lipgloss.NewStyle().
				Foreground(ColorBorderDim)
)

// ═══════════════════════════════════════════════════════════════════════════
// Panel Styles
// ═══════════════════════════════════════════════════════════════════════════

var (
	PanelActiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(1, 2)
)

// ═══════════════════════════════════════════════════════════════════════════
// Message / Alert Styles
// ═══════════════════════════════════════════════════════════════════════════

var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	FieldErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)
)

// ═══════════════════════════════════════════════════════════════════════════
// Helper Functions
// ═══════════════════════════════════════════════════════════════════════════

// HelpItem creates a formatted help item with key and description
func HelpItem(key, desc string) string {
	return HelpKeyStyle.Render(key) + HelpTextStyle.Render(" "+desc)
}

// HelpBar creates a formatted help bar from multiple items
func HelpBar(items ...string) string {
	separator := HelpSeparatorStyle.Render("  │  ")
	return strings.Join(items, separator)
}

// Button renders a button label, dimmed when disabled.
func Button(label string, enabled bool) string {
	if !enabled {
		return ButtonDisabledStyle.Render(label)
	}
	return ButtonStyle.Render(label)
}

// ratingLabel describes a point on the scale.
func ratingLabel(n int) string {
	switch n {
	case 1:
		return "Very poor"
	case 2:
		return "Poor"
	case 3:
		return "Okay"
	case 4:
		return "Good"
	case 5:
		return "Excellent"
	default:
		return ""
	}
}
