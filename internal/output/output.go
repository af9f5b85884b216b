// Package output provides styled terminal output for the CLI
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/innobee/feedback/internal/feedback"
)

// Symbols for message prefixes
const (
	SymbolSuccess  = "✓"
	SymbolError    = "✗"
	SymbolWarning  = "▲"
	SymbolProgress = "◎"
	SymbolHint     = "↳"
	SymbolInfo     = "○"
	SymbolStar     = "★"
	SymbolNoStar   = "☆"
	SymbolFeedback = "💬"
)

// Styles for different message types
var (
	// Colors
	colorSuccess = lipgloss.Color("#22c55e") // green
	colorError   = lipgloss.Color("#ef4444") // red
	colorWarning = lipgloss.Color("#eab308") // yellow
	colorCyan    = lipgloss.Color("#06b6d4") // cyan
	colorDim     = lipgloss.Color("#6b7280") // gray

	// Styled symbols
	successStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	warningStyle  = lipgloss.NewStyle().Foreground(colorWarning)
	progressStyle = lipgloss.NewStyle().Foreground(colorCyan)
	hintStyle     = lipgloss.NewStyle().Foreground(colorDim)
	infoStyle     = lipgloss.NewStyle().Foreground(colorDim)

	// Text styles
	boldStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	cyanStyle   = lipgloss.NewStyle().Foreground(colorCyan)
	greenStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	yellowStyle = lipgloss.NewStyle().Foreground(colorWarning)
	redStyle    = lipgloss.NewStyle().Foreground(colorError)

	// Header style
	headerStyle = lipgloss.NewStyle().
			Foreground(colorCyan).
			Bold(true)
)

// Success prints a success message with green checkmark
func Success(message string) {
	fmt.Println(successStyle.Render(SymbolSuccess) + " " + greenStyle.Render(message))
}

// Successf prints a formatted success message
func Successf(format string, args ...interface{}) {
	Success(fmt.Sprintf(format, args...))
}

// Error prints an error message with red X
func Error(message string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(SymbolError)+" "+redStyle.Render(message))
}

// Errorf prints a formatted error message
func Errorf(format string, args ...interface{}) {
	Error(fmt.Sprintf(format, args...))
}

// Warning prints a warning message with yellow triangle
func Warning(message string) {
	fmt.Println(warningStyle.Render(SymbolWarning) + " " + yellowStyle.Render(message))
}

// Progress prints a progress message with cyan circle
func Progress(message string) {
	fmt.Println(progressStyle.Render(SymbolProgress) + " " + cyanStyle.Render(message))
}

// Hint prints a hint message with dim arrow
func Hint(message string) {
	fmt.Println(hintStyle.Render(SymbolHint) + " " + dimStyle.Render(message))
}

// Info prints an info message with dim circle
func Info(message string) {
	fmt.Println(infoStyle.Render(SymbolInfo) + " " + message)
}

// Header prints a section header
func Header(title string) {
	fmt.Println(headerStyle.Render(title))
}

// Bold returns bolded text
func Bold(text string) string {
	return boldStyle.Render(text)
}

// Dim returns dimmed text
func Dim(text string) string {
	return dimStyle.Render(text)
}

// Path formats a file path (shortens home directory to ~)
func Path(p string) string {
	home, err := os.UserHomeDir()
	if err == nil && home != "" && strings.HasPrefix(p, home) {
		p = "~" + strings.TrimPrefix(p, home)
	}
	return dimStyle.Render(p)
}

// KeyValue prints a key-value pair with proper formatting
func KeyValue(key, value string) {
	fmt.Printf("%s %s\n", dimStyle.Render(key+":"), value)
}

// Blank prints an empty line
func Blank() {
	fmt.Println()
}

// Stars renders a rating as filled and empty stars. Out of range ratings
// render as all empty.
func Stars(rating int) string {
	if !feedback.IsValidRating(rating) {
		rating = 0
	}
	return yellowStyle.Render(strings.Repeat(SymbolStar, rating)) +
		dimStyle.Render(strings.Repeat(SymbolNoStar, feedback.MaxRating-rating))
}

// FeedbackHeader prints the header shown before talking to the service
func FeedbackHeader(endpoint string) {
	fmt.Println(cyanStyle.Render(SymbolFeedback) + " " + Bold("InnoBee feedback"))
	KeyValue("Endpoint", endpoint)
	Blank()
}

// PrintPayload prints what is about to be (or was) submitted
func PrintPayload(p feedback.Payload) {
	KeyValue("Rating", Stars(p.Rating))

	opinion := p.ImprovementText
	if opinion == "" {
		opinion = Dim("(none)")
	}
	KeyValue("Opinion", opinion)

	if p.InterestedInResearch {
		KeyValue("Research", greenStyle.Render("interested")+" "+Dim("<"+p.Email+">"))
	} else {
		KeyValue("Research", Dim("not interested"))
	}
}

// Submitted prints the success message after the service accepted feedback
func Submitted(r *feedback.Receipt) {
	Success("Thanks for your feedback!")
	if r == nil {
		return
	}
	if r.ID != "" {
		KeyValue("Reference", Bold(r.ID))
	}
	KeyValue("Status", fmt.Sprintf("%d", r.Status))
}
