package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/innobee/feedback/internal/feedback"
	"github.com/innobee/feedback/internal/logging"
)

// MaxEmailLength bounds the email input.
const MaxEmailLength = 254

// NewModel creates a wizard model that sends feedback with submitter.
func NewModel(submitter feedback.Submitter, version string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	h := help.New()
	h.Styles.ShortKey = HelpKeyStyle
	h.Styles.ShortDesc = HelpTextStyle
	h.Styles.ShortSeparator = HelpSeparatorStyle
	h.Styles.FullKey = HelpKeyStyle
	h.Styles.FullDesc = HelpTextStyle
	h.Styles.FullSeparator = HelpSeparatorStyle

	ta := textarea.New()
	ta.Placeholder = "Tell us what would make InnoBee better..."
	ta.CharLimit = feedback.MaxOpinionLength
	ta.ShowLineNumbers = false
	ta.SetWidth(ContentWidth)
	ta.SetHeight(OpinionHeight)

	ti := textinput.New()
	ti.Placeholder = "you@example.com"
	ti.CharLimit = MaxEmailLength
	ti.Width = ContentWidth - 4

	return Model{
		wizard:    feedback.NewWizard(submitter),
		submitter: submitter,
		version:   version,
		keys:      DefaultKeyMap(),
		help:      h,
		spinner:   s,
		progress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(ProgressWidth),
			progress.WithoutPercentage(),
		),
		opinion: ta,
		email:   ti,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	logging.Info("UI: feedback wizard started")
	return nil
}

// Update handles all incoming messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if w := min(ContentWidth, msg.Width-8); w > 20 {
			m.opinion.SetWidth(w)
			m.email.Width = w - 4
		}
		return m, nil

	case spinner.TickMsg:
		if !m.wizard.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case submitResultMsg:
		return m.handleSubmitResult(msg)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m.updateFocusedInput(msg)
}

// handleKeyPress routes a key to the current step
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		logging.Info("UI: quit at step %s", m.wizard.Step())
		return m, tea.Quit
	}

	// The record is frozen while a submission is in flight.
	if m.wizard.Busy() {
		return m, nil
	}

	if m.helpVisible {
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" || msg.String() == "q" {
			m.helpVisible = false
		}
		return m, nil
	}

	if !m.typing() && key.Matches(msg, m.keys.Help) {
		m.helpVisible = true
		return m, nil
	}

	switch m.wizard.Step() {
	case feedback.StepRating:
		return m.handleRatingKeys(msg)
	case feedback.StepOpinion:
		return m.handleOpinionKeys(msg)
	case feedback.StepInterest:
		return m.handleInterestKeys(msg)
	case feedback.StepThanks:
		return m.handleThanksKeys(msg)
	}
	return m, nil
}

// typing reports whether keystrokes belong to a text field.
func (m Model) typing() bool {
	switch m.wizard.Step() {
	case feedback.StepOpinion:
		return true
	case feedback.StepInterest:
		return m.emailFocused
	}
	return false
}

// updateFocusedInput forwards non-key messages such as cursor blinks.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.wizard.Step() == feedback.StepOpinion:
		m.opinion, cmd = m.opinion.Update(msg)
	case m.wizard.Step() == feedback.StepInterest && m.emailFocused:
		m.email, cmd = m.email.Update(msg)
	}
	return m, cmd
}

// handleSubmitResult applies the outcome of an asynchronous submission
func (m Model) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	if err := m.wizard.FinishSubmit(msg.receipt, msg.err); err != nil {
		logging.Warn("UI: submission not accepted: %v", err)
		var se *feedback.SubmitError
		if errors.As(msg.err, &se) && se.Field == feedback.FieldEmail {
			m.emailErr = se.Message
		}
		return m, nil
	}
	m.emailFocused = false
	m.email.Blur()
	return m, nil
}

// resetInputs clears the widgets after the wizard is reset.
func (m Model) resetInputs() Model {
	m.ratingCursor = 0
	m.opinion.Reset()
	m.opinion.Blur()
	m.interestCursor = choiceNotInterested
	m.email.Reset()
	m.email.Blur()
	m.emailFocused = false
	m.emailErr = ""
	m.stepErr = ""
	m.helpVisible = false
	return m
}

// View renders the current step
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderProgress())
	b.WriteString("\n\n")

	var body string
	switch m.wizard.Step() {
	case feedback.StepRating:
		body = m.renderRating()
	case feedback.StepOpinion:
		body = m.renderOpinion()
	case feedback.StepInterest:
		body = m.renderInterest()
	case feedback.StepThanks:
		body = m.renderThanks()
	}
	b.WriteString(PanelActiveStyle.Render(body))
	b.WriteString("\n")

	if m.wizard.Busy() {
		b.WriteString(m.spinner.View() + " " + InfoStyle.Render("Sending feedback..."))
		b.WriteString("\n")
	} else if errMsg := m.wizard.Err(); errMsg != "" {
		b.WriteString(ErrorStyle.Render("✗ " + errMsg))
		b.WriteString("\n")
	}

	b.WriteString(FooterBarStyle.Render(m.help.ShortHelpView(m.stepKeys())))

	view := b.String()
	if m.helpVisible {
		return m.renderHelpOverlay(view)
	}
	return view
}

func (m Model) renderHeader() string {
	title := LogoStyle.Render("Give feedback")
	if m.version != "" {
		title += " " + HeaderInfoStyle.Render(m.version)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		SubtitleStyle.Render("Help us improve InnoBee for everyone."),
	)
}

func (m Model) renderProgress() string {
	step := m.wizard.Step()
	counter := "Complete"
	if step.Interactive() {
		counter = fmt.Sprintf("Step %d of %d", step.Number(), feedback.InteractiveSteps)
	}
	return m.progress.ViewAs(step.Fraction()) + "  " + StepCounterStyle.Render(counter)
}

// stepKeys returns the bindings shown in the footer for the current step.
func (m Model) stepKeys() []key.Binding {
	k := m.keys
	switch m.wizard.Step() {
	case feedback.StepRating:
		next := k.Next
		next.SetEnabled(m.wizard.CanAdvance())
		return []key.Binding{k.Rate, k.Left, k.Right, next, k.Help, k.Quit}
	case feedback.StepOpinion:
		next := k.Next
		next.SetEnabled(m.opinionValid())
		return []key.Binding{next, k.Back, k.Quit}
	case feedback.StepInterest:
		if m.emailFocused {
			leave := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "choices"))
			submit := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit"))
			return []key.Binding{submit, leave, k.Quit}
		}
		return []key.Binding{k.Up, k.Down, k.Select, k.Finish, k.Back, k.Help, k.Quit}
	case feedback.StepThanks:
		return []key.Binding{k.Restart, k.Leave}
	}
	return []key.Binding{k.Quit}
}
