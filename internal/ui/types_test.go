package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"rate with digit", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}}, km.Rate},
		{"lower with arrow", tea.KeyMsg{Type: tea.KeyLeft}, km.Left},
		{"higher with l", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}}, km.Right},
		{"up with k", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}, km.Up},
		{"down with arrow", tea.KeyMsg{Type: tea.KeyDown}, km.Down},
		{"next with tab", tea.KeyMsg{Type: tea.KeyTab}, km.Next},
		{"next with ctrl+n", tea.KeyMsg{Type: tea.KeyCtrlN}, km.Next},
		{"confirm with enter", tea.KeyMsg{Type: tea.KeyEnter}, km.Confirm},
		{"select with space", tea.KeyMsg{Type: tea.KeySpace}, km.Select},
		{"back with esc", tea.KeyMsg{Type: tea.KeyEsc}, km.Back},
		{"back with shift+tab", tea.KeyMsg{Type: tea.KeyShiftTab}, km.Back},
		{"finish with ctrl+s", tea.KeyMsg{Type: tea.KeyCtrlS}, km.Finish},
		{"restart with n", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}, km.Restart},
		{"leave with q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, km.Leave},
		{"quit with ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit},
		{"help with ?", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}, km.Help},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !key.Matches(tt.msg, tt.binding) {
				t.Errorf("binding should match %q", tt.msg.String())
			}
		})
	}

	t.Run("digits outside the scale", func(t *testing.T) {
		for _, r := range []rune{'0', '6', '9'} {
			if key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}, km.Rate) {
				t.Errorf("Rate binding should not match %q", r)
			}
		}
	})
}

func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()

	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp() should list bindings")
	}

	total := 0
	for _, col := range km.FullHelp() {
		total += len(col)
	}
	if total != 14 {
		t.Errorf("FullHelp() should list every binding, got %d", total)
	}
}
