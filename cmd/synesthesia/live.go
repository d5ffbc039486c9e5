package main

import (
	"strings"

	"github.com/Conceptual-Machines/synesthesia-api/internal/mapping"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(muted)
)

// liveModel remaps the typed content on every keystroke
type liveModel struct {
	opts     mapping.TextOptions
	input    []rune
	result   mapping.AutoResult
	err      error
	quitting bool
}

func newLiveModel(opts mapping.TextOptions) liveModel {
	m := liveModel{opts: opts}
	m.remap()
	return m
}

func (m *liveModel) remap() {
	m.result, m.err = mapping.MapAuto(string(m.input), m.opts)
}

func (m liveModel) Init() tea.Cmd {
	return nil
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyCtrlU:
		m.input = nil
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, key.Runes...)
	default:
		return m, nil
	}

	m.remap()
	return m, nil
}

func (m liveModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(promptStyle.Render("> ") + string(m.input) + "\n\n")

	if m.err != nil {
		b.WriteString(hintStyle.Render("type text, a #hex color or a number"))
	} else {
		b.WriteString(renderClassification(m.result.Detected) + "\n")
		b.WriteString(renderAuto(m.result))
	}

	b.WriteString("\n\n" + hintStyle.Render("esc quit · ctrl+u clear"))
	return b.String()
}
