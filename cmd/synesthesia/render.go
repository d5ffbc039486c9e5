package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/synesthesia-api/internal/mapping"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	accent = lipgloss.Color("#8A7DFF")
	muted  = lipgloss.Color("#6B6B80")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle   = lipgloss.NewStyle().Foreground(muted).Width(12)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F5F"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD787"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1)
)

func field(label, value string) string {
	return labelStyle.Render(label) + value
}

func hz(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64) + " Hz"
}

func renderClassification(c mapping.Classification) string {
	value := "-"
	if v := c.Value(); v != nil {
		value = fmt.Sprint(v)
	}
	return titleStyle.Render(c.Kind.String()) + " " + value
}

func renderAuto(r mapping.AutoResult) string {
	switch r.Detected.Kind {
	case mapping.KindText:
		return renderText(*r.Text)
	case mapping.KindColor:
		return renderColor(*r.Color)
	case mapping.KindNumber:
		return renderNumber(*r.Number)
	case mapping.KindUnknown:
		return ""
	default:
		return ""
	}
}

func renderText(m mapping.TextMapping) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(muted)).
		Headers("#", "char", "note", "frequency", "start")

	for _, n := range m.Mappings {
		t.Row(
			strconv.Itoa(n.Index),
			n.Char,
			n.Note,
			hz(n.Frequency),
			strconv.FormatFloat(n.Start, 'f', 2, 64)+"s",
		)
	}

	summary := fmt.Sprintf("%d notes, %s scale, %.2fs", len(m.Mappings), m.Scale, m.TotalDuration)
	return lipgloss.JoinVertical(lipgloss.Left, t.String(), titleStyle.Render(summary))
}

func renderColor(m mapping.ColorMapping) string {
	swatch := lipgloss.NewStyle().Background(lipgloss.Color(m.Complementary)).Render("    ")
	self := lipgloss.NewStyle().Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", m.RGB.R, m.RGB.G, m.RGB.B))).Render("    ")

	lines := []string{
		titleStyle.Render(m.Input) + " " + self,
		field("frequency", hz(m.Frequency)),
		field("waveform", string(m.Waveform)),
		field("volume", strconv.FormatFloat(m.VolumeModifier, 'f', 2, 64)),
		field("hsl", fmt.Sprintf("%.0f° %.0f%% %.0f%%", m.HSL.H, m.HSL.S*100, m.HSL.L*100)),
		field("complement", m.Complementary+" "+swatch),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func renderNumber(m mapping.NumberMapping) string {
	lines := []string{
		titleStyle.Render(strconv.FormatFloat(m.Input, 'g', -1, 64)),
		field("frequency", hz(m.Frequency)),
		field("pattern", string(m.Pattern)),
		field("oscillators", strconv.Itoa(m.OscillatorCount)),
		field("polygon", fmt.Sprintf("%d sides, %.1f rot/s, hue %.0f°", m.Visual.Sides, m.Visual.RotationSpeed, m.Visual.ColorHue)),
		field("particles", strconv.Itoa(m.Visual.ParticleCount)),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}
