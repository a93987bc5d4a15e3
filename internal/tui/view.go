package tui

import (
	"fmt"
	"strings"

	"flipbook/internal/assembly"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("flipbook"))
	b.WriteString("\n")

	b.WriteString(m.row(fieldInputDir, "Input directory", m.inputDir.View()))
	b.WriteString(m.row(fieldOutputFile, "Output file", m.outputFile.View()))
	b.WriteString(m.row(fieldFormat, "Format", m.formatValue()))
	b.WriteString(m.row(fieldFPS, "Frame rate", m.fps.View()))
	if m.format == assembly.FormatWebP {
		b.WriteString(m.row(fieldLossless, "Compression", m.losslessValue()))
		if !m.lossless {
			b.WriteString(m.row(fieldQuality, "Quality", m.quality.View()))
		}
	}

	if m.preview != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Preview.Render(m.preview))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.button())
	b.WriteString("\n")

	if line := m.toastLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render("tab: next field • space: toggle • enter: convert • esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) row(f field, label, value string) string {
	style := m.styles.Label
	if m.focus == f {
		style = m.styles.FocusedLabel
	}
	return fmt.Sprintf("%s %s\n", style.Render(fmt.Sprintf("%-16s", label+":")), m.styles.Value.Render(value))
}

func (m Model) formatValue() string {
	if m.format == assembly.FormatAPNG {
		return "webp / [apng]"
	}
	return "[webp] / apng"
}

func (m Model) losslessValue() string {
	if m.lossless {
		return "lossy / [lossless]"
	}
	return "[lossy] / lossless"
}

func (m Model) button() string {
	label := "[ Convert ]"
	if m.converting {
		label = m.spinner.View() + " Converting"
	}
	if m.focus == fieldConvert && !m.converting {
		return m.styles.FocusedLabel.Render(label)
	}
	return m.styles.Label.Render(label)
}

func (m Model) toastLine() string {
	switch m.toast.kind {
	case toastError:
		return m.styles.ToastError.Render(m.toast.text)
	case toastProgress:
		return m.styles.ToastProgress.Render(m.toast.text)
	case toastSuccess:
		return m.styles.ToastSuccess.Render(m.toast.text)
	default:
		return ""
	}
}
