package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/trezcool/mindbloom/core/wellness"
)

var (
	green = lipgloss.Color("#a6e3a1")
	peach = lipgloss.Color("#fab387")
	red   = lipgloss.Color("#f38ba8")
	muted = lipgloss.Color("#a6adc8")
	blue  = lipgloss.Color("#74c7ec")

	titleStyle   = lipgloss.NewStyle().Foreground(blue).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	healthyStyle = lipgloss.NewStyle().Foreground(green).Bold(true)
	needsStyle   = lipgloss.NewStyle().Foreground(peach).Bold(true)
	invalidStyle = lipgloss.NewStyle().Foreground(red)
)

var columnWidths = []int{4, 20, 22, 22, 8, 20}

func cell(s string, width int) string {
	if len(s) >= width {
		s = s[:width-2] + "…"
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

func statusStyle(s wellness.Status) lipgloss.Style {
	if s == wellness.StatusHealthy {
		return healthyStyle
	}
	return needsStyle
}

func previewStyle(p wellness.Preview) lipgloss.Style {
	switch p {
	case wellness.PreviewHealthy:
		return healthyStyle
	case wellness.PreviewNeedsMoreMeTime:
		return needsStyle
	case wellness.PreviewInvalid:
		return invalidStyle
	default:
		return mutedStyle
	}
}

// renderEntries writes one line per entry, numbered by indexOf (1-based store positions).
func renderEntries(w io.Writer, entries []wellness.Entry, indexOf func(wellness.Entry) int) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, mutedStyle.Render("no entries"))
		return
	}
	header := []string{"#", "Name", "Wellness", "Me-Time", "Minutes", "Status"}
	var sb strings.Builder
	for i, h := range header {
		sb.WriteString(headerStyle.Render(cell(h, columnWidths[i])))
	}
	_, _ = fmt.Fprintln(w, strings.TrimRight(sb.String(), " "))

	for _, e := range entries {
		sb.Reset()
		sb.WriteString(cell(fmt.Sprint(indexOf(e)+1), columnWidths[0]))
		sb.WriteString(cell(e.StudentName(), columnWidths[1]))
		sb.WriteString(cell(e.WellnessActivity(), columnWidths[2]))
		sb.WriteString(cell(e.MeTimeActivity(), columnWidths[3]))
		sb.WriteString(cell(wellness.FormatMinutes(e.ScreenFreeMinutes()), columnWidths[4]))
		sb.WriteString(statusStyle(e.Status()).Render(e.Status().String()))
		_, _ = fmt.Fprintln(w, sb.String())
	}
}

func renderStats(w io.Writer, stats wellness.Stats) {
	_, _ = fmt.Fprintln(w, titleStyle.Render("Wellness summary"))
	_, _ = fmt.Fprintf(w, "  entries:            %d\n", stats.Total)
	_, _ = fmt.Fprintf(w, "  healthy:            %d (%.0f%%)\n", stats.Healthy, stats.HealthyRatio()*100)
	_, _ = fmt.Fprintf(w, "  needs more me-time: %d\n", stats.NeedsMoreMeTime)
	_, _ = fmt.Fprintf(w, "  total minutes:      %s\n", wellness.FormatMinutes(stats.TotalMinutes))
	_, _ = fmt.Fprintf(w, "  average minutes:    %.1f\n", stats.AverageMinutes)
	_, _ = fmt.Fprintf(w, "  best / lowest:      %s / %s\n",
		wellness.FormatMinutes(stats.BestMinutes), wellness.FormatMinutes(stats.LowestMinutes))
}
