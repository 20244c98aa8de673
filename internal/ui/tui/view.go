package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/rahilkadakia/gcevm/internal/report"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

func currentSpinner(frame int) string {
	return spinnerFrames[frame%len(spinnerFrames)]
}

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderZones(&b, m)

	if len(m.Logs) > 0 && !m.Done {
		renderLogs(&b, m)
	}

	if m.Done && m.Report != nil {
		renderSummary(&b, m)
	}

	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	b.WriteString(titleStyle.Render(fmt.Sprintf("gcevm sweep: %s", m.Project)))

	status := " "
	switch {
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Done:
		status += okStyle.Render("Done")
	default:
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + warningStyle.Render("Sweeping")
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderZones(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Zones"))
	b.WriteString("\n")

	for _, row := range m.Rows {
		mark, style := zoneMark(row, m.SpinnerFrame)
		line := fmt.Sprintf("  %s %-20s", mark, row.Zone)

		if row.Status == ZoneFinished {
			line += fmt.Sprintf(" %-16s", string(row.Outcome))
			if row.Instance != "" && row.Outcome == report.OutcomeCreated {
				line += " " + row.Instance
			}
		}

		b.WriteString(style(line))
		b.WriteString("\n")

		if row.Detail != "" && row.Status == ZoneFinished && row.Outcome != report.OutcomeCreated {
			b.WriteString(dimStyle.Render("       " + truncate(row.Detail, 100)))
			b.WriteString("\n")
		}
	}
}

func zoneMark(row ZoneRow, frame int) (string, func(...string) string) {
	switch row.Status {
	case ZoneActive:
		return spinner, activeStyle.Render
	case ZoneFinished:
		switch row.Outcome {
		case report.OutcomeCreated:
			return checkMark, okStyle.Render
		case report.OutcomeQuotaDenied, report.OutcomeGPUUnavailable, report.OutcomeZoneExhausted:
			return warnMark, warningStyle.Render
		default:
			return crossMark, failedStyle.Render
		}
	default:
		return pending, dimStyle.Render
	}
}

func renderLogs(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Activity"))
	b.WriteString("\n")
	for _, line := range m.Logs {
		b.WriteString(dimStyle.Render("  " + truncate(line, 110)))
		b.WriteString("\n")
	}
}

func renderSummary(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Summary"))
	b.WriteString("\n")
	s := m.Report.Summary
	b.WriteString(fmt.Sprintf("  attempted %d, %s, %s\n",
		s.Attempted,
		okStyle.Render(fmt.Sprintf("created %d", s.Created)),
		failedStyle.Render(fmt.Sprintf("failed %d", s.Failed)),
	))
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := time.Since(m.StartTime).Round(time.Second)
	b.WriteString(footerStyle.Render(fmt.Sprintf("  elapsed %s  |  q to quit", elapsed)))
	b.WriteString("\n")
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
