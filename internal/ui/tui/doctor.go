package tui

import "strings"

// DoctorRow is one diagnostic line rendered by RenderDoctor.
type DoctorRow struct {
	Name   string
	OK     bool
	Detail string
}

// RenderDoctor renders diagnostic rows as a styled report.
func RenderDoctor(rows []DoctorRow) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("gcevm doctor"))
	b.WriteString("\n\n")

	healthy := true
	for _, row := range rows {
		mark := okStyle.Render(checkMark)
		if !row.OK {
			mark = failedStyle.Render(crossMark)
			healthy = false
		}
		b.WriteString("  " + mark + " " + activeStyle.Render(row.Name))
		if row.Detail != "" {
			b.WriteString(" " + dimStyle.Render(row.Detail))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if healthy {
		b.WriteString(okStyle.Render("All checks passed."))
	} else {
		b.WriteString(failedStyle.Render("Some checks failed."))
	}
	b.WriteString("\n")
	return b.String()
}
