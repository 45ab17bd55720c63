package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lac-hong-legacy/lecture_api/dto"
	"github.com/lac-hong-legacy/lecture_api/mirror"
	"github.com/lac-hong-legacy/lecture_api/progression"
)

var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorDim    = lipgloss.Color("#928374")
	colorHeader = lipgloss.Color("#fe8019")

	styleGreen  = lipgloss.NewStyle().Foreground(colorGreen)
	styleYellow = lipgloss.NewStyle().Foreground(colorYellow)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleHeader = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	styleBold   = lipgloss.NewStyle().Bold(true)
)

func statusBadge(status progression.LectureStatus) string {
	switch status {
	case progression.StatusCompleted:
		return styleGreen.Render("✓ " + status.Label())
	case progression.StatusCurrent:
		return styleYellow.Render("▶ " + status.Label())
	default:
		return styleDim.Render("🔒 " + status.Label())
	}
}

func percentBar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return styleGreen.Render(strings.Repeat("█", filled)) + styleDim.Render(strings.Repeat("░", width-filled))
}

func renderChapter(ch *dto.ChapterLecturesResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %d/%d lectures  %s %.0f%%\n\n",
		styleHeader.Render("Chapter "+ch.ChapterID),
		ch.Summary.Completed, ch.Summary.Total,
		percentBar(ch.Summary.Percent, 20), ch.Summary.Percent)

	for _, l := range ch.Lectures {
		line := fmt.Sprintf("%3d. %-40s %s", l.Order, l.Title, statusBadge(l.Status))
		if l.Progress != nil && !l.Progress.IsCompleted && l.Progress.WatchPercentage > 0 {
			line += styleDim.Render(fmt.Sprintf("  %.0f%% watched", l.Progress.WatchPercentage))
		}
		if l.Status == progression.StatusCurrent {
			line += styleDim.Render("  " + l.ID)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	if ch.Summary.TestAvailable {
		b.WriteString(styleGreen.Render("Chapter test available") + "\n")
	} else if ch.Summary.Total > 0 {
		b.WriteString(styleDim.Render("Chapter test unlocks after the last lecture") + "\n")
	}
	return b.String()
}

func renderOverview(o *dto.OverviewResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %d/%d lectures  %s %.0f%%  %s\n",
		styleHeader.Render("Student "+o.StudentID),
		o.LecturesCompleted, o.LecturesTotal,
		percentBar(o.Percent, 20), o.Percent,
		styleDim.Render(formatSeconds(o.TotalTimeSpent)))

	for _, s := range o.Subjects {
		fmt.Fprintf(&b, "\n%s  %d/%d  %.0f%%\n", styleBold.Render(s.Name), s.Completed, s.Total, s.Percent)
		for _, ch := range s.Chapters {
			test := ""
			switch {
			case ch.TestPassed:
				test = styleGreen.Render("test passed")
			case ch.TestAvailable:
				test = styleYellow.Render("test available")
			case ch.HasTest:
				test = styleDim.Render("test locked")
			}
			fmt.Fprintf(&b, "  %-36s %s %3.0f%%  %s\n", ch.Title, percentBar(ch.Percent, 12), ch.Percent, test)
		}
	}
	return b.String()
}

func renderProfile(p *dto.ProfileResponse) string {
	var b strings.Builder
	b.WriteString(styleHeader.Render(p.DisplayName) + "\n")
	fmt.Fprintf(&b, "id     %s\nrole   %s\n", p.ID, p.Role)
	if p.GradeLevel > 0 {
		fmt.Fprintf(&b, "grade  %d\n", p.GradeLevel)
	}
	if p.GuardianID != nil {
		fmt.Fprintf(&b, "guardian %s\n", *p.GuardianID)
	}
	return b.String()
}

func renderMirror(entries []mirror.Entry) string {
	if len(entries) == 0 {
		return styleDim.Render("Mirror is empty") + "\n"
	}

	var b strings.Builder
	for _, e := range entries {
		state := styleGreen.Render("synced")
		if !e.Synced {
			state = styleYellow.Render("pending")
		}
		done := ""
		if e.IsCompleted {
			done = " completed"
		}
		fmt.Fprintf(&b, "%-36s %5.1f%% %6s%s  %s  %s\n",
			e.LectureID, e.Progress, formatSeconds(e.TimeSpent), done, state,
			styleDim.Render(e.Timestamp.Local().Format("2006-01-02 15:04:05")))
	}
	return b.String()
}

func formatSeconds(s int) string {
	if s < 60 {
		return fmt.Sprintf("%ds", s)
	}
	if s < 3600 {
		return fmt.Sprintf("%dm%02ds", s/60, s%60)
	}
	return fmt.Sprintf("%dh%02dm", s/3600, (s%3600)/60)
}
