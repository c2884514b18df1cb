// Package cli renders staffing results for the terminal and asks for
// confirmation before commits.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/okian/consultmatch/internal/domain/types"
)

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	completeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	exhaustedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	conflictStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0")).Width(22)
	detailStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	boxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5B8DEF")).Padding(0, 1)
)

// RenderAssignment formats an assignment as a boxed summary.
func RenderAssignment(a types.Assignment) string {
	outcome := completeStyle.Render(a.Outcome)
	if a.Outcome != "complete" {
		outcome = exhaustedStyle.Render(a.Outcome)
	}

	title := "Proposed team for " + a.ProjectID
	if a.Committed {
		title = "Committed team for " + a.ProjectID
	}

	lines := []string{
		titleStyle.Render(title),
		"",
		row("Assignment", a.ID),
		row("Outcome", outcome),
		row("Team size", fmt.Sprintf("%d of %d", len(a.Consultants), a.AdjustedTeamSize)),
		row("Duration", fmt.Sprintf("%d days", a.DurationDays)),
		row("Estimated completion", a.EstimatedCompletionDate),
		row("Skill balance", a.SkillBalanceNotes),
		row("Diversity", a.DiversityNotes),
		"",
		titleStyle.Render("Members"),
	}
	if len(a.Consultants) == 0 {
		lines = append(lines, detailStyle.Render("  none"))
	}
	for i, c := range a.Consultants {
		lines = append(lines, detailStyle.Render(fmt.Sprintf("  %d. %s  %s  (%d yrs, workload %d%%)",
			i+1, c.ID, c.Name, c.YearsExperience, c.CurrentWorkload)))
	}
	if len(a.ConflictNotes) > 0 {
		lines = append(lines, "", titleStyle.Render("Conflicts"))
		for _, note := range a.ConflictNotes {
			lines = append(lines, conflictStyle.Render("  "+note))
		}
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderShortlist formats ranked candidates, one per line.
func RenderShortlist(projectID string, entries []types.ShortlistEntry) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Shortlist for " + projectID))
	b.WriteString("\n")
	if len(entries) == 0 {
		b.WriteString(detailStyle.Render("  no available consultants"))
		return b.String()
	}
	for _, e := range entries {
		b.WriteString(detailStyle.Render(fmt.Sprintf(
			"  %2d. %-6s %-24s %.3f  exp %.2f  div %.2f  dem %.2f  avail %.2f  pref %.2f",
			e.Rank, e.ConsultantID, e.Name, e.Score,
			e.Breakdown.Experience, e.Breakdown.Diversity, e.Breakdown.Demographic,
			e.Breakdown.Availability, e.Breakdown.Preference)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), detailStyle.Render(value))
}
