package utils

import (
	"fmt"
	"strings"

	"github.com/raidledger/raidledger/internal/domain/eligibility"
	"github.com/raidledger/raidledger/internal/domain/team"
)

// PageCount returns how many pages of size per are needed for n entries,
// never less than one.
func PageCount(n, per int) int {
	if n <= 0 || per <= 0 {
		return 1
	}
	return (n + per - 1) / per
}

// PageBounds returns the slice bounds of page for n entries.
func PageBounds(page, per, n int) (int, int) {
	start := min(page*per, n)
	return start, min(start+per, n)
}

// ProgressBar renders collected/required as a fixed-width bar.
func ProgressBar(collected, required, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if required > 0 {
		filled = min(width, collected*width/required)
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatTeamItem renders one combined item with the members still short of it.
func FormatTeamItem(it team.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** %s %d/%d", it.Name, ProgressBar(it.TotalCollected, it.TotalRequired, 8), it.TotalCollected, it.TotalRequired)
	if it.RequiresFIR {
		b.WriteString(" `FIR`")
	}

	var short []string
	for _, m := range it.Members {
		if m.Collected < m.Required {
			short = append(short, fmt.Sprintf("%s %d/%d", m.Username, m.Collected, m.Required))
		}
	}
	if len(short) > 0 {
		b.WriteString("\n└ ")
		b.WriteString(strings.Join(short, ", "))
	}
	return b.String()
}

// FormatSummary renders the quest status counts.
func FormatSummary(s eligibility.Summary) string {
	return fmt.Sprintf("Completed **%d** · Available **%d** · Locked **%d** of %d\nKappa %d/%d · Lightkeeper %d/%d",
		s.Completed, s.Available, s.Locked, s.Total,
		s.KappaCompleted, s.KappaTotal,
		s.LightkeeperCompleted, s.LightkeeperTotal)
}
