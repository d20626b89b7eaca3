package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"sf-metadata-coverage/internal/app"
	"sf-metadata-coverage/internal/types"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// renderUnsupported prints one row per failing type.  Types missing from
// the report have no channel values to show.
func renderUnsupported(entries []types.UnsupportedType) string {
	t := newTable("Type", "Members", "Channels")
	for _, entry := range entries {
		t.Row(entry.Type, strings.Join(entry.Members, ", "), formatChannels(entry.Channels))
	}
	return titleStyle.Render("Unsupported Metadata Types") + "\n" + t.Render()
}

func formatChannels(channels map[types.Channel]bool) string {
	if len(channels) == 0 {
		return "not in coverage report"
	}
	var parts []string
	for _, channel := range types.AllChannels() {
		value, ok := channels[channel]
		if !ok {
			continue
		}
		parts = append(parts, string(channel)+": "+formatBool(value))
	}
	return strings.Join(parts, ", ")
}

func formatBool(value bool) string {
	if value {
		return goodStyle.Render("yes")
	}
	return badStyle.Render("no")
}

func renderCachedReports(reports []types.CachedReport) string {
	t := newTable("Major", "Selected", "Min", "Max", "Types", "Size", "Stored", "Digest")
	for _, report := range reports {
		digest := goodStyle.Render("ok")
		if !report.DigestOK {
			digest = badStyle.Render("mismatch")
		}
		t.Row(
			strconv.Itoa(report.Major),
			strconv.Itoa(report.Versions.Selected),
			strconv.Itoa(report.Versions.Min),
			strconv.Itoa(report.Versions.Max),
			strconv.Itoa(report.TypeCount),
			formatSize(report.SizeBytes),
			report.StoredAt,
			digest,
		)
	}
	return t.Render()
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}

func renderPrefetch(outcomes []app.PrefetchOutcome) string {
	t := newTable("Release", "Version", "Types", "Result")
	for _, outcome := range outcomes {
		status := goodStyle.Render("stored")
		typeCount := strconv.Itoa(outcome.TypeCount)
		if outcome.Err != nil {
			status = badStyle.Render(errorMessage(outcome.Err))
			typeCount = "-"
		}
		t.Row(outcome.Release.Label, outcome.Release.Version, typeCount, status)
	}
	return t.Render()
}

func renderExplain(result app.ExplainResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (API %s)", result.Key, result.APIVersion)))
	b.WriteString("\n")

	channels := newTable("Channel", "Supported")
	for _, channel := range types.AllChannels() {
		value, _ := result.Coverage.Channels.Get(channel)
		channels.Row(string(channel), formatBool(value))
	}
	b.WriteString(channels.Render())

	if len(result.Coverage.Details) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Details"))
		for _, detail := range result.Coverage.Details {
			b.WriteString("\n  - " + detail.Name)
			if detail.DetailText != nil && strings.TrimSpace(*detail.DetailText) != "" {
				b.WriteString(": " + strings.TrimSpace(*detail.DetailText))
			}
			if detail.URL != nil && *detail.URL != "" {
				b.WriteString(" (" + *detail.URL + ")")
			}
		}
	}
	if len(result.Coverage.KnownIssues) > 0 {
		b.WriteString("\n")
		issues := newTable("Known issue", "Status", "Affected", "Updated")
		for _, issue := range result.Coverage.KnownIssues {
			issues.Row(issue.Title, issue.Status, strconv.Itoa(issue.AffectedUsers), issue.LastUpdated)
		}
		b.WriteString(issues.Render())
	}
	return b.String()
}
