package mcp

import (
	"fmt"
	"strings"

	"github.com/toolsathi/toolsathi/pkg/models"
	"github.com/toolsathi/toolsathi/pkg/registry"
)

// formatUsage formats usage records as a text table.
func formatUsage(records []models.UsageRecord) string {
	if len(records) == 0 {
		return "No usage data found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-20s %-30s %8s\n", "Tool ID", "Name", "Uses")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	var total int64
	for _, r := range records {
		fmt.Fprintf(&b, "%-20s %-30s %8d\n", r.ToolID, registry.Humanize(r.ToolID), r.UsageCount)
		total += r.UsageCount
	}
	b.WriteString(strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(&b, "%-20s %-30s %8d\n", "TOTAL", "", total)
	return b.String()
}

// formatQuotaStatus formats quota statuses as a text table.
func formatQuotaStatus(statuses []models.QuotaStatus) string {
	if len(statuses) == 0 {
		return "No quota policies found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-20s %12s %12s %12s %6s\n",
		"Tool ID", "Max/Day", "Used", "Remaining", "Usage%")
	b.WriteString(strings.Repeat("-", 68) + "\n")
	for _, s := range statuses {
		pct := float64(0)
		if s.Policy.MaxPerDay > 0 {
			pct = float64(s.Used) / float64(s.Policy.MaxPerDay) * 100
		}
		fmt.Fprintf(&b, "%-20s %12d %12d %12d %5.1f%%\n",
			s.Policy.ToolID, s.Policy.MaxPerDay, s.Used, s.Remaining, pct)
	}
	return b.String()
}

// formatCacheStats formats cache stats as text.
func formatCacheStats(stats models.CacheStats) string {
	total := stats.Hits + stats.Misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(stats.Hits) / float64(total) * 100
	}
	return fmt.Sprintf("Cache Statistics\n"+
		"  Entries:  %d\n"+
		"  Hits:     %d\n"+
		"  Misses:   %d\n"+
		"  Hit Rate: %.1f%%\n",
		stats.Entries, stats.Hits, stats.Misses, hitRate)
}

// formatAuditEntries formats generation log entries as a text table.
func formatAuditEntries(entries []models.GenerationLog) string {
	if len(entries) == 0 {
		return "No audit entries found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-38s %-18s %-22s %-20s %6s %8s\n",
		"Request ID", "Tool", "Model", "Time", "Status", "Latency")
	b.WriteString(strings.Repeat("-", 118) + "\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "%-38s %-18s %-22s %-20s %6d %6dms\n",
			e.RequestID, e.ToolID, e.Model,
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.StatusCode, e.LatencyMs)
	}
	return b.String()
}
