// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Provides an ASCII overview of pipeline, revenue, and tasks
package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/bizdesk/bizdesk/models"
	"github.com/bizdesk/bizdesk/store"
)

type DashboardStats struct {
	PipelineByStage map[string]PipelineStageStats

	TotalContacts int
	TotalDeals    int
	PendingTasks  int

	PipelineValue int64
	WonRevenue    int64
	Collected     int64
	Outstanding   int64

	StaleDeals []StaleDeal
}

type PipelineStageStats struct {
	Stage string
	Count int
	Value int64 // in cents
}

type StaleDeal struct {
	Title     string
	DaysSince int
}

func GenerateDashboardStats(s *store.Store) *DashboardStats {
	stats := &DashboardStats{
		PipelineByStage: make(map[string]PipelineStageStats),
	}

	deals := s.Deals()
	stats.TotalDeals = len(deals)
	now := time.Now()

	for _, deal := range deals {
		pstats := stats.PipelineByStage[deal.Stage]
		pstats.Stage = deal.Stage
		pstats.Count++
		pstats.Value += deal.Value
		stats.PipelineByStage[deal.Stage] = pstats

		switch deal.Stage {
		case models.StageClosedWon:
			stats.WonRevenue += deal.Value
		case models.StageClosedLost:
		default:
			stats.PipelineValue += deal.Value
		}

		stats.Collected += deal.Collected()
		stats.Outstanding += deal.Remaining()

		// Deals with no activity in 14+ days need attention
		if deal.Stage != models.StageClosedWon && deal.Stage != models.StageClosedLost {
			daysSince := int(now.Sub(deal.LastActivityAt).Hours() / 24)
			if daysSince > 14 {
				stats.StaleDeals = append(stats.StaleDeals, StaleDeal{
					Title:     deal.Title,
					DaysSince: daysSince,
				})
			}
		}
	}

	stats.TotalContacts = len(s.Contacts())
	for _, task := range s.Tasks() {
		if task.Status == models.TaskPending {
			stats.PendingTasks++
		}
	}

	return stats
}

// RenderDashboard formats stats as a terminal-friendly block.
func RenderDashboard(stats *DashboardStats) string {
	var sb strings.Builder

	sb.WriteString("=== Business Overview ===\n\n")
	fmt.Fprintf(&sb, "Contacts: %d   Deals: %d   Pending tasks: %d\n\n",
		stats.TotalContacts, stats.TotalDeals, stats.PendingTasks)

	sb.WriteString("Pipeline:\n")
	for _, stage := range models.PipelineStages {
		pstats, ok := stats.PipelineByStage[stage]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "  %-12s %3d deals   $%.2f\n", stage, pstats.Count, float64(pstats.Value)/100)
	}

	fmt.Fprintf(&sb, "\nOpen pipeline: $%.2f   Won: $%.2f\n", float64(stats.PipelineValue)/100, float64(stats.WonRevenue)/100)
	fmt.Fprintf(&sb, "Collected: $%.2f   Outstanding: $%.2f\n", float64(stats.Collected)/100, float64(stats.Outstanding)/100)

	if len(stats.StaleDeals) > 0 {
		sb.WriteString("\nNeeds attention:\n")
		for _, d := range stats.StaleDeals {
			fmt.Fprintf(&sb, "  %s (%d days quiet)\n", d.Title, d.DaysSince)
		}
	}

	return sb.String()
}
