package aggregator

import (
	"sort"

	"tripdesk/models"
)

// SummaryCounts are the derived counters of one aggregation pass.
type SummaryCounts struct {
	TotalUsers         int
	SuccessfulWebsites int
	FailedWebsites     int
}

// BuildSummary folds per-partner outcomes into the websiteSummary entries and
// derived counts. Outcome order is preserved, so summaries follow the
// active-partner registry order regardless of which call settled first.
func BuildSummary(outcomes []models.PartnerOutcome) ([]models.WebsiteSummary, SummaryCounts) {
	summaries := make([]models.WebsiteSummary, 0, len(outcomes))
	var counts SummaryCounts

	for _, outcome := range outcomes {
		entry := models.WebsiteSummary{
			Website:   outcome.PartnerName,
			WebsiteID: outcome.PartnerID,
			Success:   outcome.Success,
			Count:     outcome.Count,
		}
		if outcome.Success {
			counts.SuccessfulWebsites++
			counts.TotalUsers += outcome.Count
		} else {
			counts.FailedWebsites++
			errMsg := outcome.Error
			hint := outcome.StatusHint
			entry.Error = &errMsg
			entry.StatusHint = &hint
		}
		summaries = append(summaries, entry)
	}
	return summaries, counts
}

// MergeRecords concatenates the data of successful outcomes in partner order
// and sorts the combined set by creation time, newest first. Records without
// a usable timestamp sort last; ties keep their concatenation order.
func MergeRecords(outcomes []models.PartnerOutcome) []models.BookingRecord {
	merged := make([]models.BookingRecord, 0)
	for _, outcome := range outcomes {
		if outcome.Success {
			merged = append(merged, outcome.Data...)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt().After(merged[j].CreatedAt())
	})
	return merged
}
