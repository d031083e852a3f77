package dto

import "meetflow/internal/app/model"

// SystemStats represents system-wide processing statistics
type SystemStats struct {
	TotalMeetings  int     `json:"totalMeetings"`
	Completed      int     `json:"completed"`
	TranscriptOnly int     `json:"transcriptOnly"`
	Failed         int     `json:"failed"`
	AnalysisRate   float64 `json:"analysisRate"`
}

// ToSystemStats folds per-status counts into the stats DTO. The analysis
// rate is the share of non-failed meetings that got a structured summary.
func ToSystemStats(counts map[string]int) *SystemStats {
	stats := &SystemStats{
		Completed:      counts[model.StatusCompleted],
		TranscriptOnly: counts[model.StatusTranscriptOnly],
		Failed:         counts[model.StatusFailed],
	}
	for _, n := range counts {
		stats.TotalMeetings += n
	}

	if processed := stats.Completed + stats.TranscriptOnly; processed > 0 {
		stats.AnalysisRate = float64(stats.Completed) / float64(processed)
	}

	return stats
}
