package analyzer

import (
	"encoding/json"
	"strings"

	"meetflow/internal/app/model"
)

// rawSummaryLimit caps the summary kept when a response does not decode.
const rawSummaryLimit = 500

type analysisPayload struct {
	ExecutiveSummary string              `json:"executive_summary"`
	ActionItems      []actionItemPayload `json:"action_items"`
}

type actionItemPayload struct {
	Task  string `json:"task"`
	Owner string `json:"owner"`
}

// parseContent turns a model response into an AnalysisResult. Content that
// does not decode into the schema is kept as a truncated raw summary with
// the result marked degraded; a model that answered is not retried.
func parseContent(content, candidate string) *model.AnalysisResult {
	var payload analysisPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return &model.AnalysisResult{
			Summary:  truncate(content, rawSummaryLimit),
			Model:    candidate,
			Degraded: true,
		}
	}

	items := make([]model.ActionItem, 0, len(payload.ActionItems))
	for _, item := range payload.ActionItems {
		task := strings.TrimSpace(item.Task)
		if task == "" {
			continue
		}
		owner := strings.TrimSpace(item.Owner)
		if owner == "" {
			owner = model.OwnerUnassigned
		}
		items = append(items, model.ActionItem{Task: task, Owner: owner})
	}

	return &model.AnalysisResult{
		Summary:     strings.TrimSpace(payload.ExecutiveSummary),
		ActionItems: items,
		Model:       candidate,
	}
}

func truncate(s string, limit int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit])
}
