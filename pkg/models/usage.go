package models

// UsageRecord is a per-tool hit counter row.
type UsageRecord struct {
	ID         int64  `json:"id"`
	ToolID     string `json:"tool_id"`
	UsageCount int64  `json:"usage_count"`
}
