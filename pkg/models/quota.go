package models

// QuotaPolicy limits how many generations a tool may serve per UTC day.
// ToolID "*" applies to every generator tool.
type QuotaPolicy struct {
	ToolID    string `yaml:"tool_id"`
	MaxPerDay int64  `yaml:"max_per_day"`
}

// QuotaStatus reports usage against a single policy.
type QuotaStatus struct {
	Policy    QuotaPolicy `json:"policy"`
	Used      int64       `json:"used"`
	Remaining int64       `json:"remaining"`
}
