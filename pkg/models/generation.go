package models

import "time"

// CTRReport is the structured result of a thumbnail headline analysis.
type CTRReport struct {
	Score int      `json:"score"`
	Tips  []string `json:"tips"`
}

// GenerationLog is a single audited generation request.
type GenerationLog struct {
	RequestID  string    `json:"request_id"`
	ToolID     string    `json:"tool_id"`
	Model      string    `json:"model"`
	Input      string    `json:"input"`
	Output     string    `json:"output"`
	StatusCode int       `json:"status_code"`
	LatencyMs  int64     `json:"latency_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// GenerationLogQueryOpts filters audit log queries.
type GenerationLogQueryOpts struct {
	RequestID string
	ToolID    string
	Model     string
	Since     time.Time
	Limit     int
}

// GenerationStat aggregates generation counts by tool and day.
type GenerationStat struct {
	ToolID string `json:"tool_id"`
	Day    string `json:"day"`
	Count  int64  `json:"count"`
}

// AuditConfig controls the generation audit log.
type AuditConfig struct {
	Enabled       bool   `yaml:"enabled"`
	DBPath        string `yaml:"db_path"`
	MaxOutputSize int    `yaml:"max_output_size"`
	RetentionDays int    `yaml:"retention_days"`
}
