// Package quota enforces daily generation limits per tool.
package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/toolsathi/toolsathi/pkg/models"
)

// ErrQuotaExceeded is returned when a tool has used up its daily quota.
var ErrQuotaExceeded = errors.New("quota exceeded")

// Counter counts generations since a given time. The audit logger satisfies it.
type Counter interface {
	CountSince(ctx context.Context, toolID string, since time.Time) (int64, error)
}

// Enforcer checks generation counts against quota policies.
type Enforcer struct {
	policies []models.QuotaPolicy
	counter  Counter
}

// New creates an Enforcer with the given policies and counter.
func New(policies []models.QuotaPolicy, c Counter) *Enforcer {
	return &Enforcer{policies: policies, counter: c}
}

// Check returns ErrQuotaExceeded if the tool has exceeded any applicable policy.
func (e *Enforcer) Check(ctx context.Context, toolID string) error {
	since := dayStart()
	for _, p := range e.applicablePolicies(toolID) {
		scope := p.ToolID
		if scope == "*" {
			scope = ""
		}
		used, err := e.counter.CountSince(ctx, scope, since)
		if err != nil {
			return fmt.Errorf("quota check: %w", err)
		}
		if used >= p.MaxPerDay {
			return ErrQuotaExceeded
		}
	}
	return nil
}

// Status returns today's quota status for a tool across all applicable policies.
// An empty toolID reports every policy.
func (e *Enforcer) Status(ctx context.Context, toolID string) ([]models.QuotaStatus, error) {
	since := dayStart()

	policies := e.policies
	if toolID != "" {
		policies = e.applicablePolicies(toolID)
	}

	statuses := make([]models.QuotaStatus, 0, len(policies))
	for _, p := range policies {
		scope := p.ToolID
		if scope == "*" {
			scope = ""
		}
		used, err := e.counter.CountSince(ctx, scope, since)
		if err != nil {
			return nil, fmt.Errorf("quota status: %w", err)
		}
		remaining := p.MaxPerDay - used
		if remaining < 0 {
			remaining = 0
		}
		statuses = append(statuses, models.QuotaStatus{
			Policy:    p,
			Used:      used,
			Remaining: remaining,
		})
	}
	return statuses, nil
}

func (e *Enforcer) applicablePolicies(toolID string) []models.QuotaPolicy {
	var result []models.QuotaPolicy
	for _, p := range e.policies {
		if p.ToolID == "*" || p.ToolID == toolID {
			result = append(result, p)
		}
	}
	return result
}

func dayStart() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
