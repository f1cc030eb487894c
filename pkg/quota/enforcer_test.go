package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/toolsathi/toolsathi/pkg/models"
)

type fakeCounter struct {
	counts map[string]int64
}

func (f *fakeCounter) CountSince(_ context.Context, toolID string, _ time.Time) (int64, error) {
	return f.counts[toolID], nil
}

func TestCheckUnderQuota(t *testing.T) {
	e := New(
		[]models.QuotaPolicy{{ToolID: "viral-title", MaxPerDay: 10}},
		&fakeCounter{counts: map[string]int64{"viral-title": 3}},
	)
	if err := e.Check(context.Background(), "viral-title"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestCheckExceeded(t *testing.T) {
	e := New(
		[]models.QuotaPolicy{{ToolID: "viral-title", MaxPerDay: 10}},
		&fakeCounter{counts: map[string]int64{"viral-title": 10}},
	)
	err := e.Check(context.Background(), "viral-title")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("expected ErrQuotaExceeded, got %v", err)
	}
}

func TestCheckWildcard(t *testing.T) {
	// A "*" policy caps the total across all tools.
	e := New(
		[]models.QuotaPolicy{{ToolID: "*", MaxPerDay: 100}},
		&fakeCounter{counts: map[string]int64{"": 100, "tags": 5}},
	)
	err := e.Check(context.Background(), "tags")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("expected ErrQuotaExceeded, got %v", err)
	}
}

func TestCheckNoPolicies(t *testing.T) {
	e := New(nil, &fakeCounter{counts: map[string]int64{"tags": 9999}})
	if err := e.Check(context.Background(), "tags"); err != nil {
		t.Errorf("expected no error without policies, got %v", err)
	}
}

func TestStatus(t *testing.T) {
	e := New(
		[]models.QuotaPolicy{
			{ToolID: "viral-title", MaxPerDay: 10},
			{ToolID: "tags", MaxPerDay: 5},
		},
		&fakeCounter{counts: map[string]int64{"viral-title": 7, "tags": 8}},
	)

	statuses, err := e.Status(context.Background(), "")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	for _, s := range statuses {
		switch s.Policy.ToolID {
		case "viral-title":
			if s.Used != 7 || s.Remaining != 3 {
				t.Errorf("viral-title: used=%d remaining=%d", s.Used, s.Remaining)
			}
		case "tags":
			// Over quota reports zero remaining, never negative.
			if s.Used != 8 || s.Remaining != 0 {
				t.Errorf("tags: used=%d remaining=%d", s.Used, s.Remaining)
			}
		}
	}
}

func TestStatusFiltered(t *testing.T) {
	e := New(
		[]models.QuotaPolicy{
			{ToolID: "viral-title", MaxPerDay: 10},
			{ToolID: "tags", MaxPerDay: 5},
		},
		&fakeCounter{counts: map[string]int64{"viral-title": 1}},
	)
	statuses, err := e.Status(context.Background(), "viral-title")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(statuses) != 1 || statuses[0].Policy.ToolID != "viral-title" {
		t.Errorf("unexpected statuses: %+v", statuses)
	}
}
