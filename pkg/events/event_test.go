package events

import (
	"encoding/json"
	"testing"
	"time"
)

type sampleEvent struct {
	BaseEvent
	Status string `json:"status"`
}

func TestNewBaseEvent(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))
	event := NewBaseEvent("origination.application.initiated", "app-123", "LoanApplication", at)

	if event.EventID() == "" {
		t.Error("expected non-empty event ID")
	}
	if event.EventType() != "origination.application.initiated" {
		t.Errorf("unexpected event type %q", event.EventType())
	}
	if event.AggregateID() != "app-123" {
		t.Errorf("unexpected aggregate ID %q", event.AggregateID())
	}
	if event.AggregateType() != "LoanApplication" {
		t.Errorf("unexpected aggregate type %q", event.AggregateType())
	}
	if !event.OccurredAt().Equal(at) || event.OccurredAt().Location() != time.UTC {
		t.Errorf("expected %v in UTC, got %v", at, event.OccurredAt())
	}

	other := NewBaseEvent("x", "app-123", "LoanApplication", at)
	if other.EventID() == event.EventID() {
		t.Error("expected unique event IDs")
	}
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
	var _ DomainEvent = sampleEvent{}
}

func TestNewOutboxEntry(t *testing.T) {
	event := sampleEvent{
		BaseEvent: NewBaseEvent("origination.application.approved", "app-789", "LoanApplication", time.Now()),
		Status:    "APPROVED",
	}

	entry, err := NewOutboxEntry(event)
	if err != nil {
		t.Fatalf("NewOutboxEntry() error = %v", err)
	}
	if entry.ID != event.EventID() || entry.AggregateID != "app-789" || entry.EventType != "origination.application.approved" {
		t.Errorf("unexpected entry %+v", entry)
	}
	if entry.PublishedAt != nil {
		t.Error("expected published at to be nil")
	}

	var parsed map[string]any
	if err := json.Unmarshal(entry.Payload, &parsed); err != nil {
		t.Fatalf("expected valid JSON payload, got error: %v", err)
	}
	if parsed["event_id"] != event.EventID() {
		t.Errorf("payload event_id = %v, want %s", parsed["event_id"], event.EventID())
	}
	if parsed["status"] != "APPROVED" {
		t.Errorf("payload status = %v, want APPROVED", parsed["status"])
	}
}
