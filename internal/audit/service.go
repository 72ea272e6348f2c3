package audit

import (
	"context"
	"log/slog"
	"time"
)

// Service accepts events from domain logic and hands them to the worker
// through a buffered inbox. Recording never blocks a mutation: when the
// inbox is full the event is dropped and logged, trading completeness for
// request latency.
type Service struct {
	inbox chan<- Event
	log   *slog.Logger
}

func NewService(inbox chan<- Event, log *slog.Logger) *Service {
	return &Service{inbox: inbox, log: log}
}

// Record queues an event for persistence, stamping the time if unset.
// Nil-receiver safe so tests can run the service without a trail.
func (s *Service) Record(ctx context.Context, event Event) {
	if s == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	select {
	case s.inbox <- event:
	default:
		s.log.WarnContext(ctx, "audit inbox full, dropping event",
			"action", event.Action,
			"donation_id", event.DonationID,
		)
	}
}
