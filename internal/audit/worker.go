package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from the inbox and persists them. A store
// failure is logged and the worker keeps draining; the trail is best-effort
// and must not take the server down with it.
type Worker struct {
	store Store
	inbox <-chan Event
	log   *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, log *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, log: log}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.log.ErrorContext(ctx, "failed to append audit event",
					"error", err,
					"action", event.Action,
					"donation_id", event.DonationID,
				)
			}
		}
	}
}
