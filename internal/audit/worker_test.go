package audit

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceAndWorker_Deliver(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	inbox := make(chan Event, 8)
	store := NewMemoryStore()
	svc := NewService(inbox, log)
	worker := NewWorker(store, inbox, log)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = worker.Run(ctx)
	}()

	svc.Record(ctx, Event{
		DonationID: "d-1",
		ActorID:    "u-1",
		Action:     ActionDonationCreated,
	})
	svc.Record(ctx, Event{
		DonationID: "d-1",
		ActorID:    "admin-1",
		Action:     ActionDonationStatusChanged,
		FromStatus: "PENDING",
		ToStatus:   "PROCESSING",
	})

	require.Eventually(t, func() bool {
		events, err := store.ListByDonation(ctx, "d-1")
		return err == nil && len(events) == 2
	}, time.Second, 5*time.Millisecond)

	events, err := store.ListByDonation(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, ActionDonationCreated, events[0].Action)
	assert.False(t, events[0].Timestamp.IsZero())
	assert.Equal(t, "PROCESSING", events[1].ToStatus)

	cancel()
	<-done
}

func TestService_FullInboxDropsInsteadOfBlocking(t *testing.T) {
	ctx := context.Background()
	inbox := make(chan Event, 1)
	svc := NewService(inbox, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// No worker is draining; the second record must not block.
	svc.Record(ctx, Event{DonationID: "d-1", Action: ActionDonationCreated})
	svc.Record(ctx, Event{DonationID: "d-2", Action: ActionDonationCreated})

	assert.Len(t, inbox, 1)
}
