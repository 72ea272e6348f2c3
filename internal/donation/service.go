// Package donation implements the mutation side of the ledger: input
// validation for creation and the status state machine for transitions.
// Query reads go straight from resolvers to the stores; everything that
// writes comes through here.
package donation

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/theusc6/global-impact-platform/internal/audit"
	"github.com/theusc6/global-impact-platform/internal/domain"
	"github.com/theusc6/global-impact-platform/internal/store"
	dErrors "github.com/theusc6/global-impact-platform/pkg/domain-errors"
	"github.com/theusc6/global-impact-platform/pkg/platform/sentinel"
)

// Service orchestrates donation writes against the repository collaborator.
type Service struct {
	charities store.CharityStore
	campaigns store.CampaignStore
	donations store.DonationStore
	auditor   *audit.Service
	log       *slog.Logger
}

func NewService(stores store.Stores, auditor *audit.Service, log *slog.Logger) *Service {
	return &Service{
		charities: stores.Charities,
		campaigns: stores.Campaigns,
		donations: stores.Donations,
		auditor:   auditor,
		log:       log,
	}
}

// CreateInput is the createDonation payload after transport decoding.
type CreateInput struct {
	Amount     float64
	Currency   string
	CharityID  string
	CampaignID *string
}

// Create validates the input and persists a new donation at PENDING.
// Validation reports every violated constraint in one error; nothing is
// written unless the payload is fully valid.
func (s *Service) Create(ctx context.Context, donorID string, in CreateInput) (domain.Donation, error) {
	violations, err := s.validate(ctx, in)
	if err != nil {
		return domain.Donation{}, err
	}
	if len(violations) > 0 {
		return domain.Donation{}, dErrors.NewValidation(violations)
	}

	d := domain.Donation{
		ID:         uuid.NewString(),
		Amount:     in.Amount,
		Currency:   strings.TrimSpace(in.Currency),
		Status:     domain.StatusPending,
		DonorID:    donorID,
		CharityID:  in.CharityID,
		CampaignID: in.CampaignID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.donations.CreateDonation(ctx, d); err != nil {
		return domain.Donation{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create donation")
	}

	s.auditor.Record(ctx, audit.Event{
		DonationID: d.ID,
		ActorID:    donorID,
		Action:     audit.ActionDonationCreated,
		ToStatus:   string(d.Status),
	})
	return d, nil
}

// validate collects structural violations, then runs the two read-only
// existence checks concurrently; they are the only I/O on the validation
// path. A repository failure (as opposed to a miss) aborts with Internal.
func (s *Service) validate(ctx context.Context, in CreateInput) ([]dErrors.Violation, error) {
	var violations []dErrors.Violation

	switch {
	case math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0):
		violations = append(violations, dErrors.Violation{Field: "amount", Reason: "must be a finite number"})
	case in.Amount <= 0:
		violations = append(violations, dErrors.Violation{Field: "amount", Reason: "must be positive"})
	}

	if strings.TrimSpace(in.Currency) == "" {
		violations = append(violations, dErrors.Violation{Field: "currency", Reason: "must not be empty"})
	}

	checkCharity := strings.TrimSpace(in.CharityID) != ""
	if !checkCharity {
		violations = append(violations, dErrors.Violation{Field: "charityId", Reason: "must be provided"})
	}
	checkCampaign := in.CampaignID != nil
	if checkCampaign && strings.TrimSpace(*in.CampaignID) == "" {
		violations = append(violations, dErrors.Violation{Field: "campaignId", Reason: "must not be empty when provided"})
		checkCampaign = false
	}

	var mu sync.Mutex
	addViolation := func(v dErrors.Violation) {
		mu.Lock()
		defer mu.Unlock()
		violations = append(violations, v)
	}
	g, gctx := errgroup.WithContext(ctx)

	if checkCharity {
		g.Go(func() error {
			_, err := s.charities.FindCharityByID(gctx, in.CharityID)
			if errors.Is(err, sentinel.ErrNotFound) {
				addViolation(dErrors.Violation{Field: "charityId", Reason: "charity does not exist"})
				return nil
			}
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check charity")
			}
			return nil
		})
	}
	if checkCampaign {
		g.Go(func() error {
			campaign, err := s.campaigns.FindCampaignByID(gctx, *in.CampaignID)
			if errors.Is(err, sentinel.ErrNotFound) {
				addViolation(dErrors.Violation{Field: "campaignId", Reason: "campaign does not exist"})
				return nil
			}
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check campaign")
			}
			if campaign.CharityID != in.CharityID {
				addViolation(dErrors.Violation{Field: "campaignId", Reason: "campaign does not belong to the given charity"})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return violations, nil
}

// UpdateStatus applies the state machine to a stored donation. The store
// write is conditioned on the status read here, so a concurrent transition
// surfaces as an illegal transition rather than a lost update. txHash is
// honored only when the target status is COMPLETED.
func (s *Service) UpdateStatus(ctx context.Context, actorID, id string, requested domain.DonationStatus, txHash *string) (domain.Donation, error) {
	if !requested.Valid() {
		return domain.Donation{}, dErrors.Newf(dErrors.CodeBadRequest, "unknown donation status %q", requested)
	}

	current, err := s.donations.FindDonationByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return domain.Donation{}, dErrors.New(dErrors.CodeNotFound, "donation not found")
	}
	if err != nil {
		return domain.Donation{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load donation")
	}

	next, err := domain.Transition(current.Status, requested)
	if err != nil {
		return domain.Donation{}, err
	}
	if next != domain.StatusCompleted {
		txHash = nil
	}

	updated, err := s.donations.UpdateDonationStatus(ctx, id, current.Status, next, txHash)
	switch {
	case errors.Is(err, sentinel.ErrConflict):
		// Lost the compare-and-set race: the stored status is no longer
		// the one the transition was checked against.
		return domain.Donation{}, dErrors.Newf(dErrors.CodeIllegalTransition,
			"cannot transition donation to %s: status is no longer %s", next, current.Status)
	case errors.Is(err, sentinel.ErrNotFound):
		return domain.Donation{}, dErrors.New(dErrors.CodeNotFound, "donation not found")
	case err != nil:
		return domain.Donation{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update donation status")
	}

	if updated.Status == domain.StatusCompleted && updated.CampaignID != nil {
		if err := s.campaigns.AddCampaignAmount(ctx, *updated.CampaignID, updated.Amount); err != nil {
			// The transition is already durable; surface the bookkeeping
			// failure to operators instead of failing the mutation.
			s.log.ErrorContext(ctx, "failed to update campaign amount after completion",
				"error", err,
				"donation_id", updated.ID,
				"campaign_id", *updated.CampaignID,
			)
		}
	}

	s.auditor.Record(ctx, audit.Event{
		DonationID: updated.ID,
		ActorID:    actorID,
		Action:     audit.ActionDonationStatusChanged,
		FromStatus: string(current.Status),
		ToStatus:   string(updated.Status),
	})
	return updated, nil
}
