// Package store defines the repository interfaces the resolver set is
// constructed with, plus the in-memory implementation used by tests and
// development runs. A postgres implementation lives in the postgres
// subpackage.
//
// Stores return sentinel errors (pkg/platform/sentinel); services translate
// them into domain errors.
package store

import (
	"context"

	"github.com/theusc6/global-impact-platform/internal/domain"
)

// UserStore reads user records.
type UserStore interface {
	FindUserByID(ctx context.Context, id string) (domain.User, error)
}

// CharityStore reads charity records.
type CharityStore interface {
	FindCharityByID(ctx context.Context, id string) (domain.Charity, error)
	ListCharities(ctx context.Context) ([]domain.Charity, error)
}

// CampaignStore reads campaign records and applies funding updates.
type CampaignStore interface {
	FindCampaignByID(ctx context.Context, id string) (domain.Campaign, error)
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
	ListCampaignsByCharity(ctx context.Context, charityID string) ([]domain.Campaign, error)
	// AddCampaignAmount increments a campaign's current amount when a
	// donation against it completes. Over-funding is allowed.
	AddCampaignAmount(ctx context.Context, id string, delta float64) error
}

// DonationStore persists donations. UpdateDonationStatus is the only write
// path for status changes and must be conditioned on the expected current
// status (compare-and-set), so one of two racing transitions loses with
// sentinel.ErrConflict.
type DonationStore interface {
	CreateDonation(ctx context.Context, d domain.Donation) error
	FindDonationByID(ctx context.Context, id string) (domain.Donation, error)
	ListDonationsByDonor(ctx context.Context, donorID string) ([]domain.Donation, error)
	ListDonationsByCampaign(ctx context.Context, campaignID string) ([]domain.Donation, error)
	// UpdateDonationStatus sets status to next iff the stored status still
	// equals expected, returning the updated record. txHash, when non-nil,
	// is persisted alongside the transition; callers pass it only when
	// moving into COMPLETED.
	UpdateDonationStatus(ctx context.Context, id string, expected, next domain.DonationStatus, txHash *string) (domain.Donation, error)
}

// Stores bundles the repository interfaces for constructor injection.
type Stores struct {
	Users     UserStore
	Charities CharityStore
	Campaigns CampaignStore
	Donations DonationStore
}
