package graph

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/graph-gophers/graphql-go"

	"github.com/theusc6/global-impact-platform/internal/auth"
	"github.com/theusc6/global-impact-platform/internal/domain"
	"github.com/theusc6/global-impact-platform/internal/donation"
	"github.com/theusc6/global-impact-platform/internal/platform/metrics"
	"github.com/theusc6/global-impact-platform/internal/store"
	dErrors "github.com/theusc6/global-impact-platform/pkg/domain-errors"
	"github.com/theusc6/global-impact-platform/pkg/platform/sentinel"
)

// Deps carries everything the resolver set is constructed with. Stores are
// interfaces so tests substitute the in-memory implementation.
type Deps struct {
	Log       *slog.Logger
	Metrics   *metrics.Metrics
	Users     store.UserStore
	Charities store.CharityStore
	Campaigns store.CampaignStore
	Donations store.DonationStore
	Ledger    *donation.Service
}

// Resolver is the GraphQL root. Every operation the schema names is backed
// by a handler field wired in NewResolver; privileged handlers are wrapped
// with the authorization guard there, so the registration list below is the
// complete access-control surface. Exported methods only delegate.
type Resolver struct {
	deps *Deps

	me                   func(ctx context.Context) (*userResolver, error)
	charity              func(ctx context.Context, args charityArgs) (*charityResolver, error)
	charities            func(ctx context.Context) ([]*charityResolver, error)
	campaign             func(ctx context.Context, args campaignArgs) (*campaignResolver, error)
	campaigns            func(ctx context.Context) ([]*campaignResolver, error)
	myDonations          func(ctx context.Context) ([]*donationResolver, error)
	createDonation       func(ctx context.Context, args createDonationArgs) (*donationResolver, error)
	updateDonationStatus func(ctx context.Context, args updateDonationStatusArgs) (*donationResolver, error)
}

func NewResolver(deps *Deps) *Resolver {
	r := &Resolver{deps: deps}

	r.me = operation(deps, "me",
		auth.Require(domain.RoleUser, r.resolveMe))
	r.charity = operationArg(deps, "charity",
		r.resolveCharity)
	r.charities = operation(deps, "charities",
		auth.Require(domain.RoleAdmin, r.resolveCharities))
	r.campaign = operationArg(deps, "campaign",
		r.resolveCampaign)
	r.campaigns = operation(deps, "campaigns",
		r.resolveCampaigns)
	r.myDonations = operation(deps, "myDonations",
		auth.Require(domain.RoleUser, r.resolveMyDonations))
	r.createDonation = operationArg(deps, "createDonation",
		auth.RequireArg(domain.RoleUser, r.resolveCreateDonation))
	r.updateDonationStatus = operationArg(deps, "updateDonationStatus",
		auth.RequireArg(domain.RoleAdmin, r.resolveUpdateDonationStatus))

	return r
}

// MustSchema parses the SDL against a resolver set.
func MustSchema(r *Resolver) *graphql.Schema {
	return graphql.MustParseSchema(SchemaString, r, graphql.MaxDepth(12))
}

// operation finishes a handler for registration: it observes metrics and
// translates domain errors into client-visible ones.
func operation[T any](deps *Deps, field string, h func(context.Context) (T, error)) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		start := time.Now()
		v, err := h(ctx)
		finishOperation(deps, field, err, time.Since(start))
		if err != nil {
			var zero T
			return zero, toClientError(deps.Log, field, err)
		}
		return v, nil
	}
}

// operationArg is operation for handlers that take arguments.
func operationArg[A, T any](deps *Deps, field string, h func(context.Context, A) (T, error)) func(context.Context, A) (T, error) {
	return func(ctx context.Context, args A) (T, error) {
		start := time.Now()
		v, err := h(ctx, args)
		finishOperation(deps, field, err, time.Since(start))
		if err != nil {
			var zero T
			return zero, toClientError(deps.Log, field, err)
		}
		return v, nil
	}
}

func finishOperation(deps *Deps, field string, err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = string(dErrors.CodeOf(err))
	}
	deps.Metrics.ObserveOperation(field, outcome, elapsed)
	if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
		deps.Metrics.IncrementAuthDenial(field)
	}
}

// Argument types. Field matching is case-insensitive, so CharityID binds
// the schema's charityId.

type charityArgs struct {
	ID graphql.ID
}

type campaignArgs struct {
	ID graphql.ID
}

type donationInput struct {
	Amount     float64
	Currency   string
	CharityID  graphql.ID
	CampaignID *graphql.ID
}

type createDonationArgs struct {
	Input donationInput
}

type updateDonationStatusArgs struct {
	ID              graphql.ID
	Status          string
	TransactionHash *string
}

// Schema entry points. These only forward to the handlers registered in
// NewResolver; adding logic here would bypass the guard.

func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	return r.me(ctx)
}

func (r *Resolver) Charity(ctx context.Context, args charityArgs) (*charityResolver, error) {
	return r.charity(ctx, args)
}

func (r *Resolver) Charities(ctx context.Context) ([]*charityResolver, error) {
	return r.charities(ctx)
}

func (r *Resolver) Campaign(ctx context.Context, args campaignArgs) (*campaignResolver, error) {
	return r.campaign(ctx, args)
}

func (r *Resolver) Campaigns(ctx context.Context) ([]*campaignResolver, error) {
	return r.campaigns(ctx)
}

func (r *Resolver) MyDonations(ctx context.Context) ([]*donationResolver, error) {
	return r.myDonations(ctx)
}

func (r *Resolver) CreateDonation(ctx context.Context, args createDonationArgs) (*donationResolver, error) {
	return r.createDonation(ctx, args)
}

func (r *Resolver) UpdateDonationStatus(ctx context.Context, args updateDonationStatusArgs) (*donationResolver, error) {
	return r.updateDonationStatus(ctx, args)
}

// Handler bodies. By the time these run, authorization has already been
// enforced by the wrappers above.

func (r *Resolver) resolveMe(ctx context.Context) (*userResolver, error) {
	ac := auth.FromContext(ctx)
	user, err := r.deps.Users.FindUserByID(ctx, ac.UserID())
	if err != nil {
		return nil, translateStoreErr(err, "user")
	}
	return &userResolver{deps: r.deps, u: user}, nil
}

func (r *Resolver) resolveCharity(ctx context.Context, args charityArgs) (*charityResolver, error) {
	charity, err := r.deps.Charities.FindCharityByID(ctx, string(args.ID))
	if err != nil {
		return nil, translateStoreErr(err, "charity")
	}
	return &charityResolver{deps: r.deps, c: charity}, nil
}

func (r *Resolver) resolveCharities(ctx context.Context) ([]*charityResolver, error) {
	charities, err := r.deps.Charities.ListCharities(ctx)
	if err != nil {
		return nil, translateStoreErr(err, "charity")
	}
	out := make([]*charityResolver, 0, len(charities))
	for _, c := range charities {
		out = append(out, &charityResolver{deps: r.deps, c: c})
	}
	return out, nil
}

func (r *Resolver) resolveCampaign(ctx context.Context, args campaignArgs) (*campaignResolver, error) {
	campaign, err := r.deps.Campaigns.FindCampaignByID(ctx, string(args.ID))
	if err != nil {
		return nil, translateStoreErr(err, "campaign")
	}
	return &campaignResolver{deps: r.deps, c: campaign}, nil
}

func (r *Resolver) resolveCampaigns(ctx context.Context) ([]*campaignResolver, error) {
	campaigns, err := r.deps.Campaigns.ListCampaigns(ctx)
	if err != nil {
		return nil, translateStoreErr(err, "campaign")
	}
	out := make([]*campaignResolver, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, &campaignResolver{deps: r.deps, c: c})
	}
	return out, nil
}

func (r *Resolver) resolveMyDonations(ctx context.Context) ([]*donationResolver, error) {
	ac := auth.FromContext(ctx)
	donations, err := r.deps.Donations.ListDonationsByDonor(ctx, ac.UserID())
	if err != nil {
		return nil, translateStoreErr(err, "donation")
	}
	out := make([]*donationResolver, 0, len(donations))
	for _, d := range donations {
		out = append(out, &donationResolver{deps: r.deps, d: d})
	}
	return out, nil
}

func (r *Resolver) resolveCreateDonation(ctx context.Context, args createDonationArgs) (*donationResolver, error) {
	ac := auth.FromContext(ctx)

	in := donation.CreateInput{
		Amount:    args.Input.Amount,
		Currency:  args.Input.Currency,
		CharityID: string(args.Input.CharityID),
	}
	if args.Input.CampaignID != nil {
		campaignID := string(*args.Input.CampaignID)
		in.CampaignID = &campaignID
	}

	created, err := r.deps.Ledger.Create(ctx, ac.UserID(), in)
	if err != nil {
		return nil, err
	}
	return &donationResolver{deps: r.deps, d: created}, nil
}

func (r *Resolver) resolveUpdateDonationStatus(ctx context.Context, args updateDonationStatusArgs) (*donationResolver, error) {
	ac := auth.FromContext(ctx)

	status, err := domain.ParseDonationStatus(args.Status)
	if err != nil {
		return nil, err
	}

	updated, err := r.deps.Ledger.UpdateStatus(ctx, ac.UserID(), string(args.ID), status, args.TransactionHash)
	if err != nil {
		return nil, err
	}
	return &donationResolver{deps: r.deps, d: updated}, nil
}

// translateStoreErr maps sentinel store errors onto the domain taxonomy for
// the read paths that skip the donation service.
func translateStoreErr(err error, entity string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Newf(dErrors.CodeNotFound, "%s not found", entity)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "storage failure")
}
