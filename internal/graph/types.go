package graph

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/theusc6/global-impact-platform/internal/domain"
)

// Type resolvers wrap a domain entity and lazily resolve relationships
// through the stores. Nullable schema fields come back as *string, nil when
// the record has no value.

type userResolver struct {
	deps *Deps
	u    domain.User
}

func (r *userResolver) ID() graphql.ID { return graphql.ID(r.u.ID) }
func (r *userResolver) Email() string  { return r.u.Email }

func (r *userResolver) Name() *string {
	return optional(r.u.Name)
}

func (r *userResolver) WalletAddress() *string {
	return optional(r.u.WalletAddress)
}

func (r *userResolver) Donations(ctx context.Context) ([]*donationResolver, error) {
	donations, err := r.deps.Donations.ListDonationsByDonor(ctx, r.u.ID)
	if err != nil {
		return nil, toClientError(r.deps.Log, "User.donations", translateStoreErr(err, "donation"))
	}
	out := make([]*donationResolver, 0, len(donations))
	for _, d := range donations {
		out = append(out, &donationResolver{deps: r.deps, d: d})
	}
	return out, nil
}

type charityResolver struct {
	deps *Deps
	c    domain.Charity
}

func (r *charityResolver) ID() graphql.ID        { return graphql.ID(r.c.ID) }
func (r *charityResolver) Name() string          { return r.c.Name }
func (r *charityResolver) WalletAddress() string { return r.c.WalletAddress }

func (r *charityResolver) Description() *string {
	return optional(r.c.Description)
}

func (r *charityResolver) Campaigns(ctx context.Context) ([]*campaignResolver, error) {
	campaigns, err := r.deps.Campaigns.ListCampaignsByCharity(ctx, r.c.ID)
	if err != nil {
		return nil, toClientError(r.deps.Log, "Charity.campaigns", translateStoreErr(err, "campaign"))
	}
	out := make([]*campaignResolver, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, &campaignResolver{deps: r.deps, c: c})
	}
	return out, nil
}

type campaignResolver struct {
	deps *Deps
	c    domain.Campaign
}

func (r *campaignResolver) ID() graphql.ID         { return graphql.ID(r.c.ID) }
func (r *campaignResolver) Title() string          { return r.c.Title }
func (r *campaignResolver) Description() string    { return r.c.Description }
func (r *campaignResolver) TargetAmount() float64  { return r.c.TargetAmount }
func (r *campaignResolver) CurrentAmount() float64 { return r.c.CurrentAmount }

func (r *campaignResolver) Charity(ctx context.Context) (*charityResolver, error) {
	charity, err := r.deps.Charities.FindCharityByID(ctx, r.c.CharityID)
	if err != nil {
		return nil, toClientError(r.deps.Log, "Campaign.charity", translateStoreErr(err, "charity"))
	}
	return &charityResolver{deps: r.deps, c: charity}, nil
}

func (r *campaignResolver) Donations(ctx context.Context) ([]*donationResolver, error) {
	donations, err := r.deps.Donations.ListDonationsByCampaign(ctx, r.c.ID)
	if err != nil {
		return nil, toClientError(r.deps.Log, "Campaign.donations", translateStoreErr(err, "donation"))
	}
	out := make([]*donationResolver, 0, len(donations))
	for _, d := range donations {
		out = append(out, &donationResolver{deps: r.deps, d: d})
	}
	return out, nil
}

type donationResolver struct {
	deps *Deps
	d    domain.Donation
}

func (r *donationResolver) ID() graphql.ID   { return graphql.ID(r.d.ID) }
func (r *donationResolver) Amount() float64  { return r.d.Amount }
func (r *donationResolver) Currency() string { return r.d.Currency }
func (r *donationResolver) Status() string   { return string(r.d.Status) }

func (r *donationResolver) TransactionHash() *string {
	return r.d.TransactionHash
}

func (r *donationResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.d.CreatedAt}
}

func (r *donationResolver) Donor(ctx context.Context) (*userResolver, error) {
	user, err := r.deps.Users.FindUserByID(ctx, r.d.DonorID)
	if err != nil {
		return nil, toClientError(r.deps.Log, "Donation.donor", translateStoreErr(err, "user"))
	}
	return &userResolver{deps: r.deps, u: user}, nil
}

func (r *donationResolver) Charity(ctx context.Context) (*charityResolver, error) {
	charity, err := r.deps.Charities.FindCharityByID(ctx, r.d.CharityID)
	if err != nil {
		return nil, toClientError(r.deps.Log, "Donation.charity", translateStoreErr(err, "charity"))
	}
	return &charityResolver{deps: r.deps, c: charity}, nil
}

func (r *donationResolver) Campaign(ctx context.Context) (*campaignResolver, error) {
	if r.d.CampaignID == nil {
		return nil, nil
	}
	campaign, err := r.deps.Campaigns.FindCampaignByID(ctx, *r.d.CampaignID)
	if err != nil {
		return nil, toClientError(r.deps.Log, "Donation.campaign", translateStoreErr(err, "campaign"))
	}
	return &campaignResolver{deps: r.deps, c: campaign}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
