package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theusc6/global-impact-platform/internal/domain"
	"github.com/theusc6/global-impact-platform/pkg/platform/sentinel"
)

func testDonation(id, donorID string) domain.Donation {
	return domain.Donation{
		ID:        id,
		Amount:    25,
		Currency:  "USD",
		Status:    domain.StatusPending,
		DonorID:   donorID,
		CharityID: "c-1",
		CreatedAt: time.Now().UTC(),
	}
}

func TestMemory_FindMissingReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.FindUserByID(ctx, "nope")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	_, err = m.FindCharityByID(ctx, "nope")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	_, err = m.FindCampaignByID(ctx, "nope")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	_, err = m.FindDonationByID(ctx, "nope")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestMemory_CreateAndListDonations(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.CreateDonation(ctx, testDonation("d-1", "u-1")))
	require.NoError(t, m.CreateDonation(ctx, testDonation("d-2", "u-1")))
	require.NoError(t, m.CreateDonation(ctx, testDonation("d-3", "u-2")))

	mine, err := m.ListDonationsByDonor(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	// Duplicate IDs are rejected.
	assert.ErrorIs(t, m.CreateDonation(ctx, testDonation("d-1", "u-1")), sentinel.ErrConflict)
}

func TestMemory_UpdateDonationStatus_CAS(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.CreateDonation(ctx, testDonation("d-1", "u-1")))

	updated, err := m.UpdateDonationStatus(ctx, "d-1", domain.StatusPending, domain.StatusProcessing, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, updated.Status)

	// Second writer still expecting PENDING loses the race.
	_, err = m.UpdateDonationStatus(ctx, "d-1", domain.StatusPending, domain.StatusFailed, nil)
	assert.ErrorIs(t, err, sentinel.ErrConflict)

	// Stored record unchanged by the failed write.
	stored, err := m.FindDonationByID(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, stored.Status)
}

func TestMemory_UpdateDonationStatus_SetsTransactionHash(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.CreateDonation(ctx, testDonation("d-1", "u-1")))

	_, err := m.UpdateDonationStatus(ctx, "d-1", domain.StatusPending, domain.StatusProcessing, nil)
	require.NoError(t, err)

	hash := "0xabc123"
	updated, err := m.UpdateDonationStatus(ctx, "d-1", domain.StatusProcessing, domain.StatusCompleted, &hash)
	require.NoError(t, err)
	require.NotNil(t, updated.TransactionHash)
	assert.Equal(t, hash, *updated.TransactionHash)
}

func TestMemory_UpdateDonationStatus_Missing(t *testing.T) {
	m := NewMemory()
	_, err := m.UpdateDonationStatus(context.Background(), "nope", domain.StatusPending, domain.StatusProcessing, nil)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestMemory_AddCampaignAmount(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.PutCampaign(domain.Campaign{ID: "cmp-1", Title: "T", CharityID: "c-1", TargetAmount: 100})

	require.NoError(t, m.AddCampaignAmount(ctx, "cmp-1", 40))
	require.NoError(t, m.AddCampaignAmount(ctx, "cmp-1", 75))

	c, err := m.FindCampaignByID(ctx, "cmp-1")
	require.NoError(t, err)
	// May exceed the target; capping is a policy the store does not own.
	assert.Equal(t, 115.0, c.CurrentAmount)

	assert.ErrorIs(t, m.AddCampaignAmount(ctx, "nope", 1), sentinel.ErrNotFound)
}

func TestMemory_ListCampaignsByCharity(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.PutCampaign(domain.Campaign{ID: "cmp-1", CharityID: "c-1"})
	m.PutCampaign(domain.Campaign{ID: "cmp-2", CharityID: "c-2"})
	m.PutCampaign(domain.Campaign{ID: "cmp-3", CharityID: "c-1"})

	got, err := m.ListCampaignsByCharity(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "cmp-1", got[0].ID)
	assert.Equal(t, "cmp-3", got[1].ID)
}
