package store

import (
	"context"
	"sort"
	"sync"

	"github.com/theusc6/global-impact-platform/internal/domain"
	"github.com/theusc6/global-impact-platform/pkg/platform/sentinel"
)

// Memory implements every store interface over mutex-guarded maps. It
// intentionally favors clarity over performance and doubles as the test
// fake for the repository collaborator.
type Memory struct {
	mu        sync.RWMutex
	users     map[string]domain.User
	charities map[string]domain.Charity
	campaigns map[string]domain.Campaign
	donations map[string]domain.Donation
}

func NewMemory() *Memory {
	return &Memory{
		users:     make(map[string]domain.User),
		charities: make(map[string]domain.Charity),
		campaigns: make(map[string]domain.Campaign),
		donations: make(map[string]domain.Donation),
	}
}

// Bundle returns the Stores view of this memory store.
func (m *Memory) Bundle() Stores {
	return Stores{Users: m, Charities: m, Campaigns: m, Donations: m}
}

func (m *Memory) PutUser(u domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

func (m *Memory) FindUserByID(_ context.Context, id string) (domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return domain.User{}, sentinel.ErrNotFound
}

func (m *Memory) PutCharity(c domain.Charity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.charities[c.ID] = c
}

func (m *Memory) FindCharityByID(_ context.Context, id string) (domain.Charity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.charities[id]; ok {
		return c, nil
	}
	return domain.Charity{}, sentinel.ErrNotFound
}

func (m *Memory) ListCharities(_ context.Context) ([]domain.Charity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Charity, 0, len(m.charities))
	for _, c := range m.charities {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) PutCampaign(c domain.Campaign) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.campaigns[c.ID] = c
}

func (m *Memory) FindCampaignByID(_ context.Context, id string) (domain.Campaign, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.campaigns[id]; ok {
		return c, nil
	}
	return domain.Campaign{}, sentinel.ErrNotFound
}

func (m *Memory) ListCampaigns(_ context.Context) ([]domain.Campaign, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Campaign, 0, len(m.campaigns))
	for _, c := range m.campaigns {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) ListCampaignsByCharity(_ context.Context, charityID string) ([]domain.Campaign, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Campaign
	for _, c := range m.campaigns {
		if c.CharityID == charityID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) AddCampaignAmount(_ context.Context, id string, delta float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	c.CurrentAmount += delta
	m.campaigns[id] = c
	return nil
}

func (m *Memory) CreateDonation(_ context.Context, d domain.Donation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.donations[d.ID]; exists {
		return sentinel.ErrConflict
	}
	m.donations[d.ID] = d
	return nil
}

func (m *Memory) FindDonationByID(_ context.Context, id string) (domain.Donation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.donations[id]; ok {
		return d, nil
	}
	return domain.Donation{}, sentinel.ErrNotFound
}

func (m *Memory) ListDonationsByDonor(_ context.Context, donorID string) ([]domain.Donation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Donation
	for _, d := range m.donations {
		if d.DonorID == donorID {
			out = append(out, d)
		}
	}
	sortDonations(out)
	return out, nil
}

func (m *Memory) ListDonationsByCampaign(_ context.Context, campaignID string) ([]domain.Donation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Donation
	for _, d := range m.donations {
		if d.CampaignID != nil && *d.CampaignID == campaignID {
			out = append(out, d)
		}
	}
	sortDonations(out)
	return out, nil
}

// UpdateDonationStatus is the compare-and-set write: the single lock makes
// the read-compare-write atomic, mirroring the conditioned UPDATE the
// postgres store issues.
func (m *Memory) UpdateDonationStatus(_ context.Context, id string, expected, next domain.DonationStatus, txHash *string) (domain.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.donations[id]
	if !ok {
		return domain.Donation{}, sentinel.ErrNotFound
	}
	if d.Status != expected {
		return domain.Donation{}, sentinel.ErrConflict
	}
	d.Status = next
	if txHash != nil {
		d.TransactionHash = txHash
	}
	m.donations[id] = d
	return d, nil
}

// DonationCount reports how many donations have been persisted. Test hook.
func (m *Memory) DonationCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.donations)
}

func sortDonations(ds []domain.Donation) {
	sort.Slice(ds, func(i, j int) bool {
		if ds[i].CreatedAt.Equal(ds[j].CreatedAt) {
			return ds[i].ID < ds[j].ID
		}
		return ds[i].CreatedAt.Before(ds[j].CreatedAt)
	})
}
