package store

import (
	"github.com/theusc6/global-impact-platform/internal/domain"
)

// SeedDevData loads a small fixture set into a memory store so a fresh
// process has something to query before real persistence is configured.
// IDs are fixed so dev tokens and curl examples stay stable.
func SeedDevData(m *Memory) {
	m.PutUser(domain.User{
		ID:    "u-admin",
		Email: "admin@impact.dev",
		Name:  "Platform Admin",
		Role:  domain.RoleAdmin,
	})
	m.PutUser(domain.User{
		ID:            "u-donor",
		Email:         "donor@impact.dev",
		Name:          "Dev Donor",
		WalletAddress: "0x00000000000000000000000000000000000000d0",
		Role:          domain.RoleUser,
	})

	m.PutCharity(domain.Charity{
		ID:            "c-water",
		Name:          "Clean Water Initiative",
		Description:   "Wells and filtration for rural communities",
		WalletAddress: "0x00000000000000000000000000000000000000c1",
	})
	m.PutCharity(domain.Charity{
		ID:            "c-edu",
		Name:          "Open Education Fund",
		WalletAddress: "0x00000000000000000000000000000000000000c2",
	})

	m.PutCampaign(domain.Campaign{
		ID:           "cmp-wells",
		Title:        "100 Wells",
		Description:  "Drill one hundred wells this year",
		TargetAmount: 50000,
		CharityID:    "c-water",
	})
}
