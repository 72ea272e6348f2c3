// Package domain holds the entities of the donation ledger and the rules
// that constrain them: the role-satisfaction relation and the donation
// status state machine.
package domain

import "time"

// User is a registered donor or administrator. Identifiers are opaque
// strings owned by the repository.
type User struct {
	ID            string
	Email         string
	Name          string
	WalletAddress string
	Role          Role
}

// Charity receives donations. WalletAddress is required so completed
// transfers have a destination on record.
type Charity struct {
	ID            string
	Name          string
	Description   string
	WalletAddress string
}

// Campaign is a fundraising drive owned by exactly one charity.
// CurrentAmount may transiently exceed TargetAmount when over-funded;
// capping is a repository policy, not enforced here.
type Campaign struct {
	ID            string
	Title         string
	Description   string
	TargetAmount  float64
	CurrentAmount float64
	CharityID     string
}

// Donation is a pledge by a donor to a charity, optionally against one of
// the charity's campaigns. TransactionHash is set at most once, by the
// transition into StatusCompleted.
type Donation struct {
	ID              string
	Amount          float64
	Currency        string
	Status          DonationStatus
	DonorID         string
	CharityID       string
	CampaignID      *string
	TransactionHash *string
	CreatedAt       time.Time
}
