// Package postgres implements the repository interfaces over a pgx pool.
// Status transitions are conditioned on the expected current status so
// concurrent updates resolve to exactly one winner (see schema.sql for the
// table definitions).
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theusc6/global-impact-platform/internal/domain"
	"github.com/theusc6/global-impact-platform/pkg/platform/sentinel"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) FindUserByID(ctx context.Context, id string) (domain.User, error) {
	var u domain.User
	err := s.pool.QueryRow(ctx, `
SELECT id, email, COALESCE(name, ''), COALESCE(wallet_address, ''), role
FROM users
WHERE id = $1;
`, id).Scan(&u.ID, &u.Email, &u.Name, &u.WalletAddress, &u.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, sentinel.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (s *Store) FindCharityByID(ctx context.Context, id string) (domain.Charity, error) {
	var c domain.Charity
	err := s.pool.QueryRow(ctx, `
SELECT id, name, COALESCE(description, ''), wallet_address
FROM charities
WHERE id = $1;
`, id).Scan(&c.ID, &c.Name, &c.Description, &c.WalletAddress)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Charity{}, sentinel.ErrNotFound
	}
	if err != nil {
		return domain.Charity{}, fmt.Errorf("find charity: %w", err)
	}
	return c, nil
}

func (s *Store) ListCharities(ctx context.Context) ([]domain.Charity, error) {
	rows, err := s.pool.Query(ctx, `
SELECT id, name, COALESCE(description, ''), wallet_address
FROM charities
ORDER BY name;
`)
	if err != nil {
		return nil, fmt.Errorf("list charities: %w", err)
	}
	defer rows.Close()

	var items []domain.Charity
	for rows.Next() {
		var c domain.Charity
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.WalletAddress); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (s *Store) FindCampaignByID(ctx context.Context, id string) (domain.Campaign, error) {
	var c domain.Campaign
	err := s.pool.QueryRow(ctx, `
SELECT id, title, COALESCE(description, ''), target_amount, current_amount, charity_id
FROM campaigns
WHERE id = $1;
`, id).Scan(&c.ID, &c.Title, &c.Description, &c.TargetAmount, &c.CurrentAmount, &c.CharityID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Campaign{}, sentinel.ErrNotFound
	}
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("find campaign: %w", err)
	}
	return c, nil
}

func (s *Store) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	return s.queryCampaigns(ctx, `
SELECT id, title, COALESCE(description, ''), target_amount, current_amount, charity_id
FROM campaigns
ORDER BY title;
`)
}

func (s *Store) ListCampaignsByCharity(ctx context.Context, charityID string) ([]domain.Campaign, error) {
	return s.queryCampaigns(ctx, `
SELECT id, title, COALESCE(description, ''), target_amount, current_amount, charity_id
FROM campaigns
WHERE charity_id = $1
ORDER BY title;
`, charityID)
}

func (s *Store) queryCampaigns(ctx context.Context, query string, args ...any) ([]domain.Campaign, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var items []domain.Campaign
	for rows.Next() {
		var c domain.Campaign
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.TargetAmount, &c.CurrentAmount, &c.CharityID); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (s *Store) AddCampaignAmount(ctx context.Context, id string, delta float64) error {
	tag, err := s.pool.Exec(ctx, `
UPDATE campaigns
SET current_amount = current_amount + $2
WHERE id = $1;
`, id, delta)
	if err != nil {
		return fmt.Errorf("add campaign amount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Store) CreateDonation(ctx context.Context, d domain.Donation) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO donations (id, amount, currency, status, donor_id, charity_id, campaign_id, transaction_hash, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`, d.ID, d.Amount, d.Currency, d.Status, d.DonorID, d.CharityID, d.CampaignID, d.TransactionHash, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("create donation: %w", err)
	}
	return nil
}

func (s *Store) FindDonationByID(ctx context.Context, id string) (domain.Donation, error) {
	var d domain.Donation
	err := s.pool.QueryRow(ctx, `
SELECT id, amount, currency, status, donor_id, charity_id, campaign_id, transaction_hash, created_at
FROM donations
WHERE id = $1;
`, id).Scan(&d.ID, &d.Amount, &d.Currency, &d.Status, &d.DonorID, &d.CharityID, &d.CampaignID, &d.TransactionHash, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Donation{}, sentinel.ErrNotFound
	}
	if err != nil {
		return domain.Donation{}, fmt.Errorf("find donation: %w", err)
	}
	return d, nil
}

func (s *Store) ListDonationsByDonor(ctx context.Context, donorID string) ([]domain.Donation, error) {
	return s.queryDonations(ctx, `
SELECT id, amount, currency, status, donor_id, charity_id, campaign_id, transaction_hash, created_at
FROM donations
WHERE donor_id = $1
ORDER BY created_at;
`, donorID)
}

func (s *Store) ListDonationsByCampaign(ctx context.Context, campaignID string) ([]domain.Donation, error) {
	return s.queryDonations(ctx, `
SELECT id, amount, currency, status, donor_id, charity_id, campaign_id, transaction_hash, created_at
FROM donations
WHERE campaign_id = $1
ORDER BY created_at;
`, campaignID)
}

func (s *Store) queryDonations(ctx context.Context, query string, args ...any) ([]domain.Donation, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	var items []domain.Donation
	for rows.Next() {
		var d domain.Donation
		if err := rows.Scan(&d.ID, &d.Amount, &d.Currency, &d.Status, &d.DonorID, &d.CharityID, &d.CampaignID, &d.TransactionHash, &d.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// UpdateDonationStatus performs the compare-and-set transition: the UPDATE
// matches only while the stored status equals expected, so of two racing
// transitions exactly one row-updates and the other observes a conflict.
func (s *Store) UpdateDonationStatus(ctx context.Context, id string, expected, next domain.DonationStatus, txHash *string) (domain.Donation, error) {
	var d domain.Donation
	err := s.pool.QueryRow(ctx, `
UPDATE donations
SET status = $3,
    transaction_hash = COALESCE($4, transaction_hash)
WHERE id = $1 AND status = $2
RETURNING id, amount, currency, status, donor_id, charity_id, campaign_id, transaction_hash, created_at;
`, id, expected, next, txHash).Scan(&d.ID, &d.Amount, &d.Currency, &d.Status, &d.DonorID, &d.CharityID, &d.CampaignID, &d.TransactionHash, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// No row matched: either the donation is gone or its status moved
		// under us. Distinguish so callers can report accurately.
		var exists bool
		if checkErr := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM donations WHERE id = $1);`, id).Scan(&exists); checkErr != nil {
			return domain.Donation{}, fmt.Errorf("update donation status: %w", checkErr)
		}
		if exists {
			return domain.Donation{}, sentinel.ErrConflict
		}
		return domain.Donation{}, sentinel.ErrNotFound
	}
	if err != nil {
		return domain.Donation{}, fmt.Errorf("update donation status: %w", err)
	}
	return d, nil
}
