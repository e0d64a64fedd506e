package postgres

import (
	"context"
	"database/sql"
	"errors"

	"golfcart-rental-backend/internal/domain"
	"golfcart-rental-backend/internal/repository"
)

type pricingRepository struct {
	db *sql.DB
}

func NewPricingRepository(db *sql.DB) repository.PricingRepository {
	return &pricingRepository{db: db}
}

func (r *pricingRepository) GetActive(ctx context.Context, productID int32) (*domain.RentalPricing, error) {
	p := &domain.RentalPricing{}
	query := `SELECT id, product_id, hourly_rate_cents, COALESCE(hourly_minimum_hours, 0), daily_rate_cents,
	            weekly_rate_cents, monthly_rate_cents, deposit_cents, active, created_on
	          FROM rental_pricing WHERE product_id = $1 AND active = true`
	err := r.db.QueryRowContext(ctx, query, productID).Scan(
		&p.ID, &p.ProductID, &p.HourlyRateCents, &p.HourlyMinimumHours, &p.DailyRateCents,
		&p.WeeklyRateCents, &p.MonthlyRateCents, &p.DepositCents, &p.Active, &p.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUnconfiguredRate
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pricingRepository) Upsert(ctx context.Context, p *domain.RentalPricing) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Exactly one active plan per product: retire the previous one first.
	_, err = tx.ExecContext(ctx,
		`UPDATE rental_pricing SET active = false WHERE product_id = $1 AND active = true`, p.ProductID)
	if err != nil {
		return err
	}

	query := `INSERT INTO rental_pricing (product_id, hourly_rate_cents, hourly_minimum_hours, daily_rate_cents,
	            weekly_rate_cents, monthly_rate_cents, deposit_cents, active, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, true, NOW()) RETURNING id, created_on`
	err = tx.QueryRowContext(ctx, query,
		p.ProductID, p.HourlyRateCents, p.HourlyMinimumHours, p.DailyRateCents,
		p.WeeklyRateCents, p.MonthlyRateCents, p.DepositCents,
	).Scan(&p.ID, &p.CreatedOn)
	if err != nil {
		return err
	}
	p.Active = true

	return tx.Commit()
}

func (r *pricingRepository) ListAddons(ctx context.Context, productID int32) ([]domain.Addon, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, name, price_cents FROM rental_addons WHERE product_id = $1 ORDER BY id`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addons []domain.Addon
	for rows.Next() {
		var a domain.Addon
		if err := rows.Scan(&a.ID, &a.ProductID, &a.Name, &a.PriceCents); err != nil {
			return nil, err
		}
		addons = append(addons, a)
	}
	return addons, rows.Err()
}
