package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"golfcart-rental-backend/internal/domain"
)

func TestPricingRepository_GetActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPricingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "product_id", "hourly_rate_cents", "hourly_minimum_hours", "daily_rate_cents", "weekly_rate_cents", "monthly_rate_cents", "deposit_cents", "active", "created_on"}).
			AddRow(1, 1, 5000, 2, 15000, nil, nil, 10000, true, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM rental_pricing WHERE product_id = \\$1 AND active = true").
			WithArgs(int32(1)).
			WillReturnRows(rows)

		p, err := repo.GetActive(ctx, 1)
		assert.NoError(t, err)
		assert.NotNil(t, p.HourlyRateCents)
		assert.Equal(t, int64(5000), *p.HourlyRateCents)
		assert.NotNil(t, p.DailyRateCents)
		// Unconfigured tiers come back nil, not zero
		assert.Nil(t, p.WeeklyRateCents)
		assert.Nil(t, p.MonthlyRateCents)
	})

	t.Run("NoActivePlan", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rental_pricing WHERE product_id = \\$1 AND active = true").
			WithArgs(int32(9)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		p, err := repo.GetActive(ctx, 9)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, domain.ErrUnconfiguredRate)
	})
}

func TestPricingRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPricingRepository(db)
	ctx := context.Background()

	daily := int64(15000)
	p := &domain.RentalPricing{ProductID: 1, DailyRateCents: &daily, DepositCents: 10000}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rental_pricing SET active = false").
		WithArgs(int32(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO rental_pricing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(2, time.Now()))
	mock.ExpectCommit()

	err = repo.Upsert(ctx, p)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), p.ID)
	assert.True(t, p.Active)
}

func TestBlockRepository_BlockedQuantity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBlockRepository(db)
	ctx := context.Background()
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(72 * time.Hour)

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(quantity_blocked\\), 0\\) FROM availability_blocks").
		WithArgs(int32(1), start, end).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(4))

	total, err := repo.BlockedQuantity(ctx, 1, start, end)
	assert.NoError(t, err)
	assert.Equal(t, int32(4), total)
}

func TestBlockRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewBlockRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM availability_blocks WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 1))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM availability_blocks WHERE id = \\$1").
			WithArgs(int32(9)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, 9)
		assert.True(t, domain.IsValidation(err))
	})
}
