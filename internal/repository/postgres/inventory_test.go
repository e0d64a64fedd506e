package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"golfcart-rental-backend/internal/domain"
)

func TestInventoryRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewInventoryRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"product_id", "total_quantity", "available_quantity", "reserved_quantity", "maintenance_quantity", "updated_on"}).
			AddRow(1, 10, 7, 2, 1, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM inventory WHERE product_id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(rows)

		inv, err := repo.Get(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, int32(7), inv.AvailableQuantity)
		assert.Equal(t, int32(2), inv.ReservedQuantity)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM inventory WHERE product_id = \\$1").
			WithArgs(int32(9)).
			WillReturnRows(sqlmock.NewRows([]string{"product_id"}))

		inv, err := repo.Get(ctx, 9)
		assert.Nil(t, inv)
		assert.ErrorIs(t, err, domain.ErrInventoryNotFound)
	})
}

func TestReserveInventory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE inventory").
			WithArgs(int32(1), int32(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := reserveInventory(ctx, db, 1, 2)
		assert.NoError(t, err)
	})

	t.Run("InsufficientQuantity", func(t *testing.T) {
		mock.ExpectExec("UPDATE inventory").
			WithArgs(int32(1), int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT true FROM inventory WHERE product_id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"true"}).AddRow(true))

		err := reserveInventory(ctx, db, 1, 5)
		assert.ErrorIs(t, err, domain.ErrAvailabilityConflict)
	})

	t.Run("MissingLedgerRow", func(t *testing.T) {
		mock.ExpectExec("UPDATE inventory").
			WithArgs(int32(9), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT true FROM inventory WHERE product_id = \\$1").
			WithArgs(int32(9)).
			WillReturnRows(sqlmock.NewRows([]string{"true"}))

		err := reserveInventory(ctx, db, 9, 1)
		assert.ErrorIs(t, err, domain.ErrInventoryNotFound)
	})
}

func TestReleaseInventory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE inventory").
			WithArgs(int32(1), int32(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := releaseInventory(ctx, db, 1, 2)
		assert.NoError(t, err)
	})

	t.Run("Underflow", func(t *testing.T) {
		mock.ExpectExec("UPDATE inventory").
			WithArgs(int32(1), int32(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT true FROM inventory WHERE product_id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"true"}).AddRow(true))

		err := releaseInventory(ctx, db, 1, 99)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "underflow")
	})
}

func TestInventoryRepository_Adjust(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewInventoryRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT reserved_quantity FROM inventory WHERE product_id = \\$1 FOR UPDATE").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"reserved_quantity"}).AddRow(3))
		mock.ExpectQuery("UPDATE inventory").
			WithArgs(int32(1), int32(12), int32(8), int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"updated_on"}).AddRow(time.Now()))
		mock.ExpectCommit()

		inv, err := repo.Adjust(ctx, 1, 12, 1)
		assert.NoError(t, err)
		// available re-derived as total - reserved - maintenance
		assert.Equal(t, int32(8), inv.AvailableQuantity)
		assert.Equal(t, int32(3), inv.ReservedQuantity)
	})

	t.Run("RejectsNegativeAvailable", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT reserved_quantity FROM inventory WHERE product_id = \\$1 FOR UPDATE").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"reserved_quantity"}).AddRow(5))
		mock.ExpectRollback()

		inv, err := repo.Adjust(ctx, 1, 4, 0)
		assert.Nil(t, inv)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("RejectsNegativeInput", func(t *testing.T) {
		inv, err := repo.Adjust(ctx, 1, -1, 0)
		assert.Nil(t, inv)
		assert.True(t, domain.IsValidation(err))
	})
}
