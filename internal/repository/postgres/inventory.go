package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golfcart-rental-backend/internal/domain"
	"golfcart-rental-backend/internal/repository"
)

// dbtx lets the inventory mutations run against either the pool or an open
// transaction. Booking creation and transitions call them inside their own tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type inventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Get(ctx context.Context, productID int32) (*domain.Inventory, error) {
	inv := &domain.Inventory{}
	query := `SELECT product_id, total_quantity, available_quantity, reserved_quantity, maintenance_quantity, updated_on
	          FROM inventory WHERE product_id = $1`
	err := r.db.QueryRowContext(ctx, query, productID).Scan(
		&inv.ProductID, &inv.TotalQuantity, &inv.AvailableQuantity, &inv.ReservedQuantity, &inv.MaintenanceQuantity, &inv.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrInventoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *inventoryRepository) Create(ctx context.Context, productID, totalQuantity int32) (*domain.Inventory, error) {
	inv := &domain.Inventory{
		ProductID:         productID,
		TotalQuantity:     totalQuantity,
		AvailableQuantity: totalQuantity,
	}
	query := `INSERT INTO inventory (product_id, total_quantity, available_quantity, reserved_quantity, maintenance_quantity, updated_on)
	          VALUES ($1, $2, $2, 0, 0, NOW()) RETURNING updated_on`
	if err := r.db.QueryRowContext(ctx, query, productID, totalQuantity).Scan(&inv.UpdatedOn); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *inventoryRepository) Adjust(ctx context.Context, productID, totalQuantity, maintenanceQuantity int32) (*domain.Inventory, error) {
	if totalQuantity < 0 || maintenanceQuantity < 0 {
		return nil, domain.NewValidationError("quantity", "must not be negative")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var reserved int32
	err = tx.QueryRowContext(ctx, `SELECT reserved_quantity FROM inventory WHERE product_id = $1 FOR UPDATE`, productID).Scan(&reserved)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrInventoryNotFound
	}
	if err != nil {
		return nil, err
	}

	// Available is always re-derived, never accepted from the caller.
	available := totalQuantity - reserved - maintenanceQuantity
	if available < 0 {
		return nil, domain.NewValidationError("total_quantity",
			fmt.Sprintf("total %d cannot cover %d reserved plus %d in maintenance", totalQuantity, reserved, maintenanceQuantity))
	}

	inv := &domain.Inventory{
		ProductID:           productID,
		TotalQuantity:       totalQuantity,
		AvailableQuantity:   available,
		ReservedQuantity:    reserved,
		MaintenanceQuantity: maintenanceQuantity,
	}
	query := `UPDATE inventory
	          SET total_quantity = $2, available_quantity = $3, maintenance_quantity = $4, updated_on = NOW()
	          WHERE product_id = $1 RETURNING updated_on`
	if err := tx.QueryRowContext(ctx, query, productID, totalQuantity, available, maintenanceQuantity).Scan(&inv.UpdatedOn); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return inv, nil
}

// reserveInventory moves quantity from available to reserved in one
// conditional update, so two concurrent reservations serialize at the row and
// can never overdraw the pool.
func reserveInventory(ctx context.Context, ex dbtx, productID, quantity int32) error {
	query := `UPDATE inventory
	          SET available_quantity = available_quantity - $2, reserved_quantity = reserved_quantity + $2, updated_on = NOW()
	          WHERE product_id = $1 AND available_quantity >= $2`
	res, err := ex.ExecContext(ctx, query, productID, quantity)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return classifyZeroRows(ctx, ex, productID, domain.ErrAvailabilityConflict)
	}
	return nil
}

// releaseInventory returns a reservation to the available pool.
func releaseInventory(ctx context.Context, ex dbtx, productID, quantity int32) error {
	query := `UPDATE inventory
	          SET available_quantity = available_quantity + $2, reserved_quantity = reserved_quantity - $2, updated_on = NOW()
	          WHERE product_id = $1 AND reserved_quantity >= $2`
	res, err := ex.ExecContext(ctx, query, productID, quantity)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return classifyZeroRows(ctx, ex, productID,
			fmt.Errorf("releasing %d units for product %d would underflow reserved quantity", quantity, productID))
	}
	return nil
}

// classifyZeroRows tells a missing ledger row apart from a row that failed
// the update's guard condition.
func classifyZeroRows(ctx context.Context, ex dbtx, productID int32, guardErr error) error {
	var exists bool
	err := ex.QueryRowContext(ctx, `SELECT true FROM inventory WHERE product_id = $1`, productID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrInventoryNotFound
	}
	if err != nil {
		return err
	}
	return guardErr
}
