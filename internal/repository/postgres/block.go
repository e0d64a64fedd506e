package postgres

import (
	"context"
	"database/sql"
	"time"

	"golfcart-rental-backend/internal/domain"
	"golfcart-rental-backend/internal/repository"
)

type blockRepository struct {
	db *sql.DB
}

func NewBlockRepository(db *sql.DB) repository.BlockRepository {
	return &blockRepository{db: db}
}

func (r *blockRepository) Create(ctx context.Context, block *domain.AvailabilityBlock) error {
	query := `INSERT INTO availability_blocks (product_id, start_date, end_date, quantity_blocked, reason, notes, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query,
		block.ProductID, block.StartDate, block.EndDate, block.QuantityBlocked, block.Reason, block.Notes,
	).Scan(&block.ID, &block.CreatedOn)
}

func (r *blockRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM availability_blocks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NewValidationError("id", "availability block not found")
	}
	return nil
}

func (r *blockRepository) ListByProduct(ctx context.Context, productID int32) ([]domain.AvailabilityBlock, error) {
	query := `SELECT id, product_id, start_date, end_date, quantity_blocked, reason, COALESCE(notes, ''), created_on
	          FROM availability_blocks WHERE product_id = $1 ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []domain.AvailabilityBlock
	for rows.Next() {
		var b domain.AvailabilityBlock
		if err := rows.Scan(&b.ID, &b.ProductID, &b.StartDate, &b.EndDate, &b.QuantityBlocked, &b.Reason, &b.Notes, &b.CreatedOn); err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (r *blockRepository) BlockedQuantity(ctx context.Context, productID int32, start, end time.Time) (int32, error) {
	// Half-open overlap, same convention as bookings. Expired blocks fall
	// out naturally because their end_date cannot overlap a future window.
	query := `SELECT COALESCE(SUM(quantity_blocked), 0) FROM availability_blocks
	          WHERE product_id = $1 AND start_date < $3 AND end_date > $2`
	var total int32
	err := r.db.QueryRowContext(ctx, query, productID, start, end).Scan(&total)
	return total, err
}
