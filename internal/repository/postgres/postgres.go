package postgres

import (
	"database/sql"

	"golfcart-rental-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BookingRepository
	repository.InventoryRepository
	repository.BlockRepository
	repository.PricingRepository
	repository.AuditRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		BookingRepository:   NewBookingRepository(db),
		InventoryRepository: NewInventoryRepository(db),
		BlockRepository:     NewBlockRepository(db),
		PricingRepository:   NewPricingRepository(db),
		AuditRepository:     NewAuditRepository(db),
	}
}
