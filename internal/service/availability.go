package service

import (
	"context"
	"time"

	"golfcart-rental-backend/internal/repository"
)

type availabilityService struct {
	inventoryRepo repository.InventoryRepository
	blockRepo     repository.BlockRepository
	bookingRepo   repository.BookingRepository
}

func NewAvailabilityService(
	inventoryRepo repository.InventoryRepository,
	blockRepo repository.BlockRepository,
	bookingRepo repository.BookingRepository,
) AvailabilityService {
	return &availabilityService{
		inventoryRepo: inventoryRepo,
		blockRepo:     blockRepo,
		bookingRepo:   bookingRepo,
	}
}

// Check computes: available_quantity - blocked(window) - booked(window) >= Q
// over the half-open window. Deliberately conservative: it never promises
// units a concurrent request might be reserving, and the reservation's own
// conditional update remains the hard guarantee.
func (s *availabilityService) Check(ctx context.Context, productID int32, start, end time.Time, quantity int32) (bool, error) {
	inv, err := s.inventoryRepo.Get(ctx, productID)
	if err != nil {
		return false, err
	}

	blocked, err := s.blockRepo.BlockedQuantity(ctx, productID, start, end)
	if err != nil {
		return false, err
	}

	booked, err := s.bookingRepo.OverlappingQuantity(ctx, productID, start, end)
	if err != nil {
		return false, err
	}

	return inv.AvailableQuantity-blocked-booked >= quantity, nil
}
