package service

import (
	"context"
	"fmt"

	"golfcart-rental-backend/internal/domain"
	"golfcart-rental-backend/internal/repository"
)

type adminService struct {
	blockRepo     repository.BlockRepository
	pricingRepo   repository.PricingRepository
	inventoryRepo repository.InventoryRepository
	audit         AuditService
}

func NewAdminService(
	blockRepo repository.BlockRepository,
	pricingRepo repository.PricingRepository,
	inventoryRepo repository.InventoryRepository,
	audit AuditService,
) AdminService {
	return &adminService{
		blockRepo:     blockRepo,
		pricingRepo:   pricingRepo,
		inventoryRepo: inventoryRepo,
		audit:         audit,
	}
}

func (s *adminService) CreateBlock(ctx context.Context, block *domain.AvailabilityBlock, actor string) error {
	if block.ProductID <= 0 {
		return domain.NewValidationError("product_id", "is required")
	}
	if block.QuantityBlocked < 1 {
		return domain.NewValidationError("quantity_blocked", "must be at least 1")
	}
	if !block.EndDate.After(block.StartDate) {
		return domain.NewValidationError("end_date", "must be after start date")
	}
	switch block.Reason {
	case domain.BlockReasonMaintenance, domain.BlockReasonHoliday, domain.BlockReasonReserved, domain.BlockReasonOther:
	default:
		return domain.NewValidationError("reason", "must be one of MAINTENANCE, HOLIDAY, RESERVED, OTHER")
	}

	// Blocks may overlap confirmed bookings; they only constrain new
	// requests, so no over-subscription check happens here.
	if err := s.blockRepo.Create(ctx, block); err != nil {
		return err
	}

	s.audit.Record(ctx, &domain.AuditEntry{
		Action:       "block.create",
		ResourceType: "availability_block",
		ResourceID:   fmt.Sprintf("%d", block.ID),
		Actor:        actor,
		NewValues:    marshalValues(block),
		Success:      true,
	})
	return nil
}

func (s *adminService) DeleteBlock(ctx context.Context, id int32, actor string) error {
	if err := s.blockRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, &domain.AuditEntry{
		Action:       "block.delete",
		ResourceType: "availability_block",
		ResourceID:   fmt.Sprintf("%d", id),
		Actor:        actor,
		Success:      true,
	})
	return nil
}

func (s *adminService) ListBlocks(ctx context.Context, productID int32) ([]domain.AvailabilityBlock, error) {
	return s.blockRepo.ListByProduct(ctx, productID)
}

func (s *adminService) SetPricing(ctx context.Context, p *domain.RentalPricing, actor string) error {
	if p.ProductID <= 0 {
		return domain.NewValidationError("product_id", "is required")
	}
	if p.HourlyRateCents == nil && p.DailyRateCents == nil && p.WeeklyRateCents == nil && p.MonthlyRateCents == nil {
		return domain.NewValidationError("rates", "at least one rate must be set")
	}
	for field, rate := range map[string]*int64{
		"hourly_rate_cents":  p.HourlyRateCents,
		"daily_rate_cents":   p.DailyRateCents,
		"weekly_rate_cents":  p.WeeklyRateCents,
		"monthly_rate_cents": p.MonthlyRateCents,
	} {
		if rate != nil && *rate < 0 {
			return domain.NewValidationError(field, "must not be negative")
		}
	}

	if err := s.pricingRepo.Upsert(ctx, p); err != nil {
		return err
	}

	s.audit.Record(ctx, &domain.AuditEntry{
		Action:       "pricing.set",
		ResourceType: "rental_pricing",
		ResourceID:   fmt.Sprintf("%d", p.ProductID),
		Actor:        actor,
		NewValues:    marshalValues(p),
		Success:      true,
	})
	return nil
}

func (s *adminService) AdjustInventory(ctx context.Context, productID, totalQuantity, maintenanceQuantity int32, actor string) (*domain.Inventory, error) {
	before, err := s.inventoryRepo.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	inv, err := s.inventoryRepo.Adjust(ctx, productID, totalQuantity, maintenanceQuantity)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &domain.AuditEntry{
		Action:       "inventory.adjust",
		ResourceType: "inventory",
		ResourceID:   fmt.Sprintf("%d", productID),
		Actor:        actor,
		OldValues:    marshalValues(before),
		NewValues:    marshalValues(inv),
		Success:      true,
	})
	return inv, nil
}
