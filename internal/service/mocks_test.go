package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"golfcart-rental-backend/internal/domain"
)

type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) CreateWithReservation(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepo) Transition(ctx context.Context, id int32, to domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetByNumber(ctx context.Context, number string) (*domain.Booking, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) UpdatePaymentStatus(ctx context.Context, id int32, status domain.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepo) ListByStatus(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, int32(args.Int(1)), args.Error(2)
	}
	return args.Get(0).([]domain.Booking), int32(args.Int(1)), args.Error(2)
}

func (m *MockBookingRepo) ListStalePending(ctx context.Context, olderThan time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) OverlappingQuantity(ctx context.Context, productID int32, start, end time.Time) (int32, error) {
	args := m.Called(ctx, productID, start, end)
	return int32(args.Int(0)), args.Error(1)
}

type MockPricingRepo struct {
	mock.Mock
}

func (m *MockPricingRepo) GetActive(ctx context.Context, productID int32) (*domain.RentalPricing, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalPricing), args.Error(1)
}

func (m *MockPricingRepo) Upsert(ctx context.Context, p *domain.RentalPricing) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPricingRepo) ListAddons(ctx context.Context, productID int32) ([]domain.Addon, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Addon), args.Error(1)
}

type MockInventoryRepo struct {
	mock.Mock
}

func (m *MockInventoryRepo) Get(ctx context.Context, productID int32) (*domain.Inventory, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inventory), args.Error(1)
}

func (m *MockInventoryRepo) Create(ctx context.Context, productID, totalQuantity int32) (*domain.Inventory, error) {
	args := m.Called(ctx, productID, totalQuantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inventory), args.Error(1)
}

func (m *MockInventoryRepo) Adjust(ctx context.Context, productID, totalQuantity, maintenanceQuantity int32) (*domain.Inventory, error) {
	args := m.Called(ctx, productID, totalQuantity, maintenanceQuantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inventory), args.Error(1)
}

type MockBlockRepo struct {
	mock.Mock
}

func (m *MockBlockRepo) Create(ctx context.Context, block *domain.AvailabilityBlock) error {
	args := m.Called(ctx, block)
	return args.Error(0)
}

func (m *MockBlockRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBlockRepo) ListByProduct(ctx context.Context, productID int32) ([]domain.AvailabilityBlock, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AvailabilityBlock), args.Error(1)
}

func (m *MockBlockRepo) BlockedQuantity(ctx context.Context, productID int32, start, end time.Time) (int32, error) {
	args := m.Called(ctx, productID, start, end)
	return int32(args.Int(0)), args.Error(1)
}

type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) Check(ctx context.Context, productID int32, start, end time.Time, quantity int32) (bool, error) {
	args := m.Called(ctx, productID, start, end, quantity)
	return args.Bool(0), args.Error(1)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingConfirmation(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockEmailService) SendBookingCancellation(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

// noopAudit satisfies AuditService for tests that do not assert on audit.
type noopAudit struct{}

func (noopAudit) Record(ctx context.Context, entry *domain.AuditEntry) {}
