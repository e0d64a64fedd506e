package service

import (
	"context"

	"golfcart-rental-backend/internal/domain"
	"golfcart-rental-backend/internal/logger"
	"golfcart-rental-backend/internal/repository"
)

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

// Record writes the entry and swallows failures: audit must never fail the
// operation it describes.
func (s *auditService) Record(ctx context.Context, entry *domain.AuditEntry) {
	if err := s.repo.Record(ctx, entry); err != nil {
		logger.Warn("Audit write failed",
			"action", entry.Action,
			"resource_type", entry.ResourceType,
			"resource_id", entry.ResourceID,
			"error", err)
	}
}
