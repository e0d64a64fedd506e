package postgres

import (
	"context"
	"database/sql"

	"golfcart-rental-backend/internal/domain"
	"golfcart-rental-backend/internal/repository"
)

type auditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Record(ctx context.Context, entry *domain.AuditEntry) error {
	query := `INSERT INTO audit_log (action, resource_type, resource_id, actor, old_values, new_values, success, error_message, created_on)
	          VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, NULLIF($8, ''), NOW()) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		entry.Action, entry.ResourceType, entry.ResourceID, entry.Actor,
		entry.OldValues, entry.NewValues, entry.Success, entry.ErrorMessage,
	).Scan(&entry.ID)
}
