package service

import (
	"selecao-backend/internal/models"
	"selecao-backend/internal/repository"
)

// AuditService handles audit logging
type AuditService struct {
	auditRepo *repository.AuditRepository
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo *repository.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// Log creates an audit log entry, ignoring errors.
// This is the recommended way to log audit events as it won't fail the
// main operation.
func (s *AuditService) Log(action, resource, details string) {
	_ = s.auditRepo.Create(&models.AuditLog{
		Action:   action,
		Resource: resource,
		Details:  details,
	})
}
