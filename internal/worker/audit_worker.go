package worker

import (
	"github.com/spec-kit/intern-dashboard/internal/service"
)

// StartAuditWorker registers the session audit handlers.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
