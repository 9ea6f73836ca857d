package worker

import (
	"context"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/service"
)

// StartAuditWorker registers audit handlers and, when a webhook is configured,
// forwards events in the background until ctx is cancelled.
func StartAuditWorker(ctx context.Context, auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
	if auditService.WebhookEnabled() {
		go auditService.Run(ctx)
	}
}
