package contracts

import (
	"context"

	"somnolink-service/internal/app/models"
)

type AuditPublisher interface {
	Publish(ctx context.Context, event *models.AuditEvent) error
}
