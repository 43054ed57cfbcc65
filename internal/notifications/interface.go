package notifications

import (
	"context"

	"github.com/leadlift/leadlift-web/internal/models"
)

// Notifier defines the contract for outage alert delivery
type Notifier interface {
	SendAlert(ctx context.Context, alert *models.Alert) error
}
