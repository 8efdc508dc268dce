package interfaces

import (
	"context"

	"github.com/Nathanlovaniaina/Projet-Cloud-S5/pkg/domain/model"
)

// Notifier tells operators about failed reconciliation runs
type Notifier interface {
	NotifySyncFailure(ctx context.Context, result *model.SyncResult) error
}
