package ports

import "context"

type ReconcileService interface {
	ReconcileAllCounts(ctx context.Context) error
}
