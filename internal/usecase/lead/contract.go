package lead

import (
	"context"

	leadscope "github.com/signalworks/leadscope"
)

// Repository defines the storage contract for leads.
type Repository interface {
	List(ctx context.Context) ([]leadscope.Lead, error)
	GetByStoreID(ctx context.Context, id string) (leadscope.Lead, error)
	GetByLeadID(ctx context.Context, id string) (leadscope.Lead, error)
}
