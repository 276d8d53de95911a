package company

import (
	"context"

	leadscope "github.com/signalworks/leadscope"
)

// Repository defines the storage contract for companies.
type Repository interface {
	List(ctx context.Context) ([]leadscope.Company, error)
}
