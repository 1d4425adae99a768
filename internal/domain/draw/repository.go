package draw

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
)

var ErrNotFound = errors.New("draw not found")

// Repository describes draw persistence needs from use cases.
type Repository interface {
	// Create fails with ErrDuplicateDate when a draw already exists for the
	// same calendar day.
	Create(ctx context.Context, d Draw) error
	GetByID(ctx context.Context, drawID string) (Draw, bool, error)
	// ListFrom returns draws dated on or after day, ascending by date.
	ListFrom(ctx context.Context, day time.Time) ([]Draw, error)
	// Update applies fn to a copy and stores it only when fn returns nil.
	Update(ctx context.Context, drawID string, fn func(*Draw) error) (Draw, error)
}
