package account

import (
	"context"

	"github.com/cockroachdb/errors"
)

var ErrNotFound = errors.New("account not found")

// Repository describes account persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, account Account) error
	GetByID(ctx context.Context, accountID string) (Account, bool, error)
	List(ctx context.Context) ([]Account, error)
	// Update runs fn on a copy of the account and stores the copy only when
	// fn returns nil. Updates to one account are serialized. Unknown ids
	// yield ErrNotFound.
	Update(ctx context.Context, accountID string, fn func(*Account) error) (Account, error)
}
