package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/lottery-rewards/internal/domain/account"
)

// AccountRepository keeps accounts in a map. Update holds a per-account
// lock for the whole callback so two mutations of one account never
// interleave, while different accounts proceed in parallel.
type AccountRepository struct {
	mu    sync.RWMutex
	items map[string]account.Account
	locks map[string]*sync.Mutex
}

func NewAccountRepository(seed ...account.Account) *AccountRepository {
	r := &AccountRepository{
		items: make(map[string]account.Account, len(seed)),
		locks: make(map[string]*sync.Mutex, len(seed)),
	}
	for _, a := range seed {
		r.items[a.ID] = a.Clone()
		r.locks[a.ID] = &sync.Mutex{}
	}
	return r
}

func (r *AccountRepository) Create(_ context.Context, a account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[a.ID]; exists {
		return errors.Newf("account %s already exists", a.ID)
	}
	r.items[a.ID] = a.Clone()
	r.locks[a.ID] = &sync.Mutex{}
	return nil
}

func (r *AccountRepository) GetByID(_ context.Context, accountID string) (account.Account, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.items[accountID]
	if !ok {
		return account.Account{}, false, nil
	}
	return a.Clone(), true, nil
}

func (r *AccountRepository) List(_ context.Context) ([]account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]account.Account, 0, len(r.items))
	for _, a := range r.items {
		out = append(out, a.Clone())
	}
	slices.SortFunc(out, func(a, b account.Account) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out, nil
}

func (r *AccountRepository) Update(_ context.Context, accountID string, fn func(*account.Account) error) (account.Account, error) {
	r.mu.RLock()
	lock, ok := r.locks[accountID]
	r.mu.RUnlock()
	if !ok {
		return account.Account{}, errors.Wrapf(account.ErrNotFound, "account=%s", accountID)
	}

	lock.Lock()
	defer lock.Unlock()

	r.mu.RLock()
	working := r.items[accountID].Clone()
	r.mu.RUnlock()

	if err := fn(&working); err != nil {
		return account.Account{}, err
	}

	r.mu.Lock()
	r.items[accountID] = working.Clone()
	r.mu.Unlock()

	return working, nil
}
