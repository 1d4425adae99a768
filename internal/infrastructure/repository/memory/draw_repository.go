package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/lottery-rewards/internal/domain/draw"
)

type DrawRepository struct {
	mu    sync.RWMutex
	items map[string]draw.Draw
}

func NewDrawRepository(seed ...draw.Draw) *DrawRepository {
	r := &DrawRepository{items: make(map[string]draw.Draw, len(seed))}
	for _, d := range seed {
		r.items[d.ID] = d.Clone()
	}
	return r
}

func (r *DrawRepository) Create(_ context.Context, d draw.Draw) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[d.ID]; exists {
		return errors.Newf("draw %s already exists", d.ID)
	}
	for _, existing := range r.items {
		if existing.Date.Equal(d.Date) {
			return errors.Wrapf(draw.ErrDuplicateDate, "date=%s draw=%s", d.Date.Format(time.DateOnly), existing.ID)
		}
	}
	r.items[d.ID] = d.Clone()
	return nil
}

func (r *DrawRepository) GetByID(_ context.Context, drawID string) (draw.Draw, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.items[drawID]
	if !ok {
		return draw.Draw{}, false, nil
	}
	return d.Clone(), true, nil
}

func (r *DrawRepository) ListFrom(_ context.Context, day time.Time) ([]draw.Draw, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]draw.Draw, 0, len(r.items))
	for _, d := range r.items {
		if d.Date.Before(day) {
			continue
		}
		out = append(out, d.Clone())
	}
	slices.SortFunc(out, func(a, b draw.Draw) int {
		return a.Date.Compare(b.Date)
	})
	return out, nil
}

// Update holds the write lock for the callback. Draw mutations are rare and
// cheap, so a single lock is enough.
func (r *DrawRepository) Update(_ context.Context, drawID string, fn func(*draw.Draw) error) (draw.Draw, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[drawID]
	if !ok {
		return draw.Draw{}, errors.Wrapf(draw.ErrNotFound, "draw=%s", drawID)
	}

	working := current.Clone()
	if err := fn(&working); err != nil {
		return draw.Draw{}, err
	}
	r.items[drawID] = working.Clone()
	return working, nil
}
