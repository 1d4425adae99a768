package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/lottery-rewards/internal/domain/draw"
	basecache "github.com/riskibarqy/lottery-rewards/internal/platform/cache"
)

const drawKeyPrefix = "draw:"

// DrawRepository is a read-through cache in front of a draw.Repository.
// Every write drops all cached draw reads.
type DrawRepository struct {
	next  draw.Repository
	cache *basecache.Store
}

func NewDrawRepository(next draw.Repository, cache *basecache.Store) *DrawRepository {
	return &DrawRepository{next: next, cache: cache}
}

func (r *DrawRepository) Create(ctx context.Context, d draw.Draw) error {
	defer r.cache.DeletePrefix(ctx, drawKeyPrefix)
	return r.next.Create(ctx, d)
}

func (r *DrawRepository) GetByID(ctx context.Context, drawID string) (draw.Draw, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, drawKeyPrefix+"id:"+drawID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, drawID)
		if err != nil {
			return nil, err
		}
		return cachedDrawByID{value: item.Clone(), exists: exists}, nil
	})
	if err != nil {
		return draw.Draw{}, false, err
	}

	cached, _ := v.(cachedDrawByID)
	return cached.value.Clone(), cached.exists, nil
}

func (r *DrawRepository) ListFrom(ctx context.Context, from time.Time) ([]draw.Draw, error) {
	key := drawKeyPrefix + "from:" + from.UTC().Format(time.RFC3339)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListFrom(ctx, from)
		if err != nil {
			return nil, err
		}
		return cloneDraws(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]draw.Draw)
	return cloneDraws(items), nil
}

func (r *DrawRepository) Update(ctx context.Context, drawID string, fn func(*draw.Draw) error) (draw.Draw, error) {
	defer r.cache.DeletePrefix(ctx, drawKeyPrefix)
	return r.next.Update(ctx, drawID, fn)
}

type cachedDrawByID struct {
	value  draw.Draw
	exists bool
}

func cloneDraws(items []draw.Draw) []draw.Draw {
	out := make([]draw.Draw, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}
