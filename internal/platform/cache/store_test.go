package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresEntries(t *testing.T) {
	store := NewStore(time.Minute)
	now := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(t.Context(), "draw:current", "v1")
	if _, ok := store.Get(t.Context(), "draw:current"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(t.Context(), "draw:current"); ok {
		t.Fatalf("expected expired entry to be evicted")
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d entries", store.Len())
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	store := NewStore(0)
	store.Set(t.Context(), "draw:id:1", 1)
	store.Set(t.Context(), "draw:from:0", 2)
	store.Set(t.Context(), "other", 3)

	store.DeletePrefix(t.Context(), "draw:")

	if store.Len() != 1 {
		t.Fatalf("expected only unrelated key to remain, got %d", store.Len())
	}
	if _, ok := store.Get(t.Context(), "other"); !ok {
		t.Fatalf("unrelated key removed")
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	store := NewStore(time.Minute)
	var calls atomic.Int32
	loadErr := errors.New("unavailable")

	loader := func(context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return nil, loadErr
		}
		return "ok", nil
	}

	if _, err := store.GetOrLoad(t.Context(), "k", loader); !errors.Is(err, loadErr) {
		t.Fatalf("expected loader error, got %v", err)
	}
	v, err := store.GetOrLoad(t.Context(), "k", loader)
	if err != nil || v != "ok" {
		t.Fatalf("expected retry to load, got %v %v", v, err)
	}
}

func TestStore_GetOrLoad_SkipsStoreAfterConcurrentDelete(t *testing.T) {
	store := NewStore(time.Minute)

	v, err := store.GetOrLoad(t.Context(), "draw:id:1", func(ctx context.Context) (any, error) {
		store.DeletePrefix(ctx, "draw:")
		return "stale", nil
	})
	if err != nil || v != "stale" {
		t.Fatalf("expected loaded value to be returned, got %v %v", v, err)
	}
	if _, ok := store.Get(t.Context(), "draw:id:1"); ok {
		t.Fatalf("value loaded across an invalidation must not be cached")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
