package random

import (
	"sync"
	"testing"
)

func TestSequence_IntN(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		n      int
		want   []int
	}{
		{name: "wraps around", values: []int{1, 2}, n: 10, want: []int{1, 2, 1, 2, 1}},
		{name: "reduces modulo n", values: []int{7, 12}, n: 5, want: []int{2, 2}},
		{name: "negative values", values: []int{-3, -8}, n: 5, want: []int{3, 3}},
		{name: "empty", n: 4, want: []int{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewSequence(tt.values...)
			for i, want := range tt.want {
				if got := src.IntN(tt.n); got != want {
					t.Fatalf("call %d: got %d want %d", i, got, want)
				}
			}
		})
	}
}

func TestSequence_CopiesValues(t *testing.T) {
	values := []int{4, 5}
	src := NewSequence(values...)
	values[0] = 9

	if got := src.IntN(10); got != 4 {
		t.Fatalf("sequence shares caller slice: got %d", got)
	}
}

func TestSequence_PanicsOnNonPositiveN(t *testing.T) {
	for _, n := range []int{0, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("IntN(%d) expected panic", n)
				}
			}()
			NewSequence(1).IntN(n)
		}()
	}
}

func TestPCGSource_SameSeedSameStream(t *testing.T) {
	a := NewPCGSource(42)
	b := NewPCGSource(42)
	c := NewPCGSource(43)

	diverged := false
	for i := 0; i < 64; i++ {
		x, y, z := a.IntN(49), b.IntN(49), c.IntN(49)
		if x != y {
			t.Fatalf("call %d: same seed diverged: %d != %d", i, x, y)
		}
		if x < 0 || x >= 49 {
			t.Fatalf("call %d: value %d outside [0,49)", i, x)
		}
		if x != z {
			diverged = true
		}
	}
	if !diverged {
		t.Fatalf("different seeds produced identical streams")
	}
}

func TestPCGSource_ConcurrentUse(t *testing.T) {
	src := NewPCGSource(7)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if v := src.IntN(6); v < 0 || v >= 6 {
					t.Errorf("value %d outside [0,6)", v)
					return
				}
			}
		}()
	}
	wg.Wait()
}
