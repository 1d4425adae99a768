package lotto

import (
	"errors"
	"testing"

	"github.com/riskibarqy/lottery-rewards/internal/platform/random"
)

func TestRules_Validate(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name    string
		numbers []int
		wantErr bool
	}{
		{name: "valid ascending", numbers: []int{7, 14, 23, 31, 42, 49}},
		{name: "valid unordered", numbers: []int{49, 7, 31, 14, 42, 23}},
		{name: "too few", numbers: []int{1, 2, 3, 4, 5}, wantErr: true},
		{name: "too many", numbers: []int{1, 2, 3, 4, 5, 6, 7}, wantErr: true},
		{name: "duplicate", numbers: []int{1, 2, 3, 4, 5, 5}, wantErr: true},
		{name: "zero", numbers: []int{0, 2, 3, 4, 5, 6}, wantErr: true},
		{name: "above max", numbers: []int{1, 2, 3, 4, 5, 50}, wantErr: true},
		{name: "nil", numbers: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rules.Validate(tt.numbers)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidNumbers) {
					t.Fatalf("expected ErrInvalidNumbers, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestRules_NormalizeSortsCopy(t *testing.T) {
	in := []int{49, 7, 31, 14, 42, 23}
	got, err := DefaultRules().Normalize(in)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	want := []int{7, 14, 23, 31, 42, 49}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected numbers: got=%v want=%v", got, want)
		}
	}
	if in[0] != 49 {
		t.Fatalf("input mutated: %v", in)
	}
}

func TestRules_QuickPick(t *testing.T) {
	rules := DefaultRules()
	src := random.NewPCGSource(42)

	for i := 0; i < 500; i++ {
		picked := rules.QuickPick(src)
		if err := rules.Validate(picked); err != nil {
			t.Fatalf("quick pick %d invalid: %v (%v)", i, err, picked)
		}
		for j := 1; j < len(picked); j++ {
			if picked[j-1] >= picked[j] {
				t.Fatalf("quick pick not ascending: %v", picked)
			}
		}
	}
}

func TestRules_QuickPickDegenerateSource(t *testing.T) {
	// A source stuck on zero must still yield distinct numbers.
	picked := DefaultRules().QuickPick(random.NewSequence(0))
	want := []int{1, 2, 3, 4, 5, 6}
	for i := range want {
		if picked[i] != want[i] {
			t.Fatalf("unexpected pick: got=%v want=%v", picked, want)
		}
	}
}

func TestNumbers_Intersect(t *testing.T) {
	a := Numbers{7, 14, 23, 31, 42, 12}
	b := Numbers{49, 42, 31, 23, 14, 7}
	if got := a.Intersect(b); got != 5 {
		t.Fatalf("expected 5 matches, got %d", got)
	}
	if got := b.Intersect(a); got != 5 {
		t.Fatalf("expected symmetric 5 matches, got %d", got)
	}
}
