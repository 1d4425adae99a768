package lotto

import (
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/lottery-rewards/internal/platform/random"
)

var ErrInvalidNumbers = errors.New("invalid lottery numbers")

// Rules describes the shape of a valid number set.
type Rules struct {
	Count int
	Min   int
	Max   int
}

func DefaultRules() Rules {
	return Rules{
		Count: 6,
		Min:   1,
		Max:   49,
	}
}

func (r Rules) InRange(n int) bool {
	return n >= r.Min && n <= r.Max
}

// Numbers is a ticket or draw selection. The canonical form is ascending.
type Numbers []int

// Validate checks count, range and distinctness. Order is not checked.
func (r Rules) Validate(numbers []int) error {
	if len(numbers) != r.Count {
		return errors.Wrapf(ErrInvalidNumbers, "expected %d numbers, got %d", r.Count, len(numbers))
	}

	seen := make(map[int]struct{}, len(numbers))
	for _, n := range numbers {
		if !r.InRange(n) {
			return errors.Wrapf(ErrInvalidNumbers, "number %d outside [%d,%d]", n, r.Min, r.Max)
		}
		if _, dup := seen[n]; dup {
			return errors.Wrapf(ErrInvalidNumbers, "number %d repeated", n)
		}
		seen[n] = struct{}{}
	}

	return nil
}

// Normalize validates numbers and returns a sorted copy.
func (r Rules) Normalize(numbers []int) (Numbers, error) {
	if err := r.Validate(numbers); err != nil {
		return nil, err
	}

	out := slices.Clone(numbers)
	slices.Sort(out)
	return out, nil
}

// QuickPick draws Count distinct numbers without replacement using a
// partial Fisher-Yates shuffle over [Min,Max].
func (r Rules) QuickPick(src random.Source) Numbers {
	pool := make([]int, 0, r.Max-r.Min+1)
	for n := r.Min; n <= r.Max; n++ {
		pool = append(pool, n)
	}

	for i := 0; i < r.Count; i++ {
		j := i + src.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	out := slices.Clone(pool[:r.Count])
	slices.Sort(out)
	return out
}

func (n Numbers) Contains(v int) bool {
	return slices.Contains(n, v)
}

func (n Numbers) Clone() Numbers {
	return slices.Clone(n)
}

// Intersect counts the values present in both sets.
func (n Numbers) Intersect(other Numbers) int {
	set := make(map[int]struct{}, len(other))
	for _, v := range other {
		set[v] = struct{}{}
	}

	count := 0
	for _, v := range n {
		if _, ok := set[v]; ok {
			count++
		}
	}
	return count
}
