package draw

import (
	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/riskibarqy/lottery-rewards/internal/domain/lotto"
)

// Tier is the outcome category of an evaluated ticket.
type Tier string

const (
	TierWon  Tier = "won"
	TierLost Tier = "lost"
)

// Prize is one row of the prize table. Jackpot rows pay the draw jackpot.
type Prize struct {
	Matches int
	Rank    int
	Amount  decimal.Decimal
	Jackpot bool
}

// PrizeTable maps match counts to payouts.
type PrizeTable struct {
	Prizes          []Prize
	NearMissMatches int
}

func DefaultPrizeTable() PrizeTable {
	return PrizeTable{
		Prizes: []Prize{
			{Matches: 6, Rank: 1, Jackpot: true},
			{Matches: 5, Rank: 2, Amount: decimal.NewFromInt(5000)},
			{Matches: 4, Rank: 3, Amount: decimal.NewFromInt(100)},
			{Matches: 3, Rank: 4, Amount: decimal.NewFromInt(10)},
		},
		NearMissMatches: 5,
	}
}

func (p PrizeTable) lookup(matches int) (Prize, bool) {
	for _, prize := range p.Prizes {
		if prize.Matches == matches {
			return prize, true
		}
	}
	return Prize{}, false
}

// Result is the evaluation of one ticket against one draw.
type Result struct {
	Matches     int
	PrizeTier   Tier
	PrizeAmount decimal.Decimal
	IsNearMiss  bool
	Rank        int
}

// Evaluator compares number sets. It holds only rule data.
type Evaluator struct {
	Numbers lotto.Rules
	Prizes  PrizeTable
}

func NewEvaluator(numbers lotto.Rules, prizes PrizeTable) Evaluator {
	return Evaluator{Numbers: numbers, Prizes: prizes}
}

// Evaluate is pure: input order does not affect the result.
func (e Evaluator) Evaluate(ticketNumbers, winningNumbers []int, jackpot decimal.Decimal) (Result, error) {
	if err := e.Numbers.Validate(ticketNumbers); err != nil {
		return Result{}, errors.Wrap(err, "ticket numbers")
	}
	if err := e.Numbers.Validate(winningNumbers); err != nil {
		return Result{}, errors.Wrap(err, "winning numbers")
	}
	if jackpot.IsNegative() {
		return Result{}, errors.Wrap(lotto.ErrInvalidNumbers, "jackpot must not be negative")
	}

	matches := lotto.Numbers(ticketNumbers).Intersect(winningNumbers)
	result := Result{
		Matches:     matches,
		PrizeTier:   TierLost,
		PrizeAmount: decimal.Zero,
		IsNearMiss:  e.Prizes.NearMissMatches > 0 && matches == e.Prizes.NearMissMatches,
	}

	prize, ok := e.Prizes.lookup(matches)
	if !ok {
		return result, nil
	}

	result.PrizeTier = TierWon
	result.Rank = prize.Rank
	result.PrizeAmount = prize.Amount
	if prize.Jackpot {
		result.PrizeAmount = jackpot
	}
	return result, nil
}

// EvaluateDraw evaluates ticket numbers against a drawn or settled draw.
func (e Evaluator) EvaluateDraw(ticketNumbers []int, d Draw) (Result, error) {
	if d.Status == StatusOpen {
		return Result{}, errors.Wrapf(ErrInvalidStatus, "draw=%s has no winning numbers yet", d.ID)
	}
	return e.Evaluate(ticketNumbers, d.WinningNumbers, d.Jackpot)
}
