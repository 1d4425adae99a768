package ticket

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/riskibarqy/lottery-rewards/internal/domain/lotto"
)

// Status is the ticket lifecycle state.
type Status string

const (
	StatusActive Status = "active"
	StatusWon    Status = "won"
	StatusLost   Status = "lost"
)

var (
	ErrNotModifiable          = errors.New("ticket is not modifiable")
	ErrDuplicateNumber        = errors.New("number already on ticket")
	ErrInvalidPosition        = errors.New("invalid number position")
	ErrInvalidStateTransition = errors.New("invalid ticket state transition")
)

// Ticket is one lottery entry for a draw date.
type Ticket struct {
	ID           string
	Numbers      lotto.Numbers
	DrawDate     time.Time
	Cost         decimal.Decimal
	PointsEarned int64
	QuickPick    bool
	Status       Status
	WinAmount    decimal.NullDecimal
	Matches      int
	CanModify    bool
	PurchasedAt  time.Time
	ModifiedAt   time.Time
}

// New builds an active ticket. Numbers must already be normalized.
func New(id string, numbers lotto.Numbers, drawDate time.Time, rules Rules, quickPick bool, now time.Time) Ticket {
	return Ticket{
		ID:           id,
		Numbers:      numbers.Clone(),
		DrawDate:     DrawDay(drawDate),
		Cost:         rules.Cost,
		PointsEarned: rules.PointsEarned,
		QuickPick:    quickPick,
		Status:       StatusActive,
		CanModify:    true,
		PurchasedAt:  now,
	}
}

// DrawDay truncates t to its UTC calendar day.
func DrawDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (t Ticket) IsActive() bool {
	return t.Status == StatusActive
}

// CheckReplace validates a single-number modification without applying it.
func (t Ticket) CheckReplace(position, newNumber int, numberRules lotto.Rules) error {
	if !t.CanModify || !t.IsActive() {
		return errors.Wrapf(ErrNotModifiable, "ticket=%s", t.ID)
	}
	if position < 0 || position >= len(t.Numbers) {
		return errors.Wrapf(ErrInvalidPosition, "position=%d", position)
	}
	if !numberRules.InRange(newNumber) {
		return errors.Wrapf(lotto.ErrInvalidNumbers, "number %d outside [%d,%d]", newNumber, numberRules.Min, numberRules.Max)
	}
	if t.Numbers.Contains(newNumber) {
		return errors.Wrapf(ErrDuplicateNumber, "number=%d", newNumber)
	}

	return nil
}

// ReplaceNumber swaps the number at position, re-sorts and locks the ticket.
func (t *Ticket) ReplaceNumber(position, newNumber int, numberRules lotto.Rules, now time.Time) error {
	if err := t.CheckReplace(position, newNumber, numberRules); err != nil {
		return err
	}

	numbers := t.Numbers.Clone()
	numbers[position] = newNumber
	normalized, err := numberRules.Normalize(numbers)
	if err != nil {
		return err
	}

	t.Numbers = normalized
	t.CanModify = false
	t.ModifiedAt = now
	return nil
}

// Finalize moves an active ticket to won or lost.
func (t *Ticket) Finalize(status Status, matches int, winAmount decimal.Decimal) error {
	if t.Status != StatusActive {
		return errors.Wrapf(ErrInvalidStateTransition, "ticket=%s from=%s", t.ID, t.Status)
	}

	switch status {
	case StatusWon:
		if winAmount.IsNegative() {
			return errors.Wrapf(ErrInvalidStateTransition, "ticket=%s negative win amount", t.ID)
		}
		t.WinAmount = decimal.NewNullDecimal(winAmount)
	case StatusLost:
		t.WinAmount = decimal.NullDecimal{}
	default:
		return errors.Wrapf(ErrInvalidStateTransition, "ticket=%s to=%s", t.ID, status)
	}

	t.Status = status
	t.Matches = matches
	t.CanModify = false
	return nil
}

func (t Ticket) Clone() Ticket {
	copied := t
	copied.Numbers = t.Numbers.Clone()
	return copied
}
