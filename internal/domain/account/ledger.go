package account

import (
	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInsufficientPoints  = errors.New("insufficient points")
	ErrNegativeAmount      = errors.New("amount must not be negative")
	ErrTicketNotFound      = errors.New("ticket not found")
)

// Ledger holds the money and points of one account. Every operation checks
// its preconditions before touching any field.
type Ledger struct {
	Balance    decimal.Decimal
	Points     int64
	TotalSpent decimal.Decimal
	TotalWon   decimal.Decimal
}

func (l *Ledger) Purchase(cost decimal.Decimal, pointsEarned int64) error {
	if cost.IsNegative() || pointsEarned < 0 {
		return errors.Wrapf(ErrNegativeAmount, "cost=%s points=%d", cost, pointsEarned)
	}
	if l.Balance.LessThan(cost) {
		return errors.Wrapf(ErrInsufficientBalance, "balance=%s cost=%s", l.Balance.StringFixed(2), cost.StringFixed(2))
	}

	l.Balance = l.Balance.Sub(cost)
	l.Points += pointsEarned
	l.TotalSpent = l.TotalSpent.Add(cost)
	return nil
}

func (l *Ledger) Redeem(pointsCost int64) error {
	if pointsCost < 0 {
		return errors.Wrapf(ErrNegativeAmount, "points=%d", pointsCost)
	}
	if l.Points < pointsCost {
		return errors.Wrapf(ErrInsufficientPoints, "points=%d cost=%d", l.Points, pointsCost)
	}

	l.Points -= pointsCost
	return nil
}

// CreditWin adds a prize. A zero amount changes nothing.
func (l *Ledger) CreditWin(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errors.Wrapf(ErrNegativeAmount, "win=%s", amount)
	}

	l.Balance = l.Balance.Add(amount)
	l.TotalWon = l.TotalWon.Add(amount)
	return nil
}

func (l *Ledger) CreditPoints(amount int64) error {
	if amount < 0 {
		return errors.Wrapf(ErrNegativeAmount, "points=%d", amount)
	}

	l.Points += amount
	return nil
}

// Net is total won minus total spent.
func (l Ledger) Net() decimal.Decimal {
	return l.TotalWon.Sub(l.TotalSpent)
}
