package draw

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/riskibarqy/lottery-rewards/internal/domain/lotto"
)

// Status is the draw lifecycle state: open -> drawn -> settled.
type Status string

const (
	StatusOpen    Status = "open"
	StatusDrawn   Status = "drawn"
	StatusSettled Status = "settled"
)

var (
	ErrInvalidStatus = errors.New("invalid draw status")
	ErrNotOpen       = errors.New("draw is not open for entries")
	ErrDuplicateDate = errors.New("draw already scheduled for date")
)

// Draw is one winning-number selection and its jackpot.
type Draw struct {
	ID             string
	Date           time.Time
	WinningNumbers lotto.Numbers
	Jackpot        decimal.Decimal
	Status         Status
	DrawnAt        time.Time
	SettledAt      time.Time
}

func (d Draw) Validate(rules lotto.Rules) error {
	if d.ID == "" {
		return errors.New("draw id is required")
	}
	if d.Date.IsZero() {
		return errors.New("draw date is required")
	}
	if d.Jackpot.IsNegative() {
		return errors.New("jackpot must not be negative")
	}
	if d.Status != StatusOpen {
		if err := rules.Validate(d.WinningNumbers); err != nil {
			return errors.Wrap(err, "winning numbers")
		}
	}

	return nil
}

// AcceptsEntries reports whether tickets for the draw date can still be
// bought or modified.
func (d Draw) AcceptsEntries() bool {
	return d.Status == StatusOpen
}

// MarkDrawn records the winning numbers of an open draw.
func (d *Draw) MarkDrawn(numbers lotto.Numbers, now time.Time) error {
	if d.Status != StatusOpen {
		return errors.Wrapf(ErrInvalidStatus, "draw=%s status=%s", d.ID, d.Status)
	}

	d.WinningNumbers = numbers.Clone()
	d.Status = StatusDrawn
	d.DrawnAt = now
	return nil
}

func (d *Draw) MarkSettled(now time.Time) error {
	if d.Status != StatusDrawn {
		return errors.Wrapf(ErrInvalidStatus, "draw=%s status=%s", d.ID, d.Status)
	}

	d.Status = StatusSettled
	d.SettledAt = now
	return nil
}

func (d Draw) Clone() Draw {
	copied := d
	copied.WinningNumbers = d.WinningNumbers.Clone()
	return copied
}
