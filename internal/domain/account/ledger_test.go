package account

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func seedLedger() Ledger {
	return Ledger{
		Balance:    decimal.NewFromInt(250),
		Points:     1250,
		TotalSpent: decimal.NewFromInt(150),
		TotalWon:   decimal.NewFromInt(75),
	}
}

func TestLedger_Purchase(t *testing.T) {
	l := seedLedger()
	cost := decimal.RequireFromString("5.00")

	if err := l.Purchase(cost, 50); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if !l.Balance.Equal(decimal.NewFromInt(245)) {
		t.Fatalf("expected balance 245, got %s", l.Balance)
	}
	if l.Points != 1300 {
		t.Fatalf("expected points 1300, got %d", l.Points)
	}
	if !l.TotalSpent.Equal(decimal.NewFromInt(155)) {
		t.Fatalf("expected total spent 155, got %s", l.TotalSpent)
	}
}

func TestLedger_PurchaseInsufficientBalanceLeavesStateUntouched(t *testing.T) {
	l := Ledger{Balance: decimal.RequireFromString("4.99"), Points: 10}
	before := l

	err := l.Purchase(decimal.NewFromInt(5), 50)
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if !l.Balance.Equal(before.Balance) || l.Points != before.Points || !l.TotalSpent.Equal(before.TotalSpent) {
		t.Fatalf("ledger mutated on failure: before=%+v after=%+v", before, l)
	}
}

func TestLedger_Redeem(t *testing.T) {
	l := Ledger{Points: 100}

	if err := l.Redeem(100); err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if l.Points != 0 {
		t.Fatalf("expected 0 points, got %d", l.Points)
	}
	if err := l.Redeem(1); !errors.Is(err, ErrInsufficientPoints) {
		t.Fatalf("expected ErrInsufficientPoints, got %v", err)
	}
	if l.Points != 0 {
		t.Fatalf("points changed on failure: %d", l.Points)
	}
}

func TestLedger_CreditWin(t *testing.T) {
	l := seedLedger()

	if err := l.CreditWin(decimal.Zero); err != nil {
		t.Fatalf("zero credit should not fail: %v", err)
	}
	if !l.Balance.Equal(decimal.NewFromInt(250)) || !l.TotalWon.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("zero credit changed ledger: %+v", l)
	}

	if err := l.CreditWin(decimal.NewFromInt(100)); err != nil {
		t.Fatalf("credit win: %v", err)
	}
	if !l.Balance.Equal(decimal.NewFromInt(350)) || !l.TotalWon.Equal(decimal.NewFromInt(175)) {
		t.Fatalf("unexpected ledger after credit: %+v", l)
	}

	if err := l.CreditWin(decimal.NewFromInt(-1)); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestLedger_TotalsTrackOperations(t *testing.T) {
	l := Ledger{Balance: decimal.NewFromInt(12)}
	cost := decimal.NewFromInt(5)
	wantSpent := decimal.Zero
	wantWon := decimal.Zero

	for i := 0; i < 3; i++ {
		if err := l.Purchase(cost, 50); err == nil {
			wantSpent = wantSpent.Add(cost)
		}
	}
	for _, win := range []int64{10, 0, 100} {
		amount := decimal.NewFromInt(win)
		if err := l.CreditWin(amount); err != nil {
			t.Fatalf("credit win: %v", err)
		}
		wantWon = wantWon.Add(amount)
	}

	if !l.TotalSpent.Equal(wantSpent) {
		t.Fatalf("total spent: want=%s got=%s", wantSpent, l.TotalSpent)
	}
	if !l.TotalWon.Equal(wantWon) {
		t.Fatalf("total won: want=%s got=%s", wantWon, l.TotalWon)
	}
	if !wantSpent.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected two successful purchases, spent=%s", wantSpent)
	}
	if !l.Net().Equal(wantWon.Sub(wantSpent)) {
		t.Fatalf("unexpected net: %s", l.Net())
	}
}
