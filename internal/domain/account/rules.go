package account

import "github.com/shopspring/decimal"

// Rules holds the settings applied to new accounts.
type Rules struct {
	StartingBalance decimal.Decimal
	StartingPoints  int64
}

func DefaultRules() Rules {
	return Rules{
		StartingBalance: decimal.NewFromInt(250),
	}
}
