package ticket

import "github.com/shopspring/decimal"

// Rules is the price list for tickets.
type Rules struct {
	Cost         decimal.Decimal
	PointsEarned int64
	ModifyCost   int64
}

func DefaultRules() Rules {
	return Rules{
		Cost:         decimal.NewFromInt(5),
		PointsEarned: 50,
		ModifyCost:   100,
	}
}
