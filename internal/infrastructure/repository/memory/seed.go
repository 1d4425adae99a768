package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/lottery-rewards/internal/domain/account"
	"github.com/riskibarqy/lottery-rewards/internal/domain/draw"
	"github.com/riskibarqy/lottery-rewards/internal/domain/lotto"
	"github.com/riskibarqy/lottery-rewards/internal/domain/ticket"
)

const (
	DemoAccountID = "demo-account"

	DrawIDJan12 = "draw-2024-01-12"
	DrawIDJan15 = "draw-2024-01-15"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// SeedAccount returns the mock sign-in account under id. An empty id
// falls back to DemoAccountID.
func SeedAccount(id string) account.Account {
	if id == "" {
		id = DemoAccountID
	}
	created := day(2024, time.January, 1)
	rules := ticket.DefaultRules()

	active := ticket.New("1", lotto.Numbers{7, 14, 23, 31, 42, 49}, day(2024, time.January, 15), rules, false, created)

	lost := ticket.New("2", lotto.Numbers{3, 18, 27, 35, 41, 44}, day(2024, time.January, 12), rules, false, created)
	lost.Status = ticket.StatusLost
	lost.CanModify = false

	won := ticket.New("3", lotto.Numbers{12, 19, 28, 33, 39, 47}, day(2024, time.January, 10), rules, false, created)
	won.Status = ticket.StatusWon
	won.WinAmount = decimal.NewNullDecimal(decimal.NewFromInt(25))
	won.Matches = 3
	won.CanModify = false

	return account.Account{
		ID:    id,
		Name:  "John Doe",
		Email: "john@example.com",
		Ledger: account.Ledger{
			Balance:    decimal.NewFromInt(250),
			Points:     1250,
			TotalSpent: decimal.NewFromInt(150),
			TotalWon:   decimal.NewFromInt(75),
		},
		Tickets:     []ticket.Ticket{active, lost, won},
		Claims:      map[string]time.Time{},
		Preferences: account.DefaultPreferences(),
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

// SeedDraws returns the last drawn result and the upcoming open draw.
func SeedDraws() []draw.Draw {
	jan12 := day(2024, time.January, 12)
	return []draw.Draw{
		{
			ID:             DrawIDJan12,
			Date:           jan12,
			WinningNumbers: lotto.Numbers{7, 14, 23, 31, 42, 49},
			Jackpot:        decimal.NewFromInt(1250000),
			Status:         draw.StatusDrawn,
			DrawnAt:        jan12.Add(20 * time.Hour),
		},
		{
			ID:      DrawIDJan15,
			Date:    day(2024, time.January, 15),
			Jackpot: decimal.NewFromInt(2500000),
			Status:  draw.StatusOpen,
		},
	}
}
