package usecase

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/lottery-rewards/internal/domain/account"
	"github.com/riskibarqy/lottery-rewards/internal/domain/draw"
	"github.com/riskibarqy/lottery-rewards/internal/domain/lotto"
	"github.com/riskibarqy/lottery-rewards/internal/domain/reward"
	"github.com/riskibarqy/lottery-rewards/internal/domain/ticket"
	"github.com/riskibarqy/lottery-rewards/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/lottery-rewards/internal/platform/logging"
	"github.com/riskibarqy/lottery-rewards/internal/platform/random"
)

var testNow = time.Date(2024, time.January, 14, 9, 30, 0, 0, time.UTC)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

type sequenceIDGenerator struct {
	prefix string
	next   atomic.Int64
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("%s-%03d", g.prefix, g.next.Add(1)), nil
}

type testServices struct {
	accounts *memory.AccountRepository
	draws    *memory.DrawRepository
	account  *AccountService
	tickets  *TicketService
	draw     *DrawService
	rewards  *RewardService
}

// newTestServices wires every service over memory repositories seeded with
// the demo account plus any extra accounts.
func newTestServices(src random.Source, extra ...account.Account) testServices {
	accounts := memory.NewAccountRepository(append([]account.Account{memory.SeedAccount(memory.DemoAccountID)}, extra...)...)
	draws := memory.NewDrawRepository(memory.SeedDraws()...)
	logger := logging.NewNop()

	svc := testServices{
		accounts: accounts,
		draws:    draws,
		account: NewAccountService(
			accounts, draws, account.DefaultRules(), reward.DefaultRules(),
			&sequenceIDGenerator{prefix: "acc"}, memory.DemoAccountID, logger,
		),
		tickets: NewTicketService(
			accounts, draws, lotto.DefaultRules(), ticket.DefaultRules(), src,
			&sequenceIDGenerator{prefix: "ticket"}, logger,
		),
		draw: NewDrawService(
			draws, accounts, draw.NewEvaluator(lotto.DefaultRules(), draw.DefaultPrizeTable()), src,
			&sequenceIDGenerator{prefix: "draw"}, 2, logger,
		),
		rewards: NewRewardService(
			accounts, reward.DefaultWheel(), reward.DefaultCatalog(), reward.DefaultRules(), src, logger,
		),
	}
	svc.setNow(testNow)
	return svc
}

func (s testServices) setNow(now time.Time) {
	clock := func() time.Time { return now }
	s.account.now = clock
	s.tickets.now = clock
	s.draw.now = clock
	s.rewards.now = clock
}

func newFundedAccount(id string, balance int64, points int64) account.Account {
	a := memory.SeedAccount(memory.DemoAccountID)
	a.ID = id
	a.Email = id + "@example.com"
	a.Tickets = nil
	a.Ledger = account.Ledger{Balance: decimal.NewFromInt(balance), Points: points}
	return a
}
