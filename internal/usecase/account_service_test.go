package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/lottery-rewards/internal/domain/account"
	"github.com/riskibarqy/lottery-rewards/internal/domain/lotto"
	"github.com/riskibarqy/lottery-rewards/internal/domain/reward"
	"github.com/riskibarqy/lottery-rewards/internal/domain/ticket"
	"github.com/riskibarqy/lottery-rewards/internal/infrastructure/repository/memory"
	accountmock "github.com/riskibarqy/lottery-rewards/internal/mocks/domain/account"
	"github.com/riskibarqy/lottery-rewards/internal/platform/logging"
	"github.com/riskibarqy/lottery-rewards/internal/platform/random"
)

func TestAccountService_SignIn(t *testing.T) {
	svc := newTestServices(random.NewPCGSource(1))

	acct, err := svc.account.SignIn(t.Context())
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if acct.ID != memory.DemoAccountID || acct.Name != "John Doe" {
		t.Fatalf("unexpected account: %+v", acct)
	}
	if !acct.Ledger.Balance.Equal(decimal.NewFromInt(250)) || acct.Ledger.Points != 1250 {
		t.Fatalf("unexpected ledger: %+v", acct.Ledger)
	}
}

func TestAccountService_OpenAccount(t *testing.T) {
	ctx := t.Context()
	svc := newTestServices(random.NewPCGSource(1))

	acct, err := svc.account.OpenAccount(ctx, OpenAccountInput{Name: " Jane Roe ", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("open account: %v", err)
	}
	if acct.ID != "acc-001" || acct.Name != "Jane Roe" {
		t.Fatalf("unexpected account: %+v", acct)
	}
	if !acct.Ledger.Balance.Equal(account.DefaultRules().StartingBalance) {
		t.Fatalf("unexpected starting balance: %s", acct.Ledger.Balance)
	}
	if !acct.CreatedAt.Equal(testNow) {
		t.Fatalf("unexpected created at: %s", acct.CreatedAt)
	}

	if _, err := svc.account.OpenAccount(ctx, OpenAccountInput{Name: "Jane", Email: "nope"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAccountService_UpdateProfile(t *testing.T) {
	ctx := t.Context()
	svc := newTestServices(random.NewPCGSource(1))

	name := "Johnny Doe"
	off := false
	prefs := account.PreferencesPatch{NotifyPromotions: &off}
	updated, err := svc.account.UpdateProfile(ctx, UpdateProfileInput{
		AccountID:   memory.DemoAccountID,
		Name:        &name,
		Preferences: &prefs,
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != name || updated.Email != "john@example.com" || updated.Preferences.NotifyPromotions {
		t.Fatalf("unexpected profile: %+v", updated)
	}
	if !updated.Preferences.NotifyDrawResults || !updated.Preferences.NotifyWinnings ||
		!updated.Preferences.SpendingLimit.Equal(account.DefaultPreferences().SpendingLimit) {
		t.Fatalf("unset preferences changed: %+v", updated.Preferences)
	}

	bad := "not-an-email"
	_, err = svc.account.UpdateProfile(ctx, UpdateProfileInput{AccountID: memory.DemoAccountID, Email: &bad})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	stored, _, _ := svc.accounts.GetByID(ctx, memory.DemoAccountID)
	if stored.Email != "john@example.com" {
		t.Fatalf("invalid email stored: %s", stored.Email)
	}

	if _, err := svc.account.UpdateProfile(ctx, UpdateProfileInput{AccountID: "ghost", Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccountService_Dashboard(t *testing.T) {
	svc := newTestServices(random.NewPCGSource(1))

	got, err := svc.account.Dashboard(t.Context(), memory.DemoAccountID)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if got.ActiveTickets != 1 || got.TotalTickets != 3 {
		t.Fatalf("unexpected ticket counts: active=%d total=%d", got.ActiveTickets, got.TotalTickets)
	}
	if !got.NetResult.Equal(decimal.NewFromInt(-75)) {
		t.Fatalf("unexpected net result: %s", got.NetResult)
	}
	if got.NextDraw == nil || got.NextDraw.ID != memory.DrawIDJan15 {
		t.Fatalf("unexpected next draw: %+v", got.NextDraw)
	}
	if got.RewardProgress.Percent != 62 {
		t.Fatalf("unexpected reward progress: %+v", got.RewardProgress)
	}
}

func TestAccountService_HistoryNewestFirst(t *testing.T) {
	ctx := t.Context()
	svc := newTestServices(random.NewSequence(0))

	if _, err := svc.tickets.PurchaseTicket(ctx, PurchaseTicketInput{
		AccountID: memory.DemoAccountID,
		Numbers:   []int{1, 2, 3, 4, 5, 6},
		DrawDate:  nextDrawDate,
	}); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if _, err := svc.rewards.Spin(ctx, memory.DemoAccountID); err != nil {
		t.Fatalf("spin: %v", err)
	}

	history, err := svc.account.History(ctx, memory.DemoAccountID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	if history[0].Kind != account.EntrySpinReward || history[1].Kind != account.EntryTicketPurchase {
		t.Fatalf("unexpected order: %+v", history)
	}
}

func TestRewardProgress(t *testing.T) {
	tests := []struct {
		points, threshold int64
		want              int
	}{
		{points: 0, threshold: 2000, want: 0},
		{points: 1250, threshold: 2000, want: 62},
		{points: 2500, threshold: 2000, want: 100},
		{points: 10, threshold: 0, want: 100},
	}
	for _, tt := range tests {
		if got := rewardProgress(tt.points, tt.threshold).Percent; got != tt.want {
			t.Fatalf("rewardProgress(%d,%d)=%d want %d", tt.points, tt.threshold, got, tt.want)
		}
	}
}

func TestAccountService_GetAccount_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	accountRepo := accountmock.NewRepository(t)
	service := NewAccountService(
		accountRepo, memory.NewDrawRepository(), account.DefaultRules(), reward.DefaultRules(),
		staticIDGenerator{id: "acc-1"}, memory.DemoAccountID, logging.NewNop(),
	)

	accountRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "missing").
		Return(account.Account{}, false, nil).
		Once()

	_, err := service.GetAccount(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTicketService_PurchaseTicket_RepositoryMissUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	accountRepo := accountmock.NewRepository(t)
	service := NewTicketService(
		accountRepo, memory.NewDrawRepository(memory.SeedDraws()...), lotto.DefaultRules(), ticket.DefaultRules(), random.NewSequence(0),
		staticIDGenerator{id: "ticket-1"}, logging.NewNop(),
	)

	accountRepo.
		On("Update", mock.Anything, "gone", mock.AnythingOfType("func(*account.Account) error")).
		Return(account.Account{}, account.ErrNotFound).
		Once()

	_, err := service.PurchaseTicket(ctx, PurchaseTicketInput{
		AccountID: "gone",
		Numbers:   []int{1, 2, 3, 4, 5, 6},
		DrawDate:  nextDrawDate,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTicketService_PurchaseTicket_RunsLedgerInsideUpdateUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	accountRepo := accountmock.NewRepository(t)
	service := NewTicketService(
		accountRepo, memory.NewDrawRepository(memory.SeedDraws()...), lotto.DefaultRules(), ticket.DefaultRules(), random.NewSequence(0),
		staticIDGenerator{id: "ticket-1"}, logging.NewNop(),
	)

	working := account.Account{ID: "acc-1", Ledger: account.Ledger{Balance: decimal.NewFromInt(5)}}
	accountRepo.
		On("Update", mock.Anything, "acc-1", mock.Anything).
		Return(func(_ context.Context, _ string, fn func(*account.Account) error) (account.Account, error) {
			if err := fn(&working); err != nil {
				return account.Account{}, err
			}
			return working, nil
		}).
		Once()

	created, err := service.PurchaseTicket(ctx, PurchaseTicketInput{
		AccountID: "acc-1",
		Numbers:   []int{6, 5, 4, 3, 2, 1},
		DrawDate:  nextDrawDate,
	})
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if created.ID != "ticket-1" {
		t.Fatalf("unexpected ticket id: %s", created.ID)
	}
	if !working.Ledger.Balance.IsZero() || working.Ledger.Points != 50 || len(working.Tickets) != 1 {
		t.Fatalf("ledger not applied inside update: %+v", working)
	}
}
