package usecase

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/riskibarqy/lottery-rewards/internal/domain/account"
	"github.com/riskibarqy/lottery-rewards/internal/domain/draw"
	"github.com/riskibarqy/lottery-rewards/internal/domain/reward"
	idgen "github.com/riskibarqy/lottery-rewards/internal/platform/id"
	"github.com/riskibarqy/lottery-rewards/internal/platform/logging"
)

type OpenAccountInput struct {
	Name  string
	Email string
}

// UpdateProfileInput replaces the profile fields that are set.
type UpdateProfileInput struct {
	AccountID   string
	Name        *string
	Email       *string
	Preferences *account.PreferencesPatch
}

// RewardProgress tracks points towards the top catalog tier.
type RewardProgress struct {
	Points    int64
	Threshold int64
	Percent   int
}

type Dashboard struct {
	AccountID      string
	Name           string
	Balance        decimal.Decimal
	Points         int64
	ActiveTickets  int
	TotalTickets   int
	TotalSpent     decimal.Decimal
	TotalWon       decimal.Decimal
	NetResult      decimal.Decimal
	NextDraw       *draw.Draw
	VIP            bool
	RewardProgress RewardProgress
}

type AccountService struct {
	accountRepo   account.Repository
	drawRepo      draw.Repository
	rules         account.Rules
	rewardRules   reward.Rules
	idGen         idgen.Generator
	demoAccountID string
	logger        *logging.Logger
	now           func() time.Time
}

func NewAccountService(
	accountRepo account.Repository,
	drawRepo draw.Repository,
	rules account.Rules,
	rewardRules reward.Rules,
	idGen idgen.Generator,
	demoAccountID string,
	logger *logging.Logger,
) *AccountService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AccountService{
		accountRepo:   accountRepo,
		drawRepo:      drawRepo,
		rules:         rules,
		rewardRules:   rewardRules,
		idGen:         idGen,
		demoAccountID: demoAccountID,
		logger:        logger,
		now:           time.Now,
	}
}

// SignIn is the mock login: it always resolves the seeded demo account.
func (s *AccountService) SignIn(ctx context.Context) (account.Account, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.SignIn")
	defer span.End()

	acct, err := loadAccount(ctx, s.accountRepo, s.demoAccountID)
	if err != nil {
		return account.Account{}, err
	}

	s.logger.InfoContext(ctx, "account signed in", "account_id", acct.ID)
	return acct, nil
}

func (s *AccountService) OpenAccount(ctx context.Context, input OpenAccountInput) (account.Account, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.OpenAccount")
	defer span.End()

	accountID, err := s.idGen.NewID()
	if err != nil {
		return account.Account{}, errors.Wrap(err, "generate account id")
	}

	now := s.now().UTC()
	acct := account.Account{
		ID:    accountID,
		Name:  strings.TrimSpace(input.Name),
		Email: strings.TrimSpace(input.Email),
		Ledger: account.Ledger{
			Balance: s.rules.StartingBalance,
			Points:  s.rules.StartingPoints,
		},
		Claims:      map[string]time.Time{},
		Preferences: account.DefaultPreferences(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := acct.Validate(); err != nil {
		return account.Account{}, invalidInput(errors.Wrap(err, "validate account"))
	}

	if err := s.accountRepo.Create(ctx, acct); err != nil {
		return account.Account{}, errors.Wrap(err, "create account")
	}

	s.logger.InfoContext(ctx, "account opened", "account_id", acct.ID)
	return acct, nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountID string) (account.Account, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.GetAccount")
	defer span.End()

	return loadAccount(ctx, s.accountRepo, accountID)
}

func (s *AccountService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (account.Account, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.UpdateProfile")
	defer span.End()

	accountID := strings.TrimSpace(input.AccountID)
	if accountID == "" {
		return account.Account{}, errors.Wrap(ErrInvalidInput, "account id is required")
	}

	updated, err := s.accountRepo.Update(ctx, accountID, func(a *account.Account) error {
		if input.Name != nil {
			a.Name = strings.TrimSpace(*input.Name)
		}
		if input.Email != nil {
			a.Email = strings.TrimSpace(*input.Email)
		}
		if input.Preferences != nil {
			a.Preferences = input.Preferences.Apply(a.Preferences)
		}
		if err := a.Validate(); err != nil {
			return invalidInput(errors.Wrap(err, "validate profile"))
		}
		a.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		return account.Account{}, mapAccountError(err, accountID)
	}

	s.logger.InfoContext(ctx, "profile updated", "account_id", accountID)
	return updated, nil
}

func (s *AccountService) Dashboard(ctx context.Context, accountID string) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.Dashboard")
	defer span.End()

	acct, err := loadAccount(ctx, s.accountRepo, accountID)
	if err != nil {
		return Dashboard{}, err
	}

	draws, err := s.drawRepo.ListFrom(ctx, time.Time{})
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "list draws")
	}

	now := s.now().UTC()
	out := Dashboard{
		AccountID:      acct.ID,
		Name:           acct.Name,
		Balance:        acct.Ledger.Balance,
		Points:         acct.Ledger.Points,
		ActiveTickets:  len(acct.ActiveTickets()),
		TotalTickets:   len(acct.Tickets),
		TotalSpent:     acct.Ledger.TotalSpent,
		TotalWon:       acct.Ledger.TotalWon,
		NetResult:      acct.Ledger.Net(),
		VIP:            acct.IsVIP(now),
		RewardProgress: rewardProgress(acct.Ledger.Points, s.rewardRules.ProgressThreshold),
	}
	if next, ok := resolveCurrentDraw(draws); ok {
		out.NextDraw = &next
	}

	return out, nil
}

// History returns play history newest first.
func (s *AccountService) History(ctx context.Context, accountID string) ([]account.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.History")
	defer span.End()

	acct, err := loadAccount(ctx, s.accountRepo, accountID)
	if err != nil {
		return nil, err
	}

	out := slices.Clone(acct.History)
	slices.Reverse(out)
	return out, nil
}

func rewardProgress(points, threshold int64) RewardProgress {
	progress := RewardProgress{Points: points, Threshold: threshold}
	switch {
	case threshold <= 0 || points >= threshold:
		progress.Percent = 100
	case points > 0:
		progress.Percent = int(points * 100 / threshold)
	}
	return progress
}

func loadAccount(ctx context.Context, repo account.Repository, accountID string) (account.Account, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return account.Account{}, errors.Wrap(ErrInvalidInput, "account id is required")
	}

	acct, ok, err := repo.GetByID(ctx, accountID)
	if err != nil {
		return account.Account{}, errors.Wrapf(err, "get account=%s", accountID)
	}
	if !ok {
		return account.Account{}, errors.Wrapf(ErrNotFound, "account=%s", accountID)
	}
	return acct, nil
}

// mapAccountError turns repository misses into ErrNotFound and leaves
// domain errors as they are.
func mapAccountError(err error, accountID string) error {
	if errors.Is(err, account.ErrNotFound) {
		return errors.Wrapf(ErrNotFound, "account=%s", accountID)
	}
	return err
}
