package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/riskibarqy/lottery-rewards/internal/domain/account"
	"github.com/riskibarqy/lottery-rewards/internal/domain/reward"
	"github.com/riskibarqy/lottery-rewards/internal/domain/ticket"
	"github.com/riskibarqy/lottery-rewards/internal/platform/logging"
	"github.com/riskibarqy/lottery-rewards/internal/platform/random"
)

type SpinResult struct {
	Outcome        reward.Outcome
	PointsAwarded  int64
	Points         int64
	SpinsRemaining int
}

type RedeemResult struct {
	Item   reward.Item
	Points int64
}

type CatalogEntry struct {
	Item       reward.Item
	Available  bool
	Claimed    bool
	Affordable bool
}

type CatalogView struct {
	Items    []CatalogEntry
	Points   int64
	Progress RewardProgress
}

type RewardService struct {
	accountRepo account.Repository
	wheel       reward.Wheel
	catalog     reward.Catalog
	rules       reward.Rules
	source      random.Source
	logger      *logging.Logger
	now         func() time.Time
}

func NewRewardService(
	accountRepo account.Repository,
	wheel reward.Wheel,
	catalog reward.Catalog,
	rules reward.Rules,
	source random.Source,
	logger *logging.Logger,
) *RewardService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RewardService{
		accountRepo: accountRepo,
		wheel:       wheel,
		catalog:     catalog,
		rules:       rules,
		source:      source,
		logger:      logger,
		now:         time.Now,
	}
}

// Spin consumes one spin (the daily allowance first, then extra spins) and
// applies the outcome to the ledger.
func (s *RewardService) Spin(ctx context.Context, accountID string) (SpinResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RewardService.Spin")
	defer span.End()

	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return SpinResult{}, errors.Wrap(ErrInvalidInput, "account id is required")
	}
	if len(s.wheel.Segments) == 0 {
		return SpinResult{}, errors.Wrap(ErrDependencyUnavailable, "wheel has no segments")
	}

	var out SpinResult
	updated, err := s.accountRepo.Update(ctx, accountID, func(a *account.Account) error {
		now := s.now().UTC()
		if err := s.consumeSpin(a, now); err != nil {
			return err
		}

		outcome := s.wheel.Spin(s.source)
		points := s.rules.PointsFor(outcome)
		if points > 0 {
			if err := a.Ledger.CreditPoints(points); err != nil {
				return err
			}
		}
		if outcome.Kind == reward.KindBadge {
			a.AwardBadge(outcome.Ref)
		}

		a.Record(account.Entry{
			Kind:      account.EntrySpinReward,
			Amount:    decimal.Zero,
			Points:    points,
			Reference: string(outcome.Kind),
			At:        now,
		})
		a.LastSpinAt = now
		a.UpdatedAt = now

		out.Outcome = outcome
		out.PointsAwarded = points
		return nil
	})
	if err != nil {
		return SpinResult{}, mapAccountError(err, accountID)
	}

	out.Points = updated.Ledger.Points
	out.SpinsRemaining = s.spinsRemaining(updated, s.now().UTC())

	s.logger.InfoContext(ctx, "wheel spun",
		"account_id", accountID,
		"outcome", string(out.Outcome.Kind),
		"points_awarded", out.PointsAwarded,
	)
	return out, nil
}

func (s *RewardService) consumeSpin(a *account.Account, now time.Time) error {
	if !ticket.DrawDay(a.LastSpinAt).Equal(ticket.DrawDay(now)) {
		a.SpinsToday = 0
	}

	switch {
	case s.rules.DailySpins <= 0 || a.SpinsToday < s.rules.DailySpins:
		a.SpinsToday++
	case a.ExtraSpins > 0:
		a.ExtraSpins--
	default:
		return errors.Wrapf(reward.ErrSpinUnavailable, "account=%s", a.ID)
	}
	return nil
}

// spinsRemaining is -1 when the daily limit is disabled.
func (s *RewardService) spinsRemaining(a account.Account, now time.Time) int {
	if s.rules.DailySpins <= 0 {
		return -1
	}

	used := a.SpinsToday
	if !ticket.DrawDay(a.LastSpinAt).Equal(ticket.DrawDay(now)) {
		used = 0
	}
	left := s.rules.DailySpins - used
	if left < 0 {
		left = 0
	}
	return left + a.ExtraSpins
}

// RedeemCatalogItem claims an item and charges its cost in points.
func (s *RewardService) RedeemCatalogItem(ctx context.Context, accountID, itemID string) (RedeemResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RewardService.RedeemCatalogItem")
	defer span.End()

	accountID = strings.TrimSpace(accountID)
	itemID = strings.TrimSpace(itemID)
	if accountID == "" || itemID == "" {
		return RedeemResult{}, errors.Wrap(ErrInvalidInput, "account id and item id are required")
	}

	var claimed reward.Item
	updated, err := s.accountRepo.Update(ctx, accountID, func(a *account.Account) error {
		if a.Claims == nil {
			a.Claims = map[string]time.Time{}
		}

		now := s.now().UTC()
		item, err := s.catalog.Redeem(itemID, a.Ledger.Points, reward.Claims(a.Claims), now)
		if err != nil {
			return err
		}
		if err := a.Ledger.Redeem(item.Cost); err != nil {
			return err
		}

		switch item.ID {
		case reward.ItemVIPStatus:
			a.VIPUntil = now.Add(s.rules.VIPDuration)
		case reward.ItemExtraSpin:
			a.ExtraSpins++
		}

		a.Record(account.Entry{
			Kind:      account.EntryRewardClaim,
			Amount:    decimal.Zero,
			Points:    -item.Cost,
			Reference: item.ID,
			At:        now,
		})
		a.UpdatedAt = now
		claimed = item
		return nil
	})
	if err != nil {
		return RedeemResult{}, mapAccountError(err, accountID)
	}

	s.logger.InfoContext(ctx, "catalog item claimed",
		"account_id", accountID,
		"item_id", claimed.ID,
		"cost", claimed.Cost,
	)
	return RedeemResult{Item: claimed, Points: updated.Ledger.Points}, nil
}

func (s *RewardService) ListCatalog(ctx context.Context, accountID string) (CatalogView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RewardService.ListCatalog")
	defer span.End()

	acct, err := loadAccount(ctx, s.accountRepo, accountID)
	if err != nil {
		return CatalogView{}, err
	}

	claims := reward.Claims(acct.Claims)
	points := acct.Ledger.Points
	out := CatalogView{
		Items:    make([]CatalogEntry, 0, len(s.catalog.Items)),
		Points:   points,
		Progress: rewardProgress(points, s.rules.ProgressThreshold),
	}
	for _, item := range s.catalog.Items {
		out.Items = append(out.Items, CatalogEntry{
			Item:       item,
			Available:  item.Available(points),
			Claimed:    claims.Has(item.ID),
			Affordable: points >= item.Cost,
		})
	}
	return out, nil
}
