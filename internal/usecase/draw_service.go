package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/shopspring/decimal"

	"github.com/riskibarqy/lottery-rewards/internal/domain/account"
	"github.com/riskibarqy/lottery-rewards/internal/domain/draw"
	"github.com/riskibarqy/lottery-rewards/internal/domain/lotto"
	"github.com/riskibarqy/lottery-rewards/internal/domain/ticket"
	idgen "github.com/riskibarqy/lottery-rewards/internal/platform/id"
	"github.com/riskibarqy/lottery-rewards/internal/platform/logging"
	"github.com/riskibarqy/lottery-rewards/internal/platform/random"
)

const defaultSettlementWorkers = 4

type CreateDrawInput struct {
	Date    time.Time
	Jackpot decimal.Decimal
	// WinningNumbers is optional. When set the draw is created drawn.
	WinningNumbers []int
}

type TicketResult struct {
	Ticket ticket.Ticket
	Result draw.Result
}

// DrawCheck is a read-only evaluation of one account's tickets.
type DrawCheck struct {
	Draw             draw.Draw
	Results          []TicketResult
	HasWinningTicket bool
	HasNearMiss      bool
	TotalPrize       decimal.Decimal
}

type AccountSettlement struct {
	AccountID      string
	TicketsSettled int
	Winners        int
	Winnings       decimal.Decimal
}

type Settlement struct {
	Draw     draw.Draw
	Accounts []AccountSettlement
	Winnings decimal.Decimal
}

type DrawService struct {
	drawRepo    draw.Repository
	accountRepo account.Repository
	evaluator   draw.Evaluator
	source      random.Source
	idGen       idgen.Generator
	workers     int
	jackpot     decimal.Decimal
	logger      *logging.Logger
	now         func() time.Time
}

func NewDrawService(
	drawRepo draw.Repository,
	accountRepo account.Repository,
	evaluator draw.Evaluator,
	source random.Source,
	idGen idgen.Generator,
	workers int,
	logger *logging.Logger,
) *DrawService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultSettlementWorkers
	}

	return &DrawService{
		drawRepo:    drawRepo,
		accountRepo: accountRepo,
		evaluator:   evaluator,
		source:      source,
		idGen:       idGen,
		workers:     workers,
		logger:      logger,
		now:         time.Now,
	}
}

// SetDefaultJackpot sets the jackpot used when CreateDraw is given none.
func (s *DrawService) SetDefaultJackpot(jackpot decimal.Decimal) {
	s.jackpot = jackpot
}

func (s *DrawService) CreateDraw(ctx context.Context, input CreateDrawInput) (draw.Draw, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DrawService.CreateDraw")
	defer span.End()

	if input.Date.IsZero() {
		return draw.Draw{}, errors.Wrap(ErrInvalidInput, "draw date is required")
	}
	if input.Jackpot.IsNegative() {
		return draw.Draw{}, errors.Wrap(ErrInvalidInput, "jackpot must not be negative")
	}
	jackpot := input.Jackpot
	if jackpot.IsZero() {
		jackpot = s.jackpot
	}

	drawID, err := s.idGen.NewID()
	if err != nil {
		return draw.Draw{}, errors.Wrap(err, "generate draw id")
	}

	now := s.now().UTC()
	created := draw.Draw{
		ID:      drawID,
		Date:    ticket.DrawDay(input.Date),
		Jackpot: jackpot,
		Status:  draw.StatusOpen,
	}
	if len(input.WinningNumbers) > 0 {
		numbers, err := s.evaluator.Numbers.Normalize(input.WinningNumbers)
		if err != nil {
			return draw.Draw{}, invalidInput(err)
		}
		if err := created.MarkDrawn(numbers, now); err != nil {
			return draw.Draw{}, err
		}
	}

	if err := s.drawRepo.Create(ctx, created); err != nil {
		return draw.Draw{}, errors.Wrap(err, "create draw")
	}

	s.logger.InfoContext(ctx, "draw created",
		"draw_id", created.ID,
		"draw_date", created.Date.Format(time.DateOnly),
		"status", string(created.Status),
	)
	return created, nil
}

func (s *DrawService) GetDraw(ctx context.Context, drawID string) (draw.Draw, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DrawService.GetDraw")
	defer span.End()

	return s.loadDraw(ctx, drawID)
}

// RunDraw picks the winning numbers of an open draw.
func (s *DrawService) RunDraw(ctx context.Context, drawID string) (draw.Draw, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DrawService.RunDraw")
	defer span.End()

	drawID = strings.TrimSpace(drawID)
	if drawID == "" {
		return draw.Draw{}, errors.Wrap(ErrInvalidInput, "draw id is required")
	}

	return s.markDrawn(ctx, drawID, s.evaluator.Numbers.QuickPick(s.source))
}

// PublishResults records externally chosen winning numbers on an open draw.
func (s *DrawService) PublishResults(ctx context.Context, drawID string, winningNumbers []int) (draw.Draw, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DrawService.PublishResults")
	defer span.End()

	drawID = strings.TrimSpace(drawID)
	if drawID == "" {
		return draw.Draw{}, errors.Wrap(ErrInvalidInput, "draw id is required")
	}
	numbers, err := s.evaluator.Numbers.Normalize(winningNumbers)
	if err != nil {
		return draw.Draw{}, invalidInput(err)
	}

	return s.markDrawn(ctx, drawID, numbers)
}

func (s *DrawService) markDrawn(ctx context.Context, drawID string, numbers lotto.Numbers) (draw.Draw, error) {
	updated, err := s.drawRepo.Update(ctx, drawID, func(d *draw.Draw) error {
		return d.MarkDrawn(numbers, s.now().UTC())
	})
	if err != nil {
		return draw.Draw{}, mapDrawError(err, drawID)
	}

	s.logger.InfoContext(ctx, "draw run", "draw_id", drawID, "winning_numbers", []int(updated.WinningNumbers))
	return updated, nil
}

// CheckTickets evaluates the account's tickets for the draw date without
// changing anything.
func (s *DrawService) CheckTickets(ctx context.Context, accountID, drawID string) (DrawCheck, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DrawService.CheckTickets")
	defer span.End()

	d, err := s.loadDraw(ctx, drawID)
	if err != nil {
		return DrawCheck{}, err
	}
	acct, err := loadAccount(ctx, s.accountRepo, accountID)
	if err != nil {
		return DrawCheck{}, err
	}

	out := DrawCheck{Draw: d, TotalPrize: decimal.Zero}
	for _, t := range acct.Tickets {
		if !t.DrawDate.Equal(d.Date) {
			continue
		}
		result, err := s.evaluator.EvaluateDraw(t.Numbers, d)
		if err != nil {
			return DrawCheck{}, errors.Wrapf(err, "evaluate ticket=%s", t.ID)
		}
		out.Results = append(out.Results, TicketResult{Ticket: t, Result: result})
		out.TotalPrize = out.TotalPrize.Add(result.PrizeAmount)
		if result.PrizeTier == draw.TierWon {
			out.HasWinningTicket = true
		}
		if result.IsNearMiss {
			out.HasNearMiss = true
		}
	}

	return out, nil
}

// SettleDraw finalizes every active ticket for the draw date and credits
// the prizes. Each account settles in one repository update; accounts are
// spread over a worker pool with one task per account.
func (s *DrawService) SettleDraw(ctx context.Context, drawID string) (Settlement, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DrawService.SettleDraw")
	defer span.End()

	d, err := s.loadDraw(ctx, drawID)
	if err != nil {
		return Settlement{}, err
	}
	if d.Status != draw.StatusDrawn {
		return Settlement{}, errors.Wrapf(draw.ErrInvalidStatus, "draw=%s status=%s", d.ID, d.Status)
	}

	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return Settlement{}, errors.Wrap(err, "list accounts")
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return Settlement{}, errors.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	results := make(chan AccountSettlement, len(accounts))
	var (
		workers  sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)
	for _, acct := range accounts {
		accountID := acct.ID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row, err := s.settleAccount(ctx, accountID, d)
			if err != nil {
				s.logger.WarnContext(ctx, "settle account failed", "draw_id", d.ID, "account_id", accountID, "error", err)
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
				return
			}
			if row.TicketsSettled > 0 {
				results <- row
			}
		}); err != nil {
			workers.Done()
			return Settlement{}, errors.Wrap(err, "submit task to worker pool")
		}
	}
	workers.Wait()
	close(results)

	if firstErr != nil {
		return Settlement{}, errors.Wrapf(firstErr, "settle draw=%s", d.ID)
	}

	out := Settlement{Winnings: decimal.Zero}
	for row := range results {
		out.Accounts = append(out.Accounts, row)
		out.Winnings = out.Winnings.Add(row.Winnings)
	}

	settled, err := s.drawRepo.Update(ctx, d.ID, func(current *draw.Draw) error {
		return current.MarkSettled(s.now().UTC())
	})
	if err != nil {
		return Settlement{}, mapDrawError(err, d.ID)
	}
	out.Draw = settled

	s.logger.InfoContext(ctx, "draw settled",
		"draw_id", d.ID,
		"accounts", len(out.Accounts),
		"winnings", out.Winnings.StringFixed(2),
	)
	return out, nil
}

func (s *DrawService) settleAccount(ctx context.Context, accountID string, d draw.Draw) (AccountSettlement, error) {
	row := AccountSettlement{AccountID: accountID, Winnings: decimal.Zero}

	_, err := s.accountRepo.Update(ctx, accountID, func(a *account.Account) error {
		row = AccountSettlement{AccountID: accountID, Winnings: decimal.Zero}
		now := s.now().UTC()

		for _, t := range a.ActiveTickets() {
			if !t.DrawDate.Equal(d.Date) {
				continue
			}
			result, err := s.evaluator.EvaluateDraw(t.Numbers, d)
			if err != nil {
				return errors.Wrapf(err, "evaluate ticket=%s", t.ID)
			}

			status := ticket.StatusLost
			if result.PrizeTier == draw.TierWon {
				status = ticket.StatusWon
				row.Winners++
			}
			if err := a.SettleTicket(t.ID, status, result.Matches, result.PrizeAmount, now); err != nil {
				return err
			}
			row.TicketsSettled++
			row.Winnings = row.Winnings.Add(result.PrizeAmount)
		}

		if row.TicketsSettled > 0 {
			a.UpdatedAt = now
		}
		return nil
	})
	if err != nil {
		return AccountSettlement{}, err
	}
	return row, nil
}

// CurrentDraw returns the draw the dashboard should show.
func (s *DrawService) CurrentDraw(ctx context.Context) (draw.Draw, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DrawService.CurrentDraw")
	defer span.End()

	draws, err := s.drawRepo.ListFrom(ctx, time.Time{})
	if err != nil {
		return draw.Draw{}, errors.Wrap(err, "list draws")
	}
	current, ok := resolveCurrentDraw(draws)
	if !ok {
		return draw.Draw{}, errors.Wrap(ErrNotFound, "no current draw")
	}
	return current, nil
}

func (s *DrawService) loadDraw(ctx context.Context, drawID string) (draw.Draw, error) {
	drawID = strings.TrimSpace(drawID)
	if drawID == "" {
		return draw.Draw{}, errors.Wrap(ErrInvalidInput, "draw id is required")
	}

	d, ok, err := s.drawRepo.GetByID(ctx, drawID)
	if err != nil {
		return draw.Draw{}, errors.Wrapf(err, "get draw=%s", drawID)
	}
	if !ok {
		return draw.Draw{}, errors.Wrapf(ErrNotFound, "draw=%s", drawID)
	}
	return d, nil
}

// resolveCurrentDraw prefers the earliest open draw, then the latest drawn
// draw still waiting for settlement. draws must be sorted by date.
func resolveCurrentDraw(draws []draw.Draw) (draw.Draw, bool) {
	for _, d := range draws {
		if d.Status == draw.StatusOpen {
			return d, true
		}
	}
	for i := len(draws) - 1; i >= 0; i-- {
		if draws[i].Status == draw.StatusDrawn {
			return draws[i], true
		}
	}
	return draw.Draw{}, false
}

func mapDrawError(err error, drawID string) error {
	if errors.Is(err, draw.ErrNotFound) {
		return errors.Wrapf(ErrNotFound, "draw=%s", drawID)
	}
	return err
}
