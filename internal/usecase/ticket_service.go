package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/riskibarqy/lottery-rewards/internal/domain/account"
	"github.com/riskibarqy/lottery-rewards/internal/domain/draw"
	"github.com/riskibarqy/lottery-rewards/internal/domain/lotto"
	"github.com/riskibarqy/lottery-rewards/internal/domain/ticket"
	idgen "github.com/riskibarqy/lottery-rewards/internal/platform/id"
	"github.com/riskibarqy/lottery-rewards/internal/platform/logging"
	"github.com/riskibarqy/lottery-rewards/internal/platform/random"
)

type PurchaseTicketInput struct {
	AccountID string
	Numbers   []int
	DrawDate  time.Time
	QuickPick bool
}

type ModifyTicketInput struct {
	AccountID string
	TicketID  string
	Position  int
	NewNumber int
}

type SetTicketOutcomeInput struct {
	AccountID string
	TicketID  string
	Status    ticket.Status
	Matches   int
	WinAmount decimal.Decimal
}

// TicketFilter selects tickets by lifecycle. The zero value selects all.
type TicketFilter string

const (
	TicketFilterAll    TicketFilter = ""
	TicketFilterActive TicketFilter = "active"
	TicketFilterPast   TicketFilter = "past"
)

// TicketService is the ticket store. Every mutation runs inside a single
// account update so ledger and tickets change together or not at all.
type TicketService struct {
	accountRepo account.Repository
	drawRepo    draw.Repository
	numbers     lotto.Rules
	rules       ticket.Rules
	source      random.Source
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewTicketService(
	accountRepo account.Repository,
	drawRepo draw.Repository,
	numbers lotto.Rules,
	rules ticket.Rules,
	source random.Source,
	idGen idgen.Generator,
	logger *logging.Logger,
) *TicketService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TicketService{
		accountRepo: accountRepo,
		drawRepo:    drawRepo,
		numbers:     numbers,
		rules:       rules,
		source:      source,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *TicketService) PurchaseTicket(ctx context.Context, input PurchaseTicketInput) (ticket.Ticket, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TicketService.PurchaseTicket")
	defer span.End()

	accountID := strings.TrimSpace(input.AccountID)
	if accountID == "" {
		return ticket.Ticket{}, errors.Wrap(ErrInvalidInput, "account id is required")
	}
	if input.DrawDate.IsZero() {
		return ticket.Ticket{}, errors.Wrap(ErrInvalidInput, "draw date is required")
	}

	numbers, err := s.numbers.Normalize(input.Numbers)
	if err != nil {
		return ticket.Ticket{}, invalidInput(err)
	}
	if err := s.requireOpenDraw(ctx, input.DrawDate); err != nil {
		return ticket.Ticket{}, err
	}

	ticketID, err := s.idGen.NewID()
	if err != nil {
		return ticket.Ticket{}, errors.Wrap(err, "generate ticket id")
	}

	now := s.now().UTC()
	created := ticket.New(ticketID, numbers, input.DrawDate, s.rules, input.QuickPick, now)

	_, err = s.accountRepo.Update(ctx, accountID, func(a *account.Account) error {
		if err := a.Ledger.Purchase(s.rules.Cost, s.rules.PointsEarned); err != nil {
			return err
		}
		a.AddTicket(created)
		a.Record(account.Entry{
			Kind:      account.EntryTicketPurchase,
			Amount:    s.rules.Cost.Neg(),
			Points:    s.rules.PointsEarned,
			Reference: ticketID,
			At:        now,
		})
		a.UpdatedAt = now
		return nil
	})
	if err != nil {
		return ticket.Ticket{}, mapAccountError(err, accountID)
	}

	s.logger.InfoContext(ctx, "ticket purchased",
		"account_id", accountID,
		"ticket_id", ticketID,
		"draw_date", created.DrawDate.Format(time.DateOnly),
		"quick_pick", input.QuickPick,
	)
	return created, nil
}

// GenerateQuickPick has no side effects on any account.
func (s *TicketService) GenerateQuickPick(ctx context.Context) lotto.Numbers {
	_, span := startUsecaseSpan(ctx, "usecase.TicketService.GenerateQuickPick")
	defer span.End()

	return s.numbers.QuickPick(s.source)
}

// ModifyTicketNumber replaces one number for ModifyCost points. A ticket can
// be modified once.
func (s *TicketService) ModifyTicketNumber(ctx context.Context, input ModifyTicketInput) (ticket.Ticket, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TicketService.ModifyTicketNumber")
	defer span.End()

	accountID := strings.TrimSpace(input.AccountID)
	ticketID := strings.TrimSpace(input.TicketID)
	if accountID == "" || ticketID == "" {
		return ticket.Ticket{}, errors.Wrap(ErrInvalidInput, "account id and ticket id are required")
	}

	var modified ticket.Ticket
	_, err := s.accountRepo.Update(ctx, accountID, func(a *account.Account) error {
		t, ok := a.FindTicket(ticketID)
		if !ok {
			return errors.Wrapf(ErrNotFound, "ticket=%s", ticketID)
		}
		if err := t.CheckReplace(input.Position, input.NewNumber, s.numbers); err != nil {
			if errors.Is(err, ticket.ErrInvalidPosition) || errors.Is(err, lotto.ErrInvalidNumbers) {
				return invalidInput(err)
			}
			return err
		}
		if err := s.requireOpenDraw(ctx, t.DrawDate); err != nil {
			return err
		}
		if err := a.Ledger.Redeem(s.rules.ModifyCost); err != nil {
			return err
		}

		now := s.now().UTC()
		if err := t.ReplaceNumber(input.Position, input.NewNumber, s.numbers, now); err != nil {
			return err
		}
		a.Record(account.Entry{
			Kind:      account.EntryTicketModify,
			Amount:    decimal.Zero,
			Points:    -s.rules.ModifyCost,
			Reference: ticketID,
			At:        now,
		})
		a.UpdatedAt = now
		modified = t.Clone()
		return nil
	})
	if err != nil {
		return ticket.Ticket{}, mapAccountError(err, accountID)
	}

	s.logger.InfoContext(ctx, "ticket modified",
		"account_id", accountID,
		"ticket_id", ticketID,
		"position", input.Position,
	)
	return modified, nil
}

// requireOpenDraw fails with draw.ErrNotOpen unless a draw is scheduled for
// the ticket's day and has not published its winning numbers yet.
func (s *TicketService) requireOpenDraw(ctx context.Context, drawDate time.Time) error {
	day := ticket.DrawDay(drawDate)
	draws, err := s.drawRepo.ListFrom(ctx, day)
	if err != nil {
		return errors.Wrap(err, "list draws")
	}
	for _, d := range draws {
		if !d.Date.Equal(day) {
			break
		}
		if d.AcceptsEntries() {
			return nil
		}
		return errors.Wrapf(draw.ErrNotOpen, "draw=%s status=%s", d.ID, d.Status)
	}
	return errors.Wrapf(draw.ErrNotOpen, "no draw scheduled for %s", day.Format(time.DateOnly))
}

// SetTicketOutcome finalizes a ticket without touching the ledger. Prize
// credits belong to draw settlement.
func (s *TicketService) SetTicketOutcome(ctx context.Context, input SetTicketOutcomeInput) (ticket.Ticket, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TicketService.SetTicketOutcome")
	defer span.End()

	accountID := strings.TrimSpace(input.AccountID)
	ticketID := strings.TrimSpace(input.TicketID)
	if accountID == "" || ticketID == "" {
		return ticket.Ticket{}, errors.Wrap(ErrInvalidInput, "account id and ticket id are required")
	}

	var finalized ticket.Ticket
	_, err := s.accountRepo.Update(ctx, accountID, func(a *account.Account) error {
		t, ok := a.FindTicket(ticketID)
		if !ok {
			return errors.Wrapf(ErrNotFound, "ticket=%s", ticketID)
		}
		if err := t.Finalize(input.Status, input.Matches, input.WinAmount); err != nil {
			return err
		}
		a.UpdatedAt = s.now().UTC()
		finalized = t.Clone()
		return nil
	})
	if err != nil {
		return ticket.Ticket{}, mapAccountError(err, accountID)
	}

	s.logger.InfoContext(ctx, "ticket finalized",
		"account_id", accountID,
		"ticket_id", ticketID,
		"status", string(input.Status),
	)
	return finalized, nil
}

func (s *TicketService) ListTickets(ctx context.Context, accountID string, filter TicketFilter) ([]ticket.Ticket, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TicketService.ListTickets")
	defer span.End()

	acct, err := loadAccount(ctx, s.accountRepo, accountID)
	if err != nil {
		return nil, err
	}

	switch filter {
	case TicketFilterAll:
		return acct.Tickets, nil
	case TicketFilterActive:
		return acct.ActiveTickets(), nil
	case TicketFilterPast:
		return acct.PastTickets(), nil
	default:
		return nil, errors.Wrapf(ErrInvalidInput, "unknown ticket filter %q", filter)
	}
}
