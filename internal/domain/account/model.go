package account

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/lottery-rewards/internal/domain/ticket"
)

// EntryKind classifies play history entries.
type EntryKind string

const (
	EntryTicketPurchase EntryKind = "ticket_purchase"
	EntryTicketModify   EntryKind = "ticket_modify"
	EntryPrizeWon       EntryKind = "prize_won"
	EntrySpinReward     EntryKind = "spin_reward"
	EntryRewardClaim    EntryKind = "reward_claim"
)

// Entry is one line of play history. Amount and Points are signed deltas.
type Entry struct {
	Kind      EntryKind
	Amount    decimal.Decimal
	Points    int64
	Reference string
	At        time.Time
}

type Preferences struct {
	NotifyDrawResults bool
	NotifyPromotions  bool
	NotifyWinnings    bool
	SpendingLimit     decimal.Decimal
}

func DefaultPreferences() Preferences {
	return Preferences{
		NotifyDrawResults: true,
		NotifyPromotions:  true,
		NotifyWinnings:    true,
		SpendingLimit:     decimal.NewFromInt(100),
	}
}

// PreferencesPatch changes only the preference fields that are set.
type PreferencesPatch struct {
	NotifyDrawResults *bool
	NotifyPromotions  *bool
	NotifyWinnings    *bool
	SpendingLimit     *decimal.Decimal
}

func (p PreferencesPatch) Apply(prefs Preferences) Preferences {
	if p.NotifyDrawResults != nil {
		prefs.NotifyDrawResults = *p.NotifyDrawResults
	}
	if p.NotifyPromotions != nil {
		prefs.NotifyPromotions = *p.NotifyPromotions
	}
	if p.NotifyWinnings != nil {
		prefs.NotifyWinnings = *p.NotifyWinnings
	}
	if p.SpendingLimit != nil {
		prefs.SpendingLimit = *p.SpendingLimit
	}
	return prefs
}

// Account is the session aggregate. It owns its tickets and claims.
type Account struct {
	ID          string
	Name        string
	Email       string
	Ledger      Ledger
	Tickets     []ticket.Ticket
	Claims      map[string]time.Time
	History     []Entry
	Badges      []string
	VIPUntil    time.Time
	ExtraSpins  int
	SpinsToday  int
	LastSpinAt  time.Time
	Preferences Preferences
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("account id is required")
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("account name is required")
	}
	if _, err := mail.ParseAddress(a.Email); err != nil {
		return fmt.Errorf("account email is invalid: %w", err)
	}
	if a.Ledger.Balance.IsNegative() {
		return fmt.Errorf("balance must not be negative")
	}
	if a.Ledger.Points < 0 {
		return fmt.Errorf("points must not be negative")
	}
	if a.Preferences.SpendingLimit.IsNegative() {
		return fmt.Errorf("spending limit must not be negative")
	}

	return nil
}

// SettleTicket finalizes one ticket and credits its prize in a single step.
// Nothing changes when the ticket cannot be finalized.
func (a *Account) SettleTicket(ticketID string, status ticket.Status, matches int, prize decimal.Decimal, now time.Time) error {
	t, ok := a.FindTicket(ticketID)
	if !ok {
		return fmt.Errorf("%w: ticket=%s", ErrTicketNotFound, ticketID)
	}
	if prize.IsNegative() {
		return fmt.Errorf("%w: prize=%s", ErrNegativeAmount, prize)
	}

	settled := t.Clone()
	if err := settled.Finalize(status, matches, prize); err != nil {
		return err
	}
	if status == ticket.StatusWon {
		if err := a.Ledger.CreditWin(prize); err != nil {
			return err
		}
		if prize.IsPositive() {
			a.Record(Entry{Kind: EntryPrizeWon, Amount: prize, Reference: ticketID, At: now})
		}
	}

	*t = settled
	return nil
}

func (a *Account) FindTicket(ticketID string) (*ticket.Ticket, bool) {
	for i := range a.Tickets {
		if a.Tickets[i].ID == ticketID {
			return &a.Tickets[i], true
		}
	}
	return nil, false
}

func (a *Account) AddTicket(t ticket.Ticket) {
	a.Tickets = append(a.Tickets, t)
}

func (a *Account) Record(e Entry) {
	a.History = append(a.History, e)
}

func (a Account) HasBadge(badge string) bool {
	for _, b := range a.Badges {
		if b == badge {
			return true
		}
	}
	return false
}

func (a *Account) AwardBadge(badge string) {
	if badge == "" || a.HasBadge(badge) {
		return
	}
	a.Badges = append(a.Badges, badge)
}

func (a Account) IsVIP(now time.Time) bool {
	return now.Before(a.VIPUntil)
}

// ActiveTickets returns tickets still waiting for a draw.
func (a Account) ActiveTickets() []ticket.Ticket {
	out := make([]ticket.Ticket, 0, len(a.Tickets))
	for _, t := range a.Tickets {
		if t.IsActive() {
			out = append(out, t)
		}
	}
	return out
}

// PastTickets returns finalized tickets.
func (a Account) PastTickets() []ticket.Ticket {
	out := make([]ticket.Ticket, 0, len(a.Tickets))
	for _, t := range a.Tickets {
		if !t.IsActive() {
			out = append(out, t)
		}
	}
	return out
}

// Clone returns a deep copy safe to mutate.
func (a Account) Clone() Account {
	copied := a
	copied.Tickets = make([]ticket.Ticket, len(a.Tickets))
	for i, t := range a.Tickets {
		copied.Tickets[i] = t.Clone()
	}
	copied.Claims = make(map[string]time.Time, len(a.Claims))
	for k, v := range a.Claims {
		copied.Claims[k] = v
	}
	copied.History = append([]Entry(nil), a.History...)
	copied.Badges = append([]string(nil), a.Badges...)
	return copied
}
