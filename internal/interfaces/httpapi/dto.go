package httpapi

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/riskibarqy/lottery-rewards/internal/domain/account"
	"github.com/riskibarqy/lottery-rewards/internal/domain/draw"
	"github.com/riskibarqy/lottery-rewards/internal/domain/reward"
	"github.com/riskibarqy/lottery-rewards/internal/domain/ticket"
	"github.com/riskibarqy/lottery-rewards/internal/usecase"
)

type openAccountRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
}

// Omitted preference fields keep their current value.
type preferencesRequest struct {
	NotifyDrawResults *bool  `json:"notify_draw_results"`
	NotifyPromotions  *bool  `json:"notify_promotions"`
	NotifyWinnings    *bool  `json:"notify_winnings"`
	SpendingLimit     string `json:"spending_limit" validate:"omitempty,numeric"`
}

type updateProfileRequest struct {
	Name        *string             `json:"name" validate:"omitempty,min=1,max=100"`
	Email       *string             `json:"email" validate:"omitempty,email"`
	Preferences *preferencesRequest `json:"preferences"`
}

// Numbers may be omitted when quick_pick is set; the server then picks them.
type purchaseTicketRequest struct {
	Numbers   []int  `json:"numbers"`
	DrawDate  string `json:"draw_date" validate:"required,datetime=2006-01-02"`
	QuickPick bool   `json:"quick_pick"`
}

type modifyTicketRequest struct {
	Position  *int `json:"position" validate:"required"`
	NewNumber *int `json:"new_number" validate:"required"`
}

type createDrawRequest struct {
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	Jackpot        string `json:"jackpot" validate:"omitempty,numeric"`
	WinningNumbers []int  `json:"winning_numbers"`
}

type runDrawRequest struct {
	WinningNumbers []int `json:"winning_numbers"`
}

type accountDTO struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Balance     string         `json:"balance"`
	Points      int64          `json:"points"`
	TotalSpent  string         `json:"totalSpent"`
	TotalWon    string         `json:"totalWon"`
	Badges      []string       `json:"badges"`
	VIPUntil    string         `json:"vipUntil,omitempty"`
	ExtraSpins  int            `json:"extraSpins"`
	Preferences preferencesDTO `json:"preferences"`
	Tickets     []ticketDTO    `json:"tickets"`
}

type preferencesDTO struct {
	NotifyDrawResults bool   `json:"notifyDrawResults"`
	NotifyPromotions  bool   `json:"notifyPromotions"`
	NotifyWinnings    bool   `json:"notifyWinnings"`
	SpendingLimit     string `json:"spendingLimit"`
}

type ticketDTO struct {
	ID           string `json:"id"`
	Numbers      []int  `json:"numbers"`
	DrawDate     string `json:"drawDate"`
	Cost         string `json:"cost"`
	PointsEarned int64  `json:"pointsEarned"`
	QuickPick    bool   `json:"quickPick"`
	Status       string `json:"status"`
	WinAmount    string `json:"winAmount,omitempty"`
	Matches      int    `json:"matches"`
	CanModify    bool   `json:"canModify"`
	PurchasedAt  string `json:"purchasedAt"`
}

type historyEntryDTO struct {
	Kind      string `json:"kind"`
	Amount    string `json:"amount"`
	Points    int64  `json:"points"`
	Reference string `json:"reference"`
	At        string `json:"at"`
}

type rewardProgressDTO struct {
	Points    int64 `json:"points"`
	Threshold int64 `json:"threshold"`
	Percent   int   `json:"percent"`
}

type dashboardDTO struct {
	AccountID      string            `json:"accountId"`
	Name           string            `json:"name"`
	Balance        string            `json:"balance"`
	Points         int64             `json:"points"`
	ActiveTickets  int               `json:"activeTickets"`
	TotalTickets   int               `json:"totalTickets"`
	TotalSpent     string            `json:"totalSpent"`
	TotalWon       string            `json:"totalWon"`
	NetResult      string            `json:"netResult"`
	VIP            bool              `json:"vip"`
	NextDraw       *drawDTO          `json:"nextDraw,omitempty"`
	RewardProgress rewardProgressDTO `json:"rewardProgress"`
}

type drawDTO struct {
	ID             string `json:"id"`
	Date           string `json:"date"`
	WinningNumbers []int  `json:"winningNumbers,omitempty"`
	Jackpot        string `json:"jackpot"`
	Status         string `json:"status"`
}

type ticketResultDTO struct {
	Ticket      ticketDTO `json:"ticket"`
	Matches     int       `json:"matches"`
	PrizeTier   string    `json:"prizeTier"`
	PrizeAmount string    `json:"prizeAmount"`
	IsNearMiss  bool      `json:"isNearMiss"`
	Rank        int       `json:"rank,omitempty"`
}

type drawCheckDTO struct {
	Draw             drawDTO           `json:"draw"`
	Results          []ticketResultDTO `json:"results"`
	HasWinningTicket bool              `json:"hasWinningTicket"`
	HasNearMiss      bool              `json:"hasNearMiss"`
	TotalPrize       string            `json:"totalPrize"`
}

type accountSettlementDTO struct {
	AccountID      string `json:"accountId"`
	TicketsSettled int    `json:"ticketsSettled"`
	Winners        int    `json:"winners"`
	Winnings       string `json:"winnings"`
}

type settlementDTO struct {
	Draw     drawDTO                `json:"draw"`
	Accounts []accountSettlementDTO `json:"accounts"`
	Winnings string                 `json:"winnings"`
}

type spinDTO struct {
	Kind           string `json:"kind"`
	Amount         int64  `json:"amount"`
	Ref            string `json:"ref,omitempty"`
	PointsAwarded  int64  `json:"pointsAwarded"`
	Points         int64  `json:"points"`
	SpinsRemaining int    `json:"spinsRemaining"`
}

type catalogItemDTO struct {
	ID         string `json:"id"`
	Cost       int64  `json:"cost"`
	MinBalance int64  `json:"minBalance,omitempty"`
	Available  bool   `json:"available"`
	Claimed    bool   `json:"claimed"`
	Affordable bool   `json:"affordable"`
}

type catalogDTO struct {
	Items    []catalogItemDTO  `json:"items"`
	Points   int64             `json:"points"`
	Progress rewardProgressDTO `json:"progress"`
}

type claimDTO struct {
	ItemID string `json:"itemId"`
	Cost   int64  `json:"cost"`
	Points int64  `json:"points"`
}

func money(v decimal.Decimal) string {
	return v.StringFixed(2)
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func accountToDTO(v account.Account) accountDTO {
	tickets := make([]ticketDTO, 0, len(v.Tickets))
	for _, t := range v.Tickets {
		tickets = append(tickets, ticketToDTO(t))
	}
	badges := v.Badges
	if badges == nil {
		badges = []string{}
	}

	return accountDTO{
		ID:          v.ID,
		Name:        v.Name,
		Email:       v.Email,
		Balance:     money(v.Ledger.Balance),
		Points:      v.Ledger.Points,
		TotalSpent:  money(v.Ledger.TotalSpent),
		TotalWon:    money(v.Ledger.TotalWon),
		Badges:      badges,
		VIPUntil:    formatTime(v.VIPUntil),
		ExtraSpins:  v.ExtraSpins,
		Preferences: preferencesToDTO(v.Preferences),
		Tickets:     tickets,
	}
}

func preferencesToDTO(v account.Preferences) preferencesDTO {
	return preferencesDTO{
		NotifyDrawResults: v.NotifyDrawResults,
		NotifyPromotions:  v.NotifyPromotions,
		NotifyWinnings:    v.NotifyWinnings,
		SpendingLimit:     money(v.SpendingLimit),
	}
}

func ticketToDTO(v ticket.Ticket) ticketDTO {
	out := ticketDTO{
		ID:           v.ID,
		Numbers:      append([]int(nil), v.Numbers...),
		DrawDate:     v.DrawDate.Format(time.DateOnly),
		Cost:         money(v.Cost),
		PointsEarned: v.PointsEarned,
		QuickPick:    v.QuickPick,
		Status:       string(v.Status),
		Matches:      v.Matches,
		CanModify:    v.CanModify,
		PurchasedAt:  formatTime(v.PurchasedAt),
	}
	if v.WinAmount.Valid {
		out.WinAmount = money(v.WinAmount.Decimal)
	}
	return out
}

func ticketsToDTO(items []ticket.Ticket) []ticketDTO {
	out := make([]ticketDTO, 0, len(items))
	for _, t := range items {
		out = append(out, ticketToDTO(t))
	}
	return out
}

func historyToDTO(items []account.Entry) []historyEntryDTO {
	out := make([]historyEntryDTO, 0, len(items))
	for _, e := range items {
		out = append(out, historyEntryDTO{
			Kind:      string(e.Kind),
			Amount:    money(e.Amount),
			Points:    e.Points,
			Reference: e.Reference,
			At:        formatTime(e.At),
		})
	}
	return out
}

func progressToDTO(v usecase.RewardProgress) rewardProgressDTO {
	return rewardProgressDTO{Points: v.Points, Threshold: v.Threshold, Percent: v.Percent}
}

func dashboardToDTO(v usecase.Dashboard) dashboardDTO {
	out := dashboardDTO{
		AccountID:      v.AccountID,
		Name:           v.Name,
		Balance:        money(v.Balance),
		Points:         v.Points,
		ActiveTickets:  v.ActiveTickets,
		TotalTickets:   v.TotalTickets,
		TotalSpent:     money(v.TotalSpent),
		TotalWon:       money(v.TotalWon),
		NetResult:      money(v.NetResult),
		VIP:            v.VIP,
		RewardProgress: progressToDTO(v.RewardProgress),
	}
	if v.NextDraw != nil {
		next := drawToDTO(*v.NextDraw)
		out.NextDraw = &next
	}
	return out
}

func drawToDTO(v draw.Draw) drawDTO {
	return drawDTO{
		ID:             v.ID,
		Date:           v.Date.Format(time.DateOnly),
		WinningNumbers: append([]int(nil), v.WinningNumbers...),
		Jackpot:        money(v.Jackpot),
		Status:         string(v.Status),
	}
}

func drawCheckToDTO(v usecase.DrawCheck) drawCheckDTO {
	results := make([]ticketResultDTO, 0, len(v.Results))
	for _, r := range v.Results {
		results = append(results, ticketResultDTO{
			Ticket:      ticketToDTO(r.Ticket),
			Matches:     r.Result.Matches,
			PrizeTier:   string(r.Result.PrizeTier),
			PrizeAmount: money(r.Result.PrizeAmount),
			IsNearMiss:  r.Result.IsNearMiss,
			Rank:        r.Result.Rank,
		})
	}

	return drawCheckDTO{
		Draw:             drawToDTO(v.Draw),
		Results:          results,
		HasWinningTicket: v.HasWinningTicket,
		HasNearMiss:      v.HasNearMiss,
		TotalPrize:       money(v.TotalPrize),
	}
}

func settlementToDTO(v usecase.Settlement) settlementDTO {
	accounts := make([]accountSettlementDTO, 0, len(v.Accounts))
	for _, a := range v.Accounts {
		accounts = append(accounts, accountSettlementDTO{
			AccountID:      a.AccountID,
			TicketsSettled: a.TicketsSettled,
			Winners:        a.Winners,
			Winnings:       money(a.Winnings),
		})
	}

	return settlementDTO{
		Draw:     drawToDTO(v.Draw),
		Accounts: accounts,
		Winnings: money(v.Winnings),
	}
}

func spinToDTO(v usecase.SpinResult) spinDTO {
	return spinDTO{
		Kind:           string(v.Outcome.Kind),
		Amount:         v.Outcome.Amount,
		Ref:            v.Outcome.Ref,
		PointsAwarded:  v.PointsAwarded,
		Points:         v.Points,
		SpinsRemaining: v.SpinsRemaining,
	}
}

func catalogToDTO(v usecase.CatalogView) catalogDTO {
	items := make([]catalogItemDTO, 0, len(v.Items))
	for _, entry := range v.Items {
		items = append(items, catalogItemDTO{
			ID:         entry.Item.ID,
			Cost:       entry.Item.Cost,
			MinBalance: entry.Item.MinBalance,
			Available:  entry.Available,
			Claimed:    entry.Claimed,
			Affordable: entry.Affordable,
		})
	}

	return catalogDTO{
		Items:    items,
		Points:   v.Points,
		Progress: progressToDTO(v.Progress),
	}
}

func claimToDTO(item reward.Item, points int64) claimDTO {
	return claimDTO{ItemID: item.ID, Cost: item.Cost, Points: points}
}
