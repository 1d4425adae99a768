package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/lottery-rewards/internal/usecase"
)

func (h *Handler) QuickPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.QuickPick")
	defer span.End()

	numbers := h.ticketService.GenerateQuickPick(ctx)
	writeSuccess(ctx, w, http.StatusOK, map[string][]int{"numbers": numbers})
}

func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTickets")
	defer span.End()

	accountID, err := callerAccountID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	filter := usecase.TicketFilter(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))))
	switch filter {
	case usecase.TicketFilterAll, usecase.TicketFilterActive, usecase.TicketFilterPast:
	default:
		writeError(ctx, w, errors.Wrapf(usecase.ErrInvalidInput, "unknown status filter %q", filter))
		return
	}

	items, err := h.ticketService.ListTickets(ctx, accountID, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list tickets failed", "account_id", accountID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ticketsToDTO(items))
}

func (h *Handler) PurchaseTicket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PurchaseTicket")
	defer span.End()

	accountID, err := callerAccountID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req purchaseTicketRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	drawDate, err := time.Parse(time.DateOnly, req.DrawDate)
	if err != nil {
		writeError(ctx, w, errors.Wrapf(usecase.ErrInvalidInput, "invalid draw_date: %v", err))
		return
	}
	numbers := req.Numbers
	if req.QuickPick && len(numbers) == 0 {
		numbers = h.ticketService.GenerateQuickPick(ctx)
	}

	item, err := h.ticketService.PurchaseTicket(ctx, usecase.PurchaseTicketInput{
		AccountID: accountID,
		Numbers:   numbers,
		DrawDate:  drawDate,
		QuickPick: req.QuickPick,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "purchase ticket failed", "account_id", accountID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, ticketToDTO(item))
}

func (h *Handler) ModifyTicketNumber(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ModifyTicketNumber")
	defer span.End()

	accountID, err := callerAccountID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req modifyTicketRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	ticketID := strings.TrimSpace(r.PathValue("ticketID"))
	item, err := h.ticketService.ModifyTicketNumber(ctx, usecase.ModifyTicketInput{
		AccountID: accountID,
		TicketID:  ticketID,
		Position:  *req.Position,
		NewNumber: *req.NewNumber,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "modify ticket failed", "account_id", accountID, "ticket_id", ticketID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ticketToDTO(item))
}
