package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/riskibarqy/lottery-rewards/internal/domain/draw"
	"github.com/riskibarqy/lottery-rewards/internal/usecase"
)

func (h *Handler) GetCurrentDraw(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentDraw")
	defer span.End()

	item, err := h.drawService.CurrentDraw(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get current draw failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, drawToDTO(item))
}

func (h *Handler) CreateDraw(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateDraw")
	defer span.End()

	var req createDrawRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		writeError(ctx, w, errors.Wrapf(usecase.ErrInvalidInput, "invalid date: %v", err))
		return
	}
	var jackpot decimal.Decimal
	if req.Jackpot != "" {
		jackpot, err = decimal.NewFromString(req.Jackpot)
		if err != nil {
			writeError(ctx, w, errors.Wrapf(usecase.ErrInvalidInput, "invalid jackpot: %v", err))
			return
		}
	}

	item, err := h.drawService.CreateDraw(ctx, usecase.CreateDrawInput{
		Date:           date,
		Jackpot:        jackpot,
		WinningNumbers: req.WinningNumbers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create draw failed", "date", req.Date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, drawToDTO(item))
}

func (h *Handler) RunDraw(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunDraw")
	defer span.End()

	var req runDrawRequest
	if r.ContentLength != 0 {
		if err := h.decodeRequest(ctx, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	drawID := strings.TrimSpace(r.PathValue("drawID"))
	var (
		item draw.Draw
		err  error
	)
	if len(req.WinningNumbers) > 0 {
		item, err = h.drawService.PublishResults(ctx, drawID, req.WinningNumbers)
	} else {
		item, err = h.drawService.RunDraw(ctx, drawID)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "run draw failed", "draw_id", drawID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, drawToDTO(item))
}

func (h *Handler) SettleDraw(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SettleDraw")
	defer span.End()

	drawID := strings.TrimSpace(r.PathValue("drawID"))
	result, err := h.drawService.SettleDraw(ctx, drawID)
	if err != nil {
		h.logger.WarnContext(ctx, "settle draw failed", "draw_id", drawID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settlementToDTO(result))
}

func (h *Handler) CheckTickets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckTickets")
	defer span.End()

	accountID, err := callerAccountID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	drawID := strings.TrimSpace(r.PathValue("drawID"))
	result, err := h.drawService.CheckTickets(ctx, accountID, drawID)
	if err != nil {
		h.logger.WarnContext(ctx, "check tickets failed", "account_id", accountID, "draw_id", drawID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, drawCheckToDTO(result))
}
