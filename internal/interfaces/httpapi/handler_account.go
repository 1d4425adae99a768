package httpapi

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/riskibarqy/lottery-rewards/internal/domain/account"
	"github.com/riskibarqy/lottery-rewards/internal/usecase"
)

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SignIn")
	defer span.End()

	item, err := h.accountService.SignIn(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "sign in failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, accountToDTO(item))
}

func (h *Handler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OpenAccount")
	defer span.End()

	var req openAccountRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.accountService.OpenAccount(ctx, usecase.OpenAccountInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "open account failed", "email", req.Email, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, accountToDTO(item))
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMe")
	defer span.End()

	accountID, err := callerAccountID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.accountService.GetAccount(ctx, accountID)
	if err != nil {
		h.logger.WarnContext(ctx, "get account failed", "account_id", accountID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, accountToDTO(item))
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMe")
	defer span.End()

	accountID, err := callerAccountID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateProfileRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.UpdateProfileInput{
		AccountID: accountID,
		Name:      req.Name,
		Email:     req.Email,
	}
	if req.Preferences != nil {
		patch, err := req.Preferences.toDomain()
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		input.Preferences = &patch
	}

	item, err := h.accountService.UpdateProfile(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update profile failed", "account_id", accountID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, accountToDTO(item))
}

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListHistory")
	defer span.End()

	accountID, err := callerAccountID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.accountService.History(ctx, accountID)
	if err != nil {
		h.logger.WarnContext(ctx, "list history failed", "account_id", accountID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, historyToDTO(items))
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	accountID, err := callerAccountID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.accountService.Dashboard(ctx, accountID)
	if err != nil {
		h.logger.WarnContext(ctx, "get dashboard failed", "account_id", accountID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardToDTO(item))
}

func (p preferencesRequest) toDomain() (account.PreferencesPatch, error) {
	patch := account.PreferencesPatch{
		NotifyDrawResults: p.NotifyDrawResults,
		NotifyPromotions:  p.NotifyPromotions,
		NotifyWinnings:    p.NotifyWinnings,
	}
	if p.SpendingLimit == "" {
		return patch, nil
	}

	limit, err := decimal.NewFromString(p.SpendingLimit)
	if err != nil {
		return account.PreferencesPatch{}, errors.Wrapf(usecase.ErrInvalidInput, "invalid spending_limit: %v", err)
	}
	if limit.IsNegative() {
		return account.PreferencesPatch{}, errors.Wrap(usecase.ErrInvalidInput, "spending_limit must not be negative")
	}
	patch.SpendingLimit = &limit
	return patch, nil
}
