package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Spin")
	defer span.End()

	accountID, err := callerAccountID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.rewardService.Spin(ctx, accountID)
	if err != nil {
		h.logger.WarnContext(ctx, "spin failed", "account_id", accountID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, spinToDTO(result))
}

func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCatalog")
	defer span.End()

	accountID, err := callerAccountID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.rewardService.ListCatalog(ctx, accountID)
	if err != nil {
		h.logger.WarnContext(ctx, "list catalog failed", "account_id", accountID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, catalogToDTO(view))
}

func (h *Handler) ClaimCatalogItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClaimCatalogItem")
	defer span.End()

	accountID, err := callerAccountID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	itemID := strings.TrimSpace(r.PathValue("itemID"))
	result, err := h.rewardService.RedeemCatalogItem(ctx, accountID, itemID)
	if err != nil {
		h.logger.WarnContext(ctx, "claim catalog item failed", "account_id", accountID, "item_id", itemID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, claimToDTO(result.Item, result.Points))
}
