package httpapi

import (
	"context"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/lottery-rewards/internal/platform/logging"
	"github.com/riskibarqy/lottery-rewards/internal/usecase"
)

type Handler struct {
	accountService *usecase.AccountService
	ticketService  *usecase.TicketService
	drawService    *usecase.DrawService
	rewardService  *usecase.RewardService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	accountService *usecase.AccountService,
	ticketService *usecase.TicketService,
	drawService *usecase.DrawService,
	rewardService *usecase.RewardService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		accountService: accountService,
		ticketService:  ticketService,
		drawService:    drawService,
		rewardService:  rewardService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return errors.Wrapf(usecase.ErrInvalidInput, "validation failed: %v", err)
	}

	return nil
}

// decodeRequest decodes a JSON body strictly. An empty body leaves dst as is.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrapf(usecase.ErrInvalidInput, "invalid JSON payload: %v", err)
	}
	return h.validateRequest(ctx, dst)
}

func callerAccountID(ctx context.Context) (string, error) {
	accountID, ok := accountIDFromContext(ctx)
	if !ok {
		return "", errors.Wrap(usecase.ErrUnauthorized, "account is missing from request context")
	}
	return accountID, nil
}
