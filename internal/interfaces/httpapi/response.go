package httpapi

import (
	"context"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/lottery-rewards/internal/domain/account"
	"github.com/riskibarqy/lottery-rewards/internal/domain/draw"
	"github.com/riskibarqy/lottery-rewards/internal/domain/lotto"
	"github.com/riskibarqy/lottery-rewards/internal/domain/reward"
	"github.com/riskibarqy/lottery-rewards/internal/domain/ticket"
	"github.com/riskibarqy/lottery-rewards/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "lottery-rewards"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

// writeJSON encodes into a pooled buffer first so an encoding failure can
// still produce a clean 500.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		http.Error(w, `{"apiVersion":"2.0","error":{"code":500,"message":"internal server error","status":"INTERNAL"}}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	message := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError {
		message = "internal server error"
	}

	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: message,
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

// mapError checks the most specific kinds first. Invalid numbers are also
// tagged ErrInvalidInput, so they are matched before the generic case.
func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, lotto.ErrInvalidNumbers), errors.Is(err, ticket.ErrInvalidPosition):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidNumbers", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, account.ErrNegativeAmount):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, reward.ErrUnknownItem):
		return mappedError{HTTPStatus: http.StatusNotFound, Reason: "unknownItem", Status: "NOT_FOUND"}
	case errors.Is(err, usecase.ErrNotFound), errors.Is(err, account.ErrTicketNotFound):
		return mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED"}
	case errors.Is(err, account.ErrInsufficientBalance):
		return mappedError{HTTPStatus: http.StatusUnprocessableEntity, Reason: "insufficientBalance", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, account.ErrInsufficientPoints):
		return mappedError{HTTPStatus: http.StatusUnprocessableEntity, Reason: "insufficientPoints", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, reward.ErrUnavailable):
		return mappedError{HTTPStatus: http.StatusUnprocessableEntity, Reason: "unavailable", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, reward.ErrSpinUnavailable):
		return mappedError{HTTPStatus: http.StatusTooManyRequests, Reason: "spinUnavailable", Status: "RESOURCE_EXHAUSTED"}
	case errors.Is(err, ticket.ErrDuplicateNumber):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "duplicateNumber", Status: "ALREADY_EXISTS"}
	case errors.Is(err, reward.ErrAlreadyClaimed):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "alreadyClaimed", Status: "ALREADY_EXISTS"}
	case errors.Is(err, ticket.ErrNotModifiable):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "ticketNotModifiable", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, draw.ErrNotOpen):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "drawClosed", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, draw.ErrDuplicateDate):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "drawExists", Status: "ALREADY_EXISTS"}
	case errors.Is(err, ticket.ErrInvalidStateTransition), errors.Is(err, draw.ErrInvalidStatus):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "invalidStateTransition", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}
	}
}
