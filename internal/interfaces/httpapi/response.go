package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/esport-datanal/internal/platform/logging"
	"github.com/riskibarqy/esport-datanal/internal/provider"
	"github.com/riskibarqy/esport-datanal/internal/usecase"
)

const (
	apiVersion  = "2.0"
	errorDomain = "esport-datanal"
)

// envelope follows the Google JSON style guide: exactly one of Data or
// Error is set.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// errorClass is how one family of usecase errors is reported to callers.
type errorClass struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var internalClass = errorClass{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

// errorRules is matched in order with errors.Is; the first hit wins.
var errorRules = []struct {
	target error
	class  errorClass
}{
	{usecase.ErrInvalidInput, errorClass{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{provider.ErrUnknownProvider, errorClass{http.StatusBadRequest, "unknownProvider", "INVALID_ARGUMENT"}},
	{usecase.ErrNoTournaments, errorClass{http.StatusNotFound, "noTournaments", "NOT_FOUND"}},
	{usecase.ErrNothingToAnalyze, errorClass{http.StatusNotFound, "nothingToAnalyze", "NOT_FOUND"}},
	{usecase.ErrNotFound, errorClass{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{usecase.ErrUnauthorized, errorClass{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{usecase.ErrAuthentication, errorClass{http.StatusBadGateway, "providerAuthentication", "UNAVAILABLE"}},
	{usecase.ErrTimeoutExceeded, errorClass{http.StatusServiceUnavailable, "retryable", "DEADLINE_EXCEEDED"}},
	{usecase.ErrDependencyUnavailable, errorClass{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
}

func mapError(err error) errorClass {
	for _, rule := range errorRules {
		if errors.Is(err, rule.target) {
			return rule.class
		}
	}
	return internalClass
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{APIVersion: apiVersion, Data: data})
}

func writeFailure(w http.ResponseWriter, class errorClass, message string) {
	writeJSON(w, class.HTTPStatus, envelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    class.HTTPStatus,
			Message: message,
			Status:  class.Status,
			Errors:  []errorItem{{Domain: errorDomain, Reason: class.Reason, Message: message}},
		},
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	reportError(ctx, logging.Default(), w, err)
}

// reportError echoes classified errors back to the caller. Anything that
// maps to internalClass is logged and replaced by a generic message.
func reportError(ctx context.Context, logger *logging.Logger, w http.ResponseWriter, err error) {
	class := mapError(err)
	recordSpanError(ctx, class.HTTPStatus, err)
	if class == internalClass {
		logger.ErrorContext(ctx, "request failed", "error", err)
		writeInternalError(w)
		return
	}
	writeFailure(w, class, err.Error())
}

// writeInternalError hides the cause; used after a recovered panic.
func writeInternalError(w http.ResponseWriter) {
	writeFailure(w, internalClass, "internal server error")
}
