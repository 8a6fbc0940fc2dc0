package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/geotrails/travelmap/internal/domain"
)

// writeError is the single place errors become responses.
//
//	*requestError          → its own status (400 or 413)
//	domain.ErrValidation   → 400 with the validation message
//	domain.ErrNotFound     → 404 {"error":"not found"}
//	context deadline       → 504
//	anything else          → 500 with the database message
//
// Handlers that know what was looked up check ErrNotFound themselves and
// answer with a more specific message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		writeJSON(w, reqErr.status, errorResponse{Error: reqErr.msg})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationMessage(err)})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, context.DeadlineExceeded):
		slog.WarnContext(r.Context(), "request deadline exceeded", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{Error: "request timed out"})
	default:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: storageMessage(err)})
	}
}

// validationMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TravelPointService.Create: validation error: name is required" → "name is required"
func validationMessage(err error) string {
	msg := err.Error()
	if _, after, ok := strings.Cut(msg, domain.ErrValidation.Error()+": "); ok {
		return after
	}
	return msg
}

// storageMessage returns the database's own message when the failure came
// from Postgres, otherwise the innermost error in the chain, so clients see
// "relation does not exist" rather than the service call path.
func storageMessage(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Message
	}
	for {
		inner := errors.Unwrap(err)
		if inner == nil {
			return err.Error()
		}
		err = inner
	}
}
