// Package handlers implements the RPC command handlers: one procedure per
// operation, each validating its input, consulting the authorization
// policy, enforcing referential integrity, and mutating the store.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"pressroom/internal/apperr"
)

// errorPayload is the wire shape of every error response.
type errorPayload struct {
	Error struct {
		Kind    apperr.Kind `json:"kind"`
		Field   string      `json:"field,omitempty"`
		Message string      `json:"message"`
	} `json:"error"`
}

// deleteResult is the wire shape of every delete response. Success is
// false when the target was already absent; that is a normal outcome,
// not an error.
type deleteResult struct {
	Success bool `json:"success"`
}

// writeJSON serializes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// statusFor maps an error kind to its HTTP status code.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindInvalidCredentials:
		return http.StatusUnauthorized
	case apperr.KindUnauthorized:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConstraintViolation:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError renders err as a JSON error response. Classified errors map
// to their kind's status; anything else is logged and reported as an
// opaque internal error.
func writeError(w http.ResponseWriter, err error) {
	var payload errorPayload

	if ae := apperr.As(err); ae != nil {
		payload.Error.Kind = ae.Kind
		payload.Error.Field = ae.Field
		payload.Error.Message = ae.Message
		writeJSON(w, statusFor(ae.Kind), payload)
		return
	}

	slog.Error("handler failed", "error", err)
	payload.Error.Kind = apperr.KindInternal
	payload.Error.Message = "internal server error"
	writeJSON(w, http.StatusInternalServerError, payload)
}

// decode reads the request body into in. A malformed body is a
// validation error, not an internal one.
func decode(r *http.Request, in any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(in); err != nil {
		return apperr.Validation("body", "malformed request body")
	}
	return nil
}

// validationError converts an ozzo-validation result into the apperr
// taxonomy, naming the offending field(s) deterministically.
func validationError(err error) error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if errors.As(err, &errs) {
		fields := make([]string, 0, len(errs))
		for field := range errs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		return apperr.Validation(strings.Join(fields, ", "), errs.Error())
	}

	return apperr.Validation("", err.Error())
}
