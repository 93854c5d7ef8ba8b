package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"karrirconnect-backend/internal/domain"
)

type apiError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e apiError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = requestIDFrom(r.Context())
	writeJSON(w, status, e)
}

// writeDomainError maps ledger sentinel errors onto HTTP statuses; anything
// unrecognized becomes a 500 with a generic message.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientPoints):
		writeError(w, r, http.StatusPaymentRequired, "insufficient_points", "not enough points for this action")
	case errors.Is(err, domain.ErrListingLimitReached):
		writeError(w, r, http.StatusConflict, "listing_limit_reached", "active job listing limit reached")
	case errors.Is(err, domain.ErrDuplicateInvitation):
		writeError(w, r, http.StatusConflict, "duplicate_invitation", "a pending invitation to this candidate already exists")
	case errors.Is(err, domain.ErrInvalidTransition):
		writeError(w, r, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, domain.ErrPackageInactive):
		writeError(w, r, http.StatusConflict, "package_inactive", "this package is no longer offered")
	case errors.Is(err, domain.ErrPaymentRefMismatch):
		writeError(w, r, http.StatusUnprocessableEntity, "payment_ref_mismatch", "payment reference does not match this transaction")
	case errors.Is(err, domain.ErrPackageNotFound),
		errors.Is(err, domain.ErrCompanyNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrListingNotFound),
		errors.Is(err, domain.ErrInvitationNotFound):
		writeError(w, r, http.StatusNotFound, "not_found", err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func pathID(r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

func queryInt32(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v < 1 {
		return fallback
	}
	return int32(v)
}
