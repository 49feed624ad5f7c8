package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"resourceplanner/internal/models"
)

// errorResponse is the wire shape of every failure. Field and Code are only
// present for validation failures, naming the offending field.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// respondError maps domain errors onto the status taxonomy: validation
// failures are 400, missing records 404, blocked deletes 409, anything
// else a generic 500 that leaks no internal detail.
func respondError(w http.ResponseWriter, err error) {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Error: ve.Error(),
			Field: ve.Field,
			Code:  ve.Code,
		})
		return
	}

	var nf *models.NotFoundError
	if errors.As(err, &nf) {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: nf.Error()})
		return
	}

	var ce *models.ConflictError
	if errors.As(err, &ce) {
		respondJSON(w, http.StatusConflict, errorResponse{Error: ce.Error()})
		return
	}

	slog.Error("Unexpected error", "error", err)
	respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

// pathID parses the {id} path segment. A non-numeric id can never name a
// record, so it reports the entity as not found rather than a bad request.
func pathID(r *http.Request, entity string) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &models.NotFoundError{Entity: entity}
	}
	return id, nil
}

// decodeJSON decodes a request body, reporting malformed payloads as
// validation failures on the body itself.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// Field-level unmarshal errors (bad dates, bad money literals)
		// carry their own message worth surfacing.
		return models.NewInvalid("body", err.Error())
	}
	return nil
}
