package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/MikeSquared-Agency/Pareto/internal/engine"
	"github.com/MikeSquared-Agency/Pareto/internal/pareto"
	"github.com/MikeSquared-Agency/Pareto/internal/tsv"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var (
		verr validator.ValidationErrors
		mbe  *http.MaxBytesError
	)
	switch {
	case errors.As(err, &mbe):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &verr),
		errors.Is(err, engine.ErrInvalidSpec),
		errors.Is(err, tsv.ErrMalformedRow),
		errors.Is(err, tsv.ErrNoHeader),
		errors.Is(err, pareto.ErrDimensionMismatch),
		errors.Is(err, pareto.ErrDuplicateName),
		errors.Is(err, pareto.ErrEmptyName),
		errors.Is(err, pareto.ErrNonFinite),
		errors.Is(err, pareto.ErrNoDimensions):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrDatasetNotFound),
		errors.Is(err, engine.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrTooManyItems):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, pareto.ErrReferenceIndex),
		errors.Is(err, pareto.ErrZeroCeiling),
		errors.Is(err, pareto.ErrNegativeScore),
		errors.Is(err, engine.ErrRunNotCompleted):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

// writeDecodeError reports a request body that could not be decoded. Bodies
// cut off by BodyLimitMiddleware get 413.
func writeDecodeError(w http.ResponseWriter, err error) {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}
