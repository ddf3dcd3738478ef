package transport

import (
	"errors"
	"io"
	"net/http"

	"spicery-be/internal/logger"
	"spicery-be/internal/order"
	"spicery-be/internal/product"
	"spicery-be/internal/supplier"
	"spicery-be/internal/user"
	"spicery-be/internal/validate"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const maxBodyBytes = 8 << 20

var errBodyTooLarge = errors.New("request body too large")

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type successBody struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Warn("failed to write response", zap.Error(err))
	}
}

// writeError maps domain errors to a status. Unknown errors are logged and
// reported as a generic 500 so store details never reach the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: verr.Error(), Fields: verr.Fields})
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, supplier.ErrSupplierNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, order.ErrInvalidTransition):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, order.ErrStatusConflict),
		errors.Is(err, order.ErrOrderExists),
		errors.Is(err, user.ErrEmailExists):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, user.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: err.Error()})
	case errors.Is(err, user.ErrOwnerExists):
		writeJSON(w, http.StatusForbidden, errorBody{Error: err.Error()})
	case errors.Is(err, errBodyTooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: err.Error()})
	default:
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

// decode checks the body against schemaID before unmarshalling it into dst.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, schemaID string, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return validate.NewError("body", "could not read request body")
	}

	if err := h.Validator.Validate(schemaID, body); err != nil {
		return err
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return validate.NewError("body", "malformed JSON: "+err.Error())
	}
	return nil
}
