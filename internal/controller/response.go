// internal/controller/response.go
package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	appErrors "github.com/unclebandit/ecommerce-services/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Println("⚠️ failed to encode response:", err)
	}
}

// writeError maps service errors onto status codes. Unknown errors are
// logged and hidden behind a generic 500.
func writeError(w http.ResponseWriter, err error) {
	var (
		customerNotFound *appErrors.ErrCustomerNotFound
		productNotFound  *appErrors.ErrProductNotFound
		purchase         *appErrors.ErrProductPurchase
		validation       *appErrors.ErrValidation
	)

	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": validation.Fields})
	case errors.As(err, &customerNotFound), errors.As(err, &productNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.As(err, &purchase):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		log.Println("❌ Request failed:", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return appErrors.NewValidation(map[string]string{"body": "malformed JSON"})
	}
	return nil
}
