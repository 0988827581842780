package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/GleritasToken/gleritas-token-manager/utils"
)

// ValidateJSON decodes the request body into dst and runs the struct
// validator. On failure a 400 is already written and a non-nil error is
// returned so handlers can simply bail out.
func ValidateJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		utils.WriteMessage(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return http.ErrNotSupported
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid input")
		return err
	}
	if err := utils.ValidateStruct(dst); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, err.Error())
		return err
	}
	return nil
}
