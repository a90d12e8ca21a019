package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/BuzzLyutic/tasklists/pkg/respond"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a bounded JSON body into v. On failure it writes the
// response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return false
	}
	return true
}
