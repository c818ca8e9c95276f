package helpers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Validator is the self-check hook on request DTOs. Validate returns the
// messages for every failed rule at once, so a caller fixing a request sees
// all of its problems in one round trip; nil or empty means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate reads the JSON request body into dest, rejecting
// unknown fields, then runs dest's Validate hook when it has one. On any
// failure it writes a bad_request envelope and returns false; the handler
// should return immediately.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := decodeStrict(r, dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return false
	}
	if v, ok := dest.(Validator); ok {
		if msgs := v.Validate(); len(msgs) > 0 {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, strings.Join(msgs, "; "))
			return false
		}
	}
	return true
}

func decodeStrict(r *http.Request, dest any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}
