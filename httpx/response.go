package httpx

import (
	"encoding/json"
	"net/http"
)

// Every workflow response carries a success flag: {"success":true,...} on
// the happy path, {"success":false,"error":"..."} otherwise. Validation
// failures add a "fields" map.

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"success":false,"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

// OK writes a success envelope merged with the given payload fields.
func OK(w http.ResponseWriter, status int, payload map[string]any) {
	out := map[string]any{"success": true}
	for k, v := range payload {
		out[k] = v
	}
	JSON(w, status, out)
}

// Fail writes a failure envelope with a human-readable message.
func Fail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]any{"success": false, "error": msg})
}

// FailFields writes a failure envelope carrying per-field messages.
func FailFields(w http.ResponseWriter, status int, msg string, fields map[string]string) {
	JSON(w, status, map[string]any{"success": false, "error": msg, "fields": fields})
}
