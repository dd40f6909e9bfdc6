package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "secretario/pkg/domain-errors"
)

// envelope is the JSON shape every endpoint returns. Clients branch on
// success instead of inspecting status codes.
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// WriteJSON writes a success envelope with the given status.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

// WriteError translates a domain error into the failure envelope. Internal
// error messages are replaced with a generic description so store details
// never reach clients.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(dErrors.ToHTTPStatus(code))
	_ = json.NewEncoder(w).Encode(envelope{
		Success: false,
		Error:   &errorBody{Code: string(code), Message: dErrors.MessageOf(err)},
	})
}
