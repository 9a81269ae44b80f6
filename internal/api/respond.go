// Package api assembles the HTTP surface: the router, shared middleware, and
// the response helpers every handler uses.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/Sanushoffl/thelivostore/internal/apperr"
)

// RespondJSON writes a success payload. All responses, including failures,
// use HTTP 200; clients branch on the success flag in the body.
func RespondJSON(w http.ResponseWriter, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(response)
}

// ErrorResponse is the uniform failure envelope. Code carries the stable
// error kind so clients do not have to parse the message.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondError maps any error onto the failure envelope using its kind.
func RespondError(w http.ResponseWriter, err error) {
	RespondJSON(w, ErrorResponse{
		Success: false,
		Code:    apperr.KindOf(err).Code(),
		Message: apperr.MessageOf(err),
	})
}
