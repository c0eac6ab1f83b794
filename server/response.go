package server

import (
	"errors"
	"net/http"

	"lazada_callback/exchange"

	"github.com/go-chi/render"
)

type MessageBody struct {
	Msg string `json:"msg"`
}

// ErrorBody carries the failure text verbatim; there are no error codes.
type ErrorBody struct {
	Detail string `json:"detail"`
}

type HealthBody struct {
	Status  string `json:"status"`
	Project string `json:"project,omitempty"`
}

func writeDetail(w http.ResponseWriter, r *http.Request, status int, detail string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorBody{Detail: detail})
}

// statusFor maps flow errors to the two-tier taxonomy: exchange failures are
// the caller's problem, notification failures are ours.
func statusFor(err error) int {
	var exErr *exchange.ExchangeError
	if errors.As(err, &exErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
