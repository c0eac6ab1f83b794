package server

import (
	"context"
	"net/http"

	"lazada_callback/exchange"

	"github.com/go-chi/render"
	"github.com/rs/zerolog"
)

// Exchanger runs the code → token → email flow for one callback.
type Exchanger interface {
	Run(ctx context.Context, code string) error
}

// ConsentURL yields the provider authorization page to redirect to.
type ConsentURL interface {
	URL() string
}

type Handler struct {
	consent   ConsentURL
	exchanger Exchanger
	project   string
	lg        zerolog.Logger
}

func NewHandler(consent ConsentURL, exchanger Exchanger, project string, lg zerolog.Logger) *Handler {
	return &Handler{
		consent:   consent,
		exchanger: exchanger,
		project:   project,
		lg:        lg.With().Str("component", "http_handler").Logger(),
	}
}

// Redirect sends the browser to the provider consent page.
// GET /
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.consent.URL(), http.StatusFound)
}

// Callback receives the authorization code from the provider.
// GET|POST /callback-url?code=...
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeDetail(w, r, http.StatusBadRequest, "Missing code")
		return
	}

	// The exchange and email are not abandoned if the client goes away.
	ctx := context.WithoutCancel(r.Context())
	if err := h.exchanger.Run(ctx, code); err != nil {
		status := statusFor(err)
		event := h.lg.Error()
		if status < http.StatusInternalServerError {
			event = h.lg.Warn()
		}
		event.Err(err).Int("status", status).Str("request_id", GetRequestID(r.Context())).Msg("callback failed")
		writeDetail(w, r, status, err.Error())
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, MessageBody{Msg: exchange.SuccessMessage})
}

// Healthz reports liveness.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthBody{Status: "ok", Project: h.project})
}
