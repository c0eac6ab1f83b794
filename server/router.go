package server

import (
	"errors"
	"net/http"

	"lazada_callback/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Deps struct {
	Handler        *Handler
	Logger         zerolog.Logger
	APIPrefix      string
	AllowedOrigins []string
}

func NewRouter(deps Deps) (http.Handler, error) {
	if deps.Handler == nil {
		return nil, errors.New("nil handler")
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(deps.Logger))
	r.Use(Metrics)
	r.Use(middleware.Recoverer)
	r.Use(CORS(deps.AllowedOrigins))

	r.Get("/", deps.Handler.Redirect)

	// Providers call back with GET; POST is accepted for compatibility.
	r.Get("/callback-url", deps.Handler.Callback)
	r.Post("/callback-url", deps.Handler.Callback)

	r.Get(deps.APIPrefix+"/healthz", deps.Handler.Healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r, nil
}
