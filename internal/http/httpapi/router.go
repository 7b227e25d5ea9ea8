package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"logomotion/internal/http/handlers"
	"logomotion/internal/middleware"
)

func NewRouter(app *handlers.App, logger zerolog.Logger, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.CORS(allowedOrigins),
		middleware.Logger(logger),
	)

	// Generation endpoints spend remote quota; cap submissions per client.
	generate := middleware.RateLimit(30, time.Minute)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)

	r.Route("/v1/logos", func(r chi.Router) {
		r.With(generate).Post("/", app.LogosGenerate)
	})
	r.Route("/v1/animations", func(r chi.Router) {
		r.With(generate).Post("/", app.AnimationsStart)
		r.Get("/{job_id}", app.AnimationStatus)
	})
	r.Route("/v1/credentials", func(r chi.Router) {
		r.Get("/", app.CredentialsStatus)
		r.Post("/select", app.CredentialsSelect)
	})
	r.Post("/v1/uploads", app.UploadsCreate)
	r.Get("/v1/artifacts/*", app.ArtifactDownload)

	return r
}
