package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/biztime/internal/errs"
	"github.com/MrJamesThe3rd/biztime/internal/http/company"
	"github.com/MrJamesThe3rd/biztime/internal/http/importcsv"
	"github.com/MrJamesThe3rd/biztime/internal/http/invoice"
	"github.com/MrJamesThe3rd/biztime/internal/http/render"
	"github.com/MrJamesThe3rd/biztime/internal/http/requestid"
)

func New(
	companiesV1 *company.Handler,
	invoicesV1 *invoice.Handler,
	importV1 *importcsv.Handler,
	allowedOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(requestid.Middleware)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestid.Header},
		ExposedHeaders: []string{requestid.Header},
		MaxAge:         300,
	}))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, r, errs.NotFound("Not Found"))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusMethodNotAllowed, map[string]any{
			"error": map[string]any{
				"message": http.StatusText(http.StatusMethodNotAllowed),
				"status":  http.StatusMethodNotAllowed,
			},
		})
	})

	router.Route("/companies", func(r chi.Router) {
		r.Use(render.RequireJSON)
		companiesV1.Routes(r)
	})

	router.Route("/invoices", func(r chi.Router) {
		r.Route("/import", importV1.Routes)

		r.Group(func(r chi.Router) {
			r.Use(render.RequireJSON)
			invoicesV1.Routes(r)
		})
	})

	return router
}
