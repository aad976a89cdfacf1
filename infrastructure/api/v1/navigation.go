// Package v1 serves the read-only v1 preview API.
package v1

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/timsexperiments/sitenav"
	"github.com/timsexperiments/sitenav/application/service"
	"github.com/timsexperiments/sitenav/domain/navigation"
	"github.com/timsexperiments/sitenav/infrastructure/api/middleware"
	"github.com/timsexperiments/sitenav/infrastructure/api/v1/dto"
)

// ValidationObserver is notified of every validation the API runs.
type ValidationObserver interface {
	ObserveValidation(report service.Report)
}

// NavigationRouter handles the site and sidebar endpoints.
type NavigationRouter struct {
	client   *sitenav.Client
	observer ValidationObserver
	logger   *slog.Logger
}

// NewNavigationRouter creates a NavigationRouter. observer may be nil.
func NewNavigationRouter(client *sitenav.Client, observer ValidationObserver) *NavigationRouter {
	return &NavigationRouter{
		client:   client,
		observer: observer,
		logger:   client.Logger(),
	}
}

// Routes returns the chi router for navigation endpoints.
func (r *NavigationRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/site", r.Site)
	router.Get("/sidebar", r.Sidebar)
	router.Get("/sidebar/outline", r.Outline)
	router.Get("/validate", r.Validate)
	router.Get("/slugs/*", r.Slug)

	return router
}

// Site handles GET /api/v1/site.
func (r *NavigationRouter) Site(w http.ResponseWriter, _ *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, NewSiteResponse(r.client.Site(), r.client.Source()))
}

// Sidebar handles GET /api/v1/sidebar.
func (r *NavigationRouter) Sidebar(w http.ResponseWriter, _ *http.Request) {
	s := r.client.Site()
	middleware.WriteJSON(w, http.StatusOK, dto.SidebarResponse{
		Sidebar: NewNodeResponses(s.Sidebar().Roots(), s.Base()),
	})
}

// Outline handles GET /api/v1/sidebar/outline.
func (r *NavigationRouter) Outline(w http.ResponseWriter, _ *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, NewOutlineResponse(r.client.Outline()))
}

// Validate handles GET /api/v1/validate. It answers 200 for a valid site and
// 422 otherwise; both carry the full report.
func (r *NavigationRouter) Validate(w http.ResponseWriter, req *http.Request) {
	report, err := r.client.Validate(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	if r.observer != nil {
		r.observer.ObserveValidation(report)
	}

	status := http.StatusOK
	if !report.Valid() {
		status = http.StatusUnprocessableEntity
	}
	middleware.WriteJSON(w, status, NewValidationResponse(report))
}

// Slug handles GET /api/v1/slugs/{slug}. The slug may contain slashes.
func (r *NavigationRouter) Slug(w http.ResponseWriter, req *http.Request) {
	slug := chi.URLParam(req, "*")
	if err := navigation.CheckSlug(slug); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	res, err := r.client.Navigation.Resolve(slug)
	var exists *bool
	switch {
	case err == nil:
		if r.client.ContentChecked() {
			found := true
			exists = &found
		}
	case errors.Is(err, navigation.ErrMissingContent):
		found := false
		exists = &found
	default:
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, NewSlugResponse(res, exists))
}
