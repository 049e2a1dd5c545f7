// Package api serves the user type listing and selection endpoints.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-idm-multiuser/pkg/discriminator"
	apperrors "github.com/tendant/simple-idm-multiuser/pkg/errors"
	"github.com/tendant/simple-idm-multiuser/pkg/metrics"
	"github.com/tendant/simple-idm-multiuser/pkg/sessions"
	"github.com/tendant/simple-idm-multiuser/pkg/utils"
)

type Handle struct {
	sessions *sessions.Manager
}

func NewHandle(sessionManager *sessions.Manager) *Handle {
	return &Handle{sessions: sessionManager}
}

// RegisterRoutes registers the user type routes on r
func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Get("/", h.ListUserTypes)
	r.Get("/current", h.GetCurrentUserType)
	r.Put("/current", h.SelectUserType)
	r.Delete("/current", h.ResetUserType)
}

// Handler returns a router serving the user type routes
func Handler(h *Handle) http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// ListUserTypes handles GET /
func (h *Handle) ListUserTypes(w http.ResponseWriter, r *http.Request) {
	d, err := discriminator.FromRequest(r)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}

	table := d.Table()
	response := UserTypeListResponse{UserTypes: []UserTypeResponse{}}
	for _, desc := range table.Descriptors() {
		response.UserTypes = append(response.UserTypes, UserTypeResponse{
			Key:     desc.Key,
			Class:   string(desc.Class),
			Default: desc.Class == table.Default(),
		})
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

// GetCurrentUserType handles GET /current
func (h *Handle) GetCurrentUserType(w http.ResponseWriter, r *http.Request) {
	d, err := discriminator.FromRequest(r)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, currentResponse(d))
}

// SelectUserType handles PUT /current
func (h *Handle) SelectUserType(w http.ResponseWriter, r *http.Request) {
	d, err := discriminator.FromRequest(r)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}

	var req SelectUserTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RenderError(w, r, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid request body"))
		return
	}
	if req.Class == "" {
		utils.RenderError(w, r, apperrors.InvalidInput("class", "is required"))
		return
	}

	if err := d.SetClass(discriminator.Class(req.Class), true); err != nil {
		utils.RenderError(w, r, err)
		return
	}
	metrics.RecordSelection(req.Class, true)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, currentResponse(d))
}

// ResetUserType handles DELETE /current by ending the session, so the next
// request starts from the default user type
func (h *Handle) ResetUserType(w http.ResponseWriter, r *http.Request) {
	sess := sessions.FromContext(r.Context())
	if h.sessions == nil || sess == nil {
		utils.RenderError(w, r, apperrors.New(apperrors.ErrCodeInternal, "no session attached to request"))
		return
	}

	if err := h.sessions.Destroy(w, r, sess); err != nil {
		utils.RenderError(w, r, apperrors.Wrap(err, apperrors.ErrCodeResourceUnavailable, "failed to end session"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func currentResponse(d *discriminator.Discriminator) CurrentUserTypeResponse {
	desc := d.Descriptor()
	return CurrentUserTypeResponse{
		Key:   desc.Key,
		Class: string(desc.Class),
	}
}
