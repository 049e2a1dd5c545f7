package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jinzhu/copier"
	"github.com/tendant/simple-idm-multiuser/pkg/discriminator"
	"github.com/tendant/simple-idm-multiuser/pkg/metrics"
	"github.com/tendant/simple-idm-multiuser/pkg/registration"
	"github.com/tendant/simple-idm-multiuser/pkg/utils"
)

// Handle serves the registration endpoints
type Handle struct {
	service *registration.RegistrationService
}

// NewHandle creates a new registration API handler
func NewHandle(service *registration.RegistrationService) *Handle {
	return &Handle{
		service: service,
	}
}

// RegisterRoutes registers the registration routes on r
func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Get("/{userType}", h.GetForm)
	r.Post("/{userType}", h.Register)
}

// Handler returns a router serving the registration routes
func Handler(h *Handle) http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// GetForm handles GET /{userType}
func (h *Handle) GetForm(w http.ResponseWriter, r *http.Request) {
	d, key, err := selectUserType(r)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}

	view, err := h.service.Form(d)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}

	response := FormResponse{}
	copier.Copy(&response, &view)
	response.UserType = key

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

// Register handles POST /{userType}
func (h *Handle) Register(w http.ResponseWriter, r *http.Request) {
	d, key, err := selectUserType(r)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}

	data, err := utils.DecodeJSONMap(r)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}

	u, err := h.service.Register(r.Context(), d, data)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, RegisterResponse{
		UserType: key,
		Class:    string(u.UserClass()),
		User:     u,
	})
}

func selectUserType(r *http.Request) (*discriminator.Discriminator, string, error) {
	d, err := discriminator.FromRequest(r)
	if err != nil {
		return nil, "", err
	}
	key := chi.URLParam(r, "userType")
	desc, err := discriminator.SelectByKey(d, key)
	if err != nil {
		return nil, "", err
	}
	metrics.RecordSelection(string(desc.Class), true)
	return d, key, nil
}
