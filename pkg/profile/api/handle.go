package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/tendant/simple-idm-multiuser/pkg/discriminator"
	apperrors "github.com/tendant/simple-idm-multiuser/pkg/errors"
	"github.com/tendant/simple-idm-multiuser/pkg/forms"
	"github.com/tendant/simple-idm-multiuser/pkg/profile"
	"github.com/tendant/simple-idm-multiuser/pkg/user"
	"github.com/tendant/simple-idm-multiuser/pkg/utils"
)

type Handle struct {
	profileService *profile.ProfileService
}

func NewHandle(profileService *profile.ProfileService) *Handle {
	return &Handle{
		profileService: profileService,
	}
}

// RegisterRoutes registers the profile routes on r
func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Get("/{id}", h.GetProfile)
	r.Put("/{id}", h.UpdateProfile)
}

// Handler returns a router serving the profile routes
func Handler(h *Handle) http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

// GetProfile returns a user and the profile form of its type
// (GET /{id})
func (h *Handle) GetProfile(w http.ResponseWriter, r *http.Request) {
	d, id, err := parseRequest(r)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}

	u, view, err := h.profileService.Get(r.Context(), d, id)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, newProfileResponse(u, view))
}

// UpdateProfile binds the request body with the profile form of the user's type
// (PUT /{id})
func (h *Handle) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	d, id, err := parseRequest(r)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}

	data, err := utils.DecodeJSONMap(r)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}

	u, err := h.profileService.Update(r.Context(), d, id, data)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}

	view, err := forms.NewView(d, discriminator.Profile)
	if err != nil {
		utils.RenderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, newProfileResponse(u, view))
}

func parseRequest(r *http.Request) (*discriminator.Discriminator, uuid.UUID, error) {
	d, err := discriminator.FromRequest(r)
	if err != nil {
		return nil, uuid.Nil, err
	}
	id := utils.ParseUUID(chi.URLParam(r, "id"))
	if id == uuid.Nil {
		return nil, uuid.Nil, apperrors.InvalidInput("id", "must be a UUID")
	}
	return d, id, nil
}

func newProfileResponse(u user.User, view forms.View) ProfileResponse {
	response := ProfileResponse{
		Class: string(u.UserClass()),
		User:  u,
	}
	copier.Copy(&response.Form, &view)
	return response
}
