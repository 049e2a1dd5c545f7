package profile

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/tendant/simple-idm-multiuser/pkg/discriminator"
	apperrors "github.com/tendant/simple-idm-multiuser/pkg/errors"
	"github.com/tendant/simple-idm-multiuser/pkg/forms"
	"github.com/tendant/simple-idm-multiuser/pkg/metrics"
	"github.com/tendant/simple-idm-multiuser/pkg/user"
)

type ProfileService struct {
	repo user.Repository
}

func NewProfileService(repo user.Repository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Get loads the user with id and returns its profile form. The user's type
// is selected for this request only; the session keeps its own selection.
func (s *ProfileService) Get(ctx context.Context, d *discriminator.Discriminator, id uuid.UUID) (user.User, forms.View, error) {
	u, err := s.load(ctx, d, id, false)
	if err != nil {
		return nil, forms.View{}, err
	}
	view, err := forms.NewView(d, discriminator.Profile)
	if err != nil {
		return nil, forms.View{}, err
	}
	return u, view, nil
}

// Update binds data into the user with id using its profile form and stores
// it. The user's type is persisted to the session.
func (s *ProfileService) Update(ctx context.Context, d *discriminator.Discriminator, id uuid.UUID, data map[string]any) (user.User, error) {
	u, err := s.load(ctx, d, id, true)
	if err != nil {
		return nil, err
	}

	entity, err := d.CreateUser()
	if err != nil {
		return nil, err
	}
	updated, ok := entity.(user.User)
	if !ok || updated.UserClass() != u.UserClass() {
		return nil, apperrors.Newf(apperrors.ErrCodeUnknownFactory, "factory %q does not build %s users", d.UserFactory(), u.UserClass())
	}
	if err := copier.Copy(updated, u); err != nil {
		return nil, apperrors.InternalWrap(err, "failed to copy user")
	}

	form, err := d.FormType(discriminator.Profile)
	if err != nil {
		return nil, err
	}
	groups, err := d.FormValidationGroups(discriminator.Profile)
	if err != nil {
		return nil, err
	}
	if err := forms.Bind(form, groups, data, updated); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}

	slog.Info("Profile updated", "user_id", id, "class", updated.UserClass())
	return updated, nil
}

func (s *ProfileService) load(ctx context.Context, d *discriminator.Discriminator, id uuid.UUID, persist bool) (user.User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if persist {
		err = d.SelectFor(u)
	} else {
		err = d.SetClass(u.UserClass(), false)
	}
	if err != nil {
		return nil, err
	}
	metrics.RecordSelection(string(u.UserClass()), persist)
	return u, nil
}
