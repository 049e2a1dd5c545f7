package registration

import (
	"context"
	"log/slog"

	"github.com/tendant/simple-idm-multiuser/pkg/discriminator"
	apperrors "github.com/tendant/simple-idm-multiuser/pkg/errors"
	"github.com/tendant/simple-idm-multiuser/pkg/forms"
	"github.com/tendant/simple-idm-multiuser/pkg/metrics"
	"github.com/tendant/simple-idm-multiuser/pkg/user"
)

type RegistrationService struct {
	repo user.Repository
}

func NewRegistrationService(repo user.Repository) *RegistrationService {
	return &RegistrationService{repo: repo}
}

// Form returns the registration form of the active user type
func (s *RegistrationService) Form(d *discriminator.Discriminator) (forms.View, error) {
	return forms.NewView(d, discriminator.Registration)
}

// Register builds a user of the active type from data and stores it
func (s *RegistrationService) Register(ctx context.Context, d *discriminator.Discriminator, data map[string]any) (user.User, error) {
	entity, err := d.CreateUser()
	if err != nil {
		return nil, err
	}
	u, ok := entity.(user.User)
	if !ok {
		return nil, apperrors.Newf(apperrors.ErrCodeUnknownFactory, "factory %q does not build storable users", d.UserFactory())
	}

	form, err := d.FormType(discriminator.Registration)
	if err != nil {
		return nil, err
	}
	groups, err := d.FormValidationGroups(discriminator.Registration)
	if err != nil {
		return nil, err
	}
	if err := forms.Bind(form, groups, data, u); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	metrics.RecordUserCreated(string(u.UserClass()))
	slog.Info("User registered", "user_id", u.Base().ID, "class", u.UserClass())
	return u, nil
}
