package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-idm-multiuser/pkg/discriminator"
	apperrors "github.com/tendant/simple-idm-multiuser/pkg/errors"
	"github.com/tendant/simple-idm-multiuser/pkg/user"
)

func registrationForm(t *testing.T) discriminator.FormType {
	t.Helper()
	form, ok := user.DefaultCatalog().NewFormType(user.CustomerRegistrationFormName)
	require.True(t, ok)
	return form
}

func TestBind(t *testing.T) {
	c := &user.Customer{}
	err := Bind(registrationForm(t), []string{"Registration", "Default"}, map[string]any{
		"email":      "ada@example.com",
		"username":   "ada",
		"full_name":  "Ada Lovelace",
		"newsletter": true,
	}, c)
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", c.Email)
	assert.Equal(t, "ada", c.Username)
	assert.Equal(t, "Ada Lovelace", c.FullName)
	assert.True(t, c.Newsletter)
}

func TestBindRequiredFollowsGroups(t *testing.T) {
	tests := []struct {
		name    string
		groups  []string
		data    map[string]any
		invalid []string
	}{
		{
			name:    "registration and default",
			groups:  []string{"Registration", "Default"},
			data:    map[string]any{},
			invalid: []string{"email", "username", "full_name"},
		},
		{
			name:    "registration only",
			groups:  []string{"Registration"},
			data:    map[string]any{},
			invalid: []string{"email", "username"},
		},
		{
			name:    "no groups means default",
			groups:  nil,
			data:    map[string]any{"email": ""},
			invalid: []string{"full_name"},
		},
		{
			name:    "unrelated group",
			groups:  []string{"Profile"},
			data:    map[string]any{},
			invalid: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := Validate(registrationForm(t), tt.groups, tt.data)
			if tt.invalid == nil {
				assert.Nil(t, details)
				return
			}
			assert.Len(t, details, len(tt.invalid))
			for _, field := range tt.invalid {
				assert.Contains(t, details, field)
			}
		})
	}
}

func TestBindRejectsUnknownFields(t *testing.T) {
	c := &user.Customer{}
	err := Bind(registrationForm(t), nil, map[string]any{
		"full_name": "Ada",
		"id":        "00000000-0000-0000-0000-000000000001",
	}, c)

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))
	assert.Contains(t, apperrors.GetDetails(err), "id")
	assert.Empty(t, c.FullName)
}

func TestBindDecodeError(t *testing.T) {
	c := &user.Customer{}
	err := Bind(registrationForm(t), nil, map[string]any{
		"full_name":  "Ada",
		"newsletter": []string{"yes"},
	}, c)

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))
	assert.Contains(t, apperrors.GetDetails(err), "_form")
}

func TestBindNilArguments(t *testing.T) {
	err := Bind(nil, nil, nil, &user.Customer{})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnknownFormType))

	err = Bind(registrationForm(t), nil, nil, nil)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))
}
