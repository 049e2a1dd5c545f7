package profile

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-idm-multiuser/pkg/discriminator"
	apperrors "github.com/tendant/simple-idm-multiuser/pkg/errors"
	"github.com/tendant/simple-idm-multiuser/pkg/user"
)

type mapSession map[string]string

func (m mapSession) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m mapSession) Set(key, value string) {
	m[key] = value
}

func setupProfileTest(t *testing.T) (*ProfileService, *user.InMemoryRepository, *discriminator.Table) {
	t.Helper()
	cfg, err := discriminator.LoadFile("../../configs/usertypes.yaml")
	require.NoError(t, err)
	table, err := discriminator.NewTable(cfg)
	require.NoError(t, err)

	repo := user.NewInMemoryRepository()
	return NewProfileService(repo), repo, table
}

func createStaff(t *testing.T, repo *user.InMemoryRepository) *user.Staff {
	t.Helper()
	staff := &user.Staff{
		Account:        user.Account{Email: "bob@example.com", Username: "bob"},
		FullName:       "Bob",
		Department:     "ops",
		EmployeeNumber: "E-7",
	}
	require.NoError(t, repo.Create(context.Background(), staff))
	return staff
}

func TestGetKeepsSessionSelection(t *testing.T) {
	service, repo, table := setupProfileTest(t)
	staff := createStaff(t, repo)

	session := mapSession{discriminator.SessionName: string(user.CustomerClass)}
	_, _, err := service.Get(context.Background(), table.Bind(session, user.DefaultCatalog()), staff.ID)
	require.NoError(t, err)
	assert.Equal(t, string(user.CustomerClass), session[discriminator.SessionName])
}

func TestGetSelectsUserType(t *testing.T) {
	service, repo, table := setupProfileTest(t)
	staff := createStaff(t, repo)

	session := mapSession{}
	d := table.Bind(session, user.DefaultCatalog())

	u, view, err := service.Get(context.Background(), d, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, staff.ID, u.Base().ID)
	assert.Equal(t, user.StaffClass, d.Class())
	assert.Empty(t, session, "viewing a profile must not change the session selection")
	assert.Equal(t, "staff_profile", view.Name)
	assert.Equal(t, "profile/staff.html", view.Template)
}

func TestGetMissingUser(t *testing.T) {
	service, _, table := setupProfileTest(t)
	session := mapSession{}
	d := table.Bind(session, user.DefaultCatalog())

	_, _, err := service.Get(context.Background(), d, uuid.New())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
	assert.Empty(t, session)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	service, repo, table := setupProfileTest(t)
	staff := createStaff(t, repo)
	session := mapSession{}
	d := table.Bind(session, user.DefaultCatalog())

	updated, err := service.Update(ctx, d, staff.ID, map[string]any{
		"full_name":  "Robert",
		"department": "platform",
	})
	require.NoError(t, err)

	got := updated.(*user.Staff)
	assert.Equal(t, "Robert", got.FullName)
	assert.Equal(t, "platform", got.Department)
	assert.Equal(t, "E-7", got.EmployeeNumber)
	assert.Equal(t, "bob@example.com", got.Email)
	assert.Equal(t, staff.ID, got.ID)
	assert.Equal(t, "user.Staff", session[discriminator.SessionName])

	stored, err := repo.Get(ctx, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, "platform", stored.(*user.Staff).Department)
}

func TestUpdateValidationLeavesUserUnchanged(t *testing.T) {
	ctx := context.Background()
	service, repo, table := setupProfileTest(t)
	staff := createStaff(t, repo)
	d := table.Bind(mapSession{}, user.DefaultCatalog())

	_, err := service.Update(ctx, d, staff.ID, map[string]any{
		"full_name":       "Robert",
		"employee_number": "E-8",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))
	details := apperrors.GetDetails(err)
	assert.Contains(t, details, "department")
	assert.Contains(t, details, "employee_number")

	stored, err := repo.Get(ctx, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", stored.(*user.Staff).FullName)
}
