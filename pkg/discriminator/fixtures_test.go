package discriminator

import (
	"github.com/stretchr/testify/mock"
)

const (
	userClass        Class = "stub.User"
	anotherUserClass Class = "stub.AnotherUser"
)

type stubUser struct {
	Email string
}

func (stubUser) UserClass() Class { return userClass }

type stubAnotherUser struct {
	Email   string
	Company string
}

func (stubAnotherUser) UserClass() Class { return anotherUserClass }

type stubForm struct {
	name string
}

func (f stubForm) Fields() []FormField {
	return []FormField{{Name: f.name, Required: true}}
}

// mockSession records calls so tests can assert how often the session is hit.
type mockSession struct {
	mock.Mock
}

func (m *mockSession) Get(key string) (string, bool) {
	args := m.Called(key)
	return args.String(0), args.Bool(1)
}

func (m *mockSession) Set(key, value string) {
	m.Called(key, value)
}

func userParams() map[string]any {
	return map[string]any{
		"entity": map[string]any{
			"class":   string(userClass),
			"factory": "stub.UserFactory",
		},
		"registration": map[string]any{
			"form": map[string]any{
				"type":              "stub.UserRegistrationForm",
				"name":              "fos_user_registration_form",
				"validation_groups": []any{"Registration", "Default"},
			},
			"template": "registration/user_one.form.html",
		},
		"profile": map[string]any{
			"form": map[string]any{
				"type":              "stub.UserProfileForm",
				"name":              "fos_user_profile_form",
				"validation_groups": []string{"Profile", "Default"},
			},
			"template": "profile/user_one.form.html",
		},
	}
}

func anotherUserParams() map[string]any {
	return map[string]any{
		"entity": map[string]any{
			"class":   string(anotherUserClass),
			"factory": "stub.CustomUserFactory",
		},
		"registration": map[string]any{
			"form": map[string]any{
				"type":              "stub.AnotherUserRegistrationForm",
				"name":              "fos_user_my_registration_form",
				"validation_groups": []string{"MyRegistration", "Default"},
			},
			"template": "registration/user_two.form.html",
		},
		"profile": map[string]any{
			"form": map[string]any{
				"type":              "stub.AnotherUserProfileForm",
				"name":              "fos_user_profile_form",
				"validation_groups": []string{"Profile", "Default"},
			},
			"template": "profile/user_two.form.html",
		},
	}
}

func testConfig() Config {
	return Config{
		{Key: "user_one", Params: userParams()},
		{Key: "user_two", Params: anotherUserParams()},
	}
}

func testCatalog() *Catalog {
	return NewCatalog().
		RegisterFactory("stub.UserFactory", FactoryFunc(func() Entity { return &stubUser{} })).
		RegisterFactory("stub.CustomUserFactory", FactoryFunc(func() Entity { return &stubAnotherUser{Company: "acme"} })).
		RegisterFormType("stub.UserRegistrationForm", func() FormType { return stubForm{name: "user_registration"} }).
		RegisterFormType("stub.UserProfileForm", func() FormType { return stubForm{name: "user_profile"} }).
		RegisterFormType("stub.AnotherUserRegistrationForm", func() FormType { return stubForm{name: "another_registration"} }).
		RegisterFormType("stub.AnotherUserProfileForm", func() FormType { return stubForm{name: "another_profile"} })
}
