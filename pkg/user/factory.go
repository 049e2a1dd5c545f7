package user

import (
	"github.com/tendant/simple-idm-multiuser/pkg/discriminator"
)

// Identifiers used by the user type configuration
const (
	CustomerFactoryName = "user.CustomerFactory"
	StaffFactoryName    = "user.StaffFactory"

	CustomerRegistrationFormName = "user.CustomerRegistrationForm"
	CustomerProfileFormName      = "user.CustomerProfileForm"
	StaffRegistrationFormName    = "user.StaffRegistrationForm"
	StaffProfileFormName         = "user.StaffProfileForm"
)

// NewCustomer is the Customer factory
func NewCustomer() discriminator.Entity {
	return &Customer{Newsletter: false}
}

// NewStaff is the Staff factory
func NewStaff() discriminator.Entity {
	return &Staff{Department: "general"}
}

// fieldForm is a form type defined by its field list
type fieldForm []discriminator.FormField

func (f fieldForm) Fields() []discriminator.FormField {
	return append([]discriminator.FormField(nil), f...)
}

func customerRegistrationForm() discriminator.FormType {
	return fieldForm{
		{Name: "email", Label: "Email", Required: true, Groups: []string{"Registration"}},
		{Name: "username", Label: "Username", Required: true, Groups: []string{"Registration"}},
		{Name: "full_name", Label: "Full name", Required: true},
		{Name: "phone", Label: "Phone"},
		{Name: "newsletter", Label: "Subscribe to the newsletter"},
	}
}

func customerProfileForm() discriminator.FormType {
	return fieldForm{
		{Name: "full_name", Label: "Full name", Required: true, Groups: []string{"Profile"}},
		{Name: "phone", Label: "Phone"},
		{Name: "newsletter", Label: "Subscribe to the newsletter"},
	}
}

func staffRegistrationForm() discriminator.FormType {
	return fieldForm{
		{Name: "email", Label: "Work email", Required: true, Groups: []string{"StaffRegistration"}},
		{Name: "username", Label: "Username", Required: true, Groups: []string{"StaffRegistration"}},
		{Name: "full_name", Label: "Full name", Required: true},
		{Name: "department", Label: "Department"},
		{Name: "employee_number", Label: "Employee number", Required: true, Groups: []string{"StaffRegistration"}},
	}
}

func staffProfileForm() discriminator.FormType {
	return fieldForm{
		{Name: "full_name", Label: "Full name", Required: true, Groups: []string{"Profile"}},
		{Name: "department", Label: "Department", Required: true, Groups: []string{"Profile"}},
	}
}

// DefaultCatalog registers the factories and form types of this package
func DefaultCatalog() *discriminator.Catalog {
	return discriminator.NewCatalog().
		RegisterFactory(CustomerFactoryName, discriminator.FactoryFunc(NewCustomer)).
		RegisterFactory(StaffFactoryName, discriminator.FactoryFunc(NewStaff)).
		RegisterFormType(CustomerRegistrationFormName, customerRegistrationForm).
		RegisterFormType(CustomerProfileFormName, customerProfileForm).
		RegisterFormType(StaffRegistrationFormName, staffRegistrationForm).
		RegisterFormType(StaffProfileFormName, staffProfileForm)
}

// NewByClass returns an empty user of class
func NewByClass(class discriminator.Class) (User, bool) {
	switch class {
	case CustomerClass:
		return &Customer{}, true
	case StaffClass:
		return &Staff{}, true
	}
	return nil, false
}
