package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-idm-multiuser/pkg/discriminator"
)

const (
	CustomerClass discriminator.Class = "user.Customer"
	StaffClass    discriminator.Class = "user.Staff"
)

// Account holds the fields shared by every user type
type Account struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	CreatedAt      time.Time `json:"created_at"`
	LastModifiedAt time.Time `json:"last_modified_at"`
}

// Base returns the shared account fields
func (a *Account) Base() *Account {
	return a
}

// User is an entity the repository can store
type User interface {
	discriminator.Entity
	Base() *Account
}

// Customer registers itself through the public registration form
type Customer struct {
	Account
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Newsletter bool   `json:"newsletter"`
}

func (*Customer) UserClass() discriminator.Class { return CustomerClass }

// Staff is an employee account with its own registration form
type Staff struct {
	Account
	FullName       string `json:"full_name"`
	Department     string `json:"department"`
	EmployeeNumber string `json:"employee_number"`
}

func (*Staff) UserClass() discriminator.Class { return StaffClass }
