package discriminator

import (
	apperrors "github.com/tendant/simple-idm-multiuser/pkg/errors"
)

// SessionName is the session key under which the selected class is stored.
const SessionName = "multiuser.user_discriminator.class"

// SessionStore is the per-session key/value store the selection is kept in.
type SessionStore interface {
	// Get returns the value stored under key and whether it was present.
	Get(key string) (string, bool)
	Set(key, value string)
}

// Discriminator tracks the selected user type for one session. It is not safe
// for concurrent use; bind a new one per request.
type Discriminator struct {
	table   *Table
	catalog *Catalog
	session SessionStore

	current  Class
	resolved bool
}

// New builds a table from cfg and binds it to session.
func New(session SessionStore, cfg Config, catalog *Catalog) (*Discriminator, error) {
	table, err := NewTable(cfg)
	if err != nil {
		return nil, err
	}
	return table.Bind(session, catalog), nil
}

// Table returns the descriptor table the discriminator is bound to.
func (d *Discriminator) Table() *Table {
	return d.table
}

// Classes returns the configured classes in declaration order.
func (d *Discriminator) Classes() []Class {
	return d.table.Classes()
}

// SetClass selects class. When persist is true the class is also written to
// the session. Unknown classes are rejected and nothing changes.
func (d *Discriminator) SetClass(class Class, persist bool) error {
	if !d.table.Has(class) {
		return apperrors.Newf(apperrors.ErrCodeUnknownUserClass, "no such user class %q", class).
			WithDetail("class", string(class))
	}

	d.current = class
	d.resolved = true

	if persist && d.session != nil {
		d.session.Set(SessionName, string(class))
	}
	return nil
}

// SelectFor selects and persists the class of an authenticated user.
func (d *Discriminator) SelectFor(user Entity) error {
	if user == nil {
		return apperrors.InvalidInput("user", "is nil")
	}
	return d.SetClass(user.UserClass(), true)
}

// Class returns the selected class. The first call without a prior SetClass
// consults the session; a missing or unknown stored value falls back to the
// default class. The result is kept for the lifetime of d.
func (d *Discriminator) Class() Class {
	if d.resolved {
		return d.current
	}

	d.current = d.table.Default()
	if d.session != nil {
		if stored, ok := d.session.Get(SessionName); ok && d.table.Has(Class(stored)) {
			d.current = Class(stored)
		}
	}
	d.resolved = true
	return d.current
}

// Descriptor returns the descriptor of the selected class.
func (d *Discriminator) Descriptor() Descriptor {
	desc, _ := d.table.Descriptor(d.Class())
	return desc
}

// CreateUser builds a new user with the factory of the selected class.
func (d *Discriminator) CreateUser() (Entity, error) {
	desc := d.Descriptor()
	factory, ok := d.catalog.Factory(desc.Factory)
	if !ok {
		return nil, apperrors.Newf(apperrors.ErrCodeUnknownFactory, "no factory registered as %q", desc.Factory).
			WithDetail("class", string(desc.Class))
	}
	return factory.Create(), nil
}

// UserFactory returns the factory identifier of the selected class.
func (d *Discriminator) UserFactory() string {
	return d.Descriptor().Factory
}

// FormType constructs the form type of the selected class for ctx.
func (d *Discriminator) FormType(ctx Context) (FormType, error) {
	form, err := d.form(ctx)
	if err != nil {
		return nil, err
	}
	formType, ok := d.catalog.NewFormType(form.Type)
	if !ok {
		return nil, apperrors.Newf(apperrors.ErrCodeUnknownFormType, "no form type registered as %q", form.Type).
			WithDetail("context", string(ctx))
	}
	return formType, nil
}

// FormName returns the form name of the selected class for ctx.
func (d *Discriminator) FormName(ctx Context) (string, error) {
	form, err := d.form(ctx)
	if err != nil {
		return "", err
	}
	return form.Name, nil
}

// FormValidationGroups returns the validation groups of the selected class
// for ctx, in configured order.
func (d *Discriminator) FormValidationGroups(ctx Context) ([]string, error) {
	form, err := d.form(ctx)
	if err != nil {
		return nil, err
	}
	return form.ValidationGroups, nil
}

// Template returns the template of the selected class for ctx.
func (d *Discriminator) Template(ctx Context) (string, error) {
	form, err := d.form(ctx)
	if err != nil {
		return "", err
	}
	return form.Template, nil
}

func (d *Discriminator) form(ctx Context) (FormConfig, error) {
	if _, err := ParseContext(string(ctx)); err != nil {
		return FormConfig{}, err
	}
	return d.Descriptor().Form(ctx)
}
