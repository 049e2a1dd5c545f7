package discriminator

import (
	"github.com/tendant/simple-idm-multiuser/pkg/config"
	apperrors "github.com/tendant/simple-idm-multiuser/pkg/errors"
)

// Table is the validated, immutable set of user type descriptors. It is safe
// for concurrent use.
type Table struct {
	descriptors map[Class]Descriptor
	keys        map[string]Class
	classes     []Class
}

// NewTable validates cfg and builds the descriptor table. Any problem is
// reported as a single INVALID_CONFIGURATION error listing every offending
// field.
func NewTable(cfg Config) (*Table, error) {
	if len(cfg) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidConfiguration, "at least one user type must be configured")
	}

	t := &Table{
		descriptors: make(map[Class]Descriptor, len(cfg)),
		keys:        make(map[string]Class, len(cfg)),
		classes:     make([]Class, 0, len(cfg)),
	}

	var errs config.ValidationErrors
	seenKeys := map[string]bool{}
	seenClasses := map[string]bool{}
	for _, entry := range cfg {
		errs = append(errs, config.CollectErrors(
			config.RequireNonEmpty("key", entry.Key),
			config.RequireUnique("key", entry.Key, seenKeys),
		)...)

		desc, entryErrs := decodeEntry(entry)
		if entryErrs.HasErrors() {
			errs = append(errs, entryErrs...)
			continue
		}
		if dup := config.RequireUnique(entry.Key+".entity.class", string(desc.Class), seenClasses); dup != nil {
			errs = append(errs, *dup)
			continue
		}

		t.descriptors[desc.Class] = desc
		t.keys[desc.Key] = desc.Class
		t.classes = append(t.classes, desc.Class)
	}

	if errs.HasErrors() {
		return nil, apperrors.Wrap(errs, apperrors.ErrCodeInvalidConfiguration, "invalid user type configuration").
			WithDetails(errs.Fields())
	}
	return t, nil
}

// Classes returns the configured classes in declaration order.
func (t *Table) Classes() []Class {
	return append([]Class(nil), t.classes...)
}

// Default returns the first declared class.
func (t *Table) Default() Class {
	return t.classes[0]
}

// Has reports whether class is configured.
func (t *Table) Has(class Class) bool {
	_, ok := t.descriptors[class]
	return ok
}

// Descriptor returns the descriptor of class.
func (t *Table) Descriptor(class Class) (Descriptor, bool) {
	d, ok := t.descriptors[class]
	if !ok {
		return Descriptor{}, false
	}
	d.Registration = d.Registration.clone()
	d.Profile = d.Profile.clone()
	return d, true
}

// Lookup returns the descriptor declared under the configuration key.
func (t *Table) Lookup(key string) (Descriptor, bool) {
	class, ok := t.keys[key]
	if !ok {
		return Descriptor{}, false
	}
	return t.Descriptor(class)
}

// Descriptors returns all descriptors in declaration order.
func (t *Table) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(t.classes))
	for _, class := range t.classes {
		d, _ := t.Descriptor(class)
		out = append(out, d)
	}
	return out
}

// Check verifies that every factory and form type named by the table is
// registered in catalog.
func (t *Table) Check(catalog *Catalog) error {
	var errs config.ValidationErrors
	for _, class := range t.classes {
		d := t.descriptors[class]
		if !catalog.HasFactory(d.Factory) {
			errs = append(errs, config.ValidationError{Field: d.Key + ".entity.factory", Message: "unknown factory " + d.Factory})
		}
		for _, ctx := range Contexts {
			form, _ := d.Form(ctx)
			if !catalog.HasFormType(form.Type) {
				errs = append(errs, config.ValidationError{Field: d.Key + "." + string(ctx) + ".form.type", Message: "unknown form type " + form.Type})
			}
		}
	}
	if errs.HasErrors() {
		return apperrors.Wrap(errs, apperrors.ErrCodeInvalidConfiguration, "user types reference unregistered constructors").
			WithDetails(errs.Fields())
	}
	return nil
}

// Bind returns a Discriminator for one session. session may be nil, in which
// case nothing is read or persisted.
func (t *Table) Bind(session SessionStore, catalog *Catalog) *Discriminator {
	return &Discriminator{
		table:   t,
		catalog: catalog,
		session: session,
	}
}
