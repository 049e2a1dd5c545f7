package forms

import (
	"github.com/tendant/simple-idm-multiuser/pkg/discriminator"
)

// View describes the form of the active user type in one context
type View struct {
	Class            discriminator.Class
	Type             string
	Name             string
	ValidationGroups []string
	Template         string
	Fields           []discriminator.FormField
}

// NewView resolves the form of the active user type of d for ctx
func NewView(d *discriminator.Discriminator, ctx discriminator.Context) (View, error) {
	form, err := d.FormType(ctx)
	if err != nil {
		return View{}, err
	}
	name, err := d.FormName(ctx)
	if err != nil {
		return View{}, err
	}
	groups, err := d.FormValidationGroups(ctx)
	if err != nil {
		return View{}, err
	}
	template, err := d.Template(ctx)
	if err != nil {
		return View{}, err
	}
	cfg, err := d.Descriptor().Form(ctx)
	if err != nil {
		return View{}, err
	}

	return View{
		Class:            d.Class(),
		Type:             cfg.Type,
		Name:             name,
		ValidationGroups: groups,
		Template:         template,
		Fields:           form.Fields(),
	}, nil
}
