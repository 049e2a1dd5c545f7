// Package forms binds submitted data to user entities using the form type and
// validation groups selected for the active user type.
package forms

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/tendant/simple-idm-multiuser/pkg/discriminator"
	apperrors "github.com/tendant/simple-idm-multiuser/pkg/errors"
)

// DefaultGroup applies to fields that name no group and to binds without groups.
const DefaultGroup = "Default"

// Bind validates data against form for the active validation groups and
// decodes it into target. Keys that are not fields of the form are rejected.
func Bind(form discriminator.FormType, groups []string, data map[string]any, target discriminator.Entity) error {
	if form == nil {
		return apperrors.New(apperrors.ErrCodeUnknownFormType, "no form type")
	}
	if target == nil {
		return apperrors.InvalidInput("target", "nil entity")
	}

	details := Validate(form, groups, data)
	if len(details) > 0 {
		return apperrors.ValidationFailed(details)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Squash:  true,
		Result:  target,
	})
	if err != nil {
		return apperrors.InternalWrap(err, "failed to create decoder")
	}
	if err := decoder.Decode(data); err != nil {
		out := map[string]interface{}{}
		if merr, ok := err.(*mapstructure.Error); ok {
			out["_form"] = merr.Errors
		} else {
			out["_form"] = []string{err.Error()}
		}
		return apperrors.ValidationFailed(out)
	}
	return nil
}

// Validate returns a message per invalid field, or nil when data is valid.
func Validate(form discriminator.FormType, groups []string, data map[string]any) map[string]interface{} {
	active := activeGroups(groups)
	fields := form.Fields()

	known := make(map[string]bool, len(fields))
	details := map[string]interface{}{}
	for _, f := range fields {
		known[f.Name] = true
		if f.Required && applies(f, active) && isBlank(data[f.Name]) {
			details[f.Name] = "this value should not be blank"
		}
	}

	for k := range data {
		if !known[k] {
			details[k] = fmt.Sprintf("unknown field %q", k)
		}
	}

	if len(details) == 0 {
		return nil
	}
	return details
}

func activeGroups(groups []string) map[string]bool {
	active := make(map[string]bool, len(groups)+1)
	for _, g := range groups {
		active[g] = true
	}
	if len(active) == 0 {
		active[DefaultGroup] = true
	}
	return active
}

func applies(f discriminator.FormField, active map[string]bool) bool {
	if len(f.Groups) == 0 {
		return active[DefaultGroup]
	}
	for _, g := range f.Groups {
		if active[g] {
			return true
		}
	}
	return false
}

func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	}
	return false
}
