package discriminator

import (
	"fmt"

	apperrors "github.com/tendant/simple-idm-multiuser/pkg/errors"
)

// Class identifies a user type variant. It is the lookup key for descriptors.
type Class string

// Context selects which form configuration of a descriptor applies.
type Context string

const (
	Registration Context = "registration"
	Profile      Context = "profile"
)

// Contexts lists the recognized contexts.
var Contexts = []Context{Registration, Profile}

// ParseContext converts s into a Context.
func ParseContext(s string) (Context, error) {
	switch Context(s) {
	case Registration, Profile:
		return Context(s), nil
	}
	return "", unknownContext(s)
}

func unknownContext(s string) error {
	return apperrors.Newf(apperrors.ErrCodeUnknownContext, "unknown form context %q", s).
		WithDetail("allowed", Contexts)
}

// FormConfig is the form settings of one context.
type FormConfig struct {
	Type             string
	Name             string
	ValidationGroups []string
	Template         string
}

func (f FormConfig) clone() FormConfig {
	groups := make([]string, len(f.ValidationGroups))
	copy(groups, f.ValidationGroups)
	f.ValidationGroups = groups
	return f
}

// Descriptor is the validated settings bundle of one user type.
type Descriptor struct {
	// Key is the configuration key the descriptor was declared under
	Key          string
	Class        Class
	Factory      string
	Registration FormConfig
	Profile      FormConfig
}

// Form returns the form settings for ctx.
func (d Descriptor) Form(ctx Context) (FormConfig, error) {
	switch ctx {
	case Registration:
		return d.Registration.clone(), nil
	case Profile:
		return d.Profile.clone(), nil
	}
	return FormConfig{}, unknownContext(string(ctx))
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s (%s)", d.Class, d.Key)
}
