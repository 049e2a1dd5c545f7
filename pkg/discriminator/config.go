package discriminator

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/tendant/simple-idm-multiuser/pkg/config"
	apperrors "github.com/tendant/simple-idm-multiuser/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Entry is one user type as declared in configuration. Params must be shaped
//
//	entity:       {class, factory}
//	registration: {form: {type, name, validation_groups}, template}
//	profile:      {form: {type, name, validation_groups}, template}
type Entry struct {
	Key    string
	Params map[string]any
}

// Config is the user type configuration in declaration order. The first
// entry is the default user type.
type Config []Entry

type entityParams struct {
	Class   string `mapstructure:"class"`
	Factory string `mapstructure:"factory"`
}

type formParams struct {
	Type             string   `mapstructure:"type"`
	Name             string   `mapstructure:"name"`
	ValidationGroups []string `mapstructure:"validation_groups"`
}

type sectionParams struct {
	Form     formParams `mapstructure:"form"`
	Template string     `mapstructure:"template"`
}

type userTypeParams struct {
	Entity       entityParams  `mapstructure:"entity"`
	Registration sectionParams `mapstructure:"registration"`
	Profile      sectionParams `mapstructure:"profile"`
}

func (s sectionParams) formConfig() FormConfig {
	groups := s.Form.ValidationGroups
	if groups == nil {
		groups = []string{}
	}
	return FormConfig{
		Type:             s.Form.Type,
		Name:             s.Form.Name,
		ValidationGroups: groups,
		Template:         s.Template,
	}
}

// decodeEntry turns one entry into a Descriptor. Unknown keys, missing keys
// and wrongly typed values are all rejected.
func decodeEntry(e Entry) (Descriptor, config.ValidationErrors) {
	if e.Params == nil {
		return Descriptor{}, config.ValidationErrors{{Field: e.Key, Message: "must be a mapping with entity, registration and profile"}}
	}

	var params userTypeParams
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		ErrorUnset:  true,
		Result:      &params,
	})
	if err != nil {
		return Descriptor{}, config.ValidationErrors{{Field: e.Key, Message: err.Error()}}
	}
	if err := decoder.Decode(e.Params); err != nil {
		return Descriptor{}, config.ValidationErrors{{Field: e.Key, Message: err.Error()}}
	}

	errs := config.CollectErrors(
		config.RequireNonEmpty(e.Key+".entity.class", params.Entity.Class),
		config.RequireNonEmpty(e.Key+".entity.factory", params.Entity.Factory),
		config.RequireNonEmpty(e.Key+".registration.form.type", params.Registration.Form.Type),
		config.RequireNonEmpty(e.Key+".registration.form.name", params.Registration.Form.Name),
		config.RequireNonEmpty(e.Key+".profile.form.type", params.Profile.Form.Type),
		config.RequireNonEmpty(e.Key+".profile.form.name", params.Profile.Form.Name),
	)
	if errs.HasErrors() {
		return Descriptor{}, errs
	}

	return Descriptor{
		Key:          e.Key,
		Class:        Class(params.Entity.Class),
		Factory:      params.Entity.Factory,
		Registration: params.Registration.formConfig(),
		Profile:      params.Profile.formConfig(),
	}, nil
}

// ParseYAML reads a user type mapping from YAML. Entries keep document order.
func ParseYAML(data []byte) (Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInvalidConfiguration, "failed to parse user type configuration")
	}
	if len(doc.Content) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidConfiguration, "user type configuration is empty")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, apperrors.New(apperrors.ErrCodeInvalidConfiguration, "user type configuration must be a mapping of user types")
	}

	cfg := make(Config, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]

		var params map[string]any
		if err := valueNode.Decode(&params); err != nil {
			return nil, apperrors.Wrapf(err, apperrors.ErrCodeInvalidConfiguration, "user type %q must be a mapping", keyNode.Value).
				WithDetail("line", valueNode.Line)
		}
		cfg = append(cfg, Entry{Key: keyNode.Value, Params: params})
	}
	return cfg, nil
}

// LoadFile reads and parses a YAML user type configuration file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInvalidConfiguration, fmt.Sprintf("failed to read %s", path))
	}
	return ParseYAML(data)
}
