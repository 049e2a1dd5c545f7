package api

// FieldResponse describes one form input
type FieldResponse struct {
	Name     string   `json:"name"`
	Label    string   `json:"label,omitempty"`
	Required bool     `json:"required"`
	Groups   []string `json:"groups,omitempty"`
}

// FormResponse describes the profile form of a user type
type FormResponse struct {
	Type             string          `json:"type"`
	Name             string          `json:"name"`
	ValidationGroups []string        `json:"validation_groups"`
	Template         string          `json:"template"`
	Fields           []FieldResponse `json:"fields"`
}

// ProfileResponse is a user together with the form used to edit it
type ProfileResponse struct {
	Class string       `json:"class"`
	User  interface{}  `json:"user"`
	Form  FormResponse `json:"form"`
}
