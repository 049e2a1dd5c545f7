package api

// FieldResponse describes one form input
type FieldResponse struct {
	Name     string   `json:"name"`
	Label    string   `json:"label,omitempty"`
	Required bool     `json:"required"`
	Groups   []string `json:"groups,omitempty"`
}

// FormResponse describes the registration form of a user type
type FormResponse struct {
	UserType         string          `json:"user_type"`
	Class            string          `json:"class"`
	Type             string          `json:"type"`
	Name             string          `json:"name"`
	ValidationGroups []string        `json:"validation_groups"`
	Template         string          `json:"template"`
	Fields           []FieldResponse `json:"fields"`
}

// RegisterResponse is returned after a user was created
type RegisterResponse struct {
	UserType string      `json:"user_type"`
	Class    string      `json:"class"`
	User     interface{} `json:"user"`
}
