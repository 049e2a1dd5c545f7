package api

// UserTypeResponse describes one configured user type
type UserTypeResponse struct {
	Key     string `json:"key"`
	Class   string `json:"class"`
	Default bool   `json:"default"`
}

// UserTypeListResponse lists user types in declaration order
type UserTypeListResponse struct {
	UserTypes []UserTypeResponse `json:"user_types"`
}

// CurrentUserTypeResponse is the user type active for the session
type CurrentUserTypeResponse struct {
	Key   string `json:"key"`
	Class string `json:"class"`
}

// SelectUserTypeRequest selects the user type of the session
type SelectUserTypeRequest struct {
	Class string `json:"class"`
}
