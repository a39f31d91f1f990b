package models

// RegisterRequest carries the sign-up form. Only Email is required; the
// account always starts with empty names.
type RegisterRequest struct {
	Email    string
	Password string
}

// AuthResult is returned by a successful login or registration.
type AuthResult struct {
	Profile Profile
	Token   string
}
