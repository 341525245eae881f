package models

// ErrorResponse is the uniform JSON error body returned by the API for every
// failed request. Only one of Error/Errors is populated: Errors carries the
// itemized reasons of a validation failure, Error everything else.
type ErrorResponse struct {
	// Error is a single human-readable failure message.
	Error string `json:"error,omitempty"`

	// Errors lists every validation violation found in one pass
	// (e.g. all unmet password policy rules).
	Errors []string `json:"errors,omitempty"`
}

// RegisterResponse is returned with HTTP 201 after a successful registration.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// LoginResponse is returned with HTTP 200 after a successful password or
// passkey login. Token is the signed bearer token the client must present on
// subsequent requests.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the public projection of a user record. It never carries
// credential material.
type UserResponse struct {
	ID         int64  `json:"id"`
	Login      string `json:"login"`
	HasPasskey bool   `json:"has_passkey"`
}

// MessageResponse is a minimal success body for operations that have no
// payload to return (e.g. passkey registration finish, item deletion).
type MessageResponse struct {
	Message string `json:"message"`
}
