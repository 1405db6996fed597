package dto

// CredentialsRequest is the login and registration payload.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned on successful login or registration.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}
