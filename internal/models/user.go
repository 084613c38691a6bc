package models

// LoginRequest is forwarded verbatim to the upstream auth service
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token is the upstream auth service's login response
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
