package model

// RegisterRequest represents an account registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,min=8"`
}

// VerifyMFARequest carries the one-time code sent to the user's email.
type VerifyMFARequest struct {
	MFACode string `json:"mfa_code" validate:"required,len=6,numeric"`
	Email   string `json:"email" validate:"required,email"`
}

// ChangePasswordRequest represents a master password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// TokenResponse is returned by every endpoint that issues an access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// ErrorResponse is the error body returned by the vault API.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
