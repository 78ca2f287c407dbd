package model

import "github.com/vaultpass/vaultpass-client/internal/crypto"

// GenerateRequest represents a password generation request.
// Pointer bools allow distinguishing between missing (nil -> default true) and explicit false.
type GenerateRequest struct {
	Length    int   `json:"length" validate:"gte=0,lte=128"`
	Uppercase *bool `json:"uppercase"`
	Numbers   *bool `json:"numbers"`
	Symbols   *bool `json:"symbols"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password    string          `json:"password"`
	Length      int             `json:"length"`
	EntropyBits float64         `json:"entropy_bits"`
	Strength    crypto.Strength `json:"strength"`
}

// StrengthRequest asks for the rating of an existing password.
type StrengthRequest struct {
	Password string `json:"password" validate:"max=1024"`
}
