package service

import (
	"github.com/vaultpass/vaultpass-client/internal/crypto"
	"github.com/vaultpass/vaultpass-client/internal/model"
)

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	gen *crypto.Generator
}

// NewGeneratorService creates a GeneratorService drawing from gen. A nil gen
// uses crypto/rand.
func NewGeneratorService(gen *crypto.Generator) *GeneratorService {
	if gen == nil {
		gen = crypto.NewGenerator(nil)
	}
	return &GeneratorService{gen: gen}
}

// Generate produces a password based on the given request.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	if err := validateStruct(req); err != nil {
		return model.GenerateResponse{}, err
	}

	policy := PolicyFromRequest(req)

	password, err := s.gen.Generate(policy)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	return model.GenerateResponse{
		Password:    password,
		Length:      len(password),
		EntropyBits: policy.EntropyBits(),
		Strength:    crypto.ScoreStrength(password),
	}, nil
}

// Strength rates an existing password.
func (s *GeneratorService) Strength(req model.StrengthRequest) (crypto.Strength, error) {
	if err := validateStruct(req); err != nil {
		return crypto.Strength{}, err
	}
	return crypto.ScoreStrength(req.Password), nil
}

// PolicyFromRequest applies defaults to a request: length 0 means 16 and
// missing class flags mean enabled.
func PolicyFromRequest(req model.GenerateRequest) crypto.PasswordPolicy {
	policy := crypto.PasswordPolicy{
		Length:           req.Length,
		IncludeUppercase: boolOrDefault(req.Uppercase, true),
		IncludeNumbers:   boolOrDefault(req.Numbers, true),
		IncludeSymbols:   boolOrDefault(req.Symbols, true),
	}

	if policy.Length == 0 {
		policy.Length = crypto.DefaultLength
	}

	return policy
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
