package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars    = "0123456789"
	// symbolChars is part of the password format; changing it changes the
	// guess space of every generated password.
	symbolChars = "!@#$%^&*()_+~`|}{[]:;?><,./-="

	DefaultLength = 16
)

var ErrNegativeLength = errors.New("password length must not be negative")

// PasswordPolicy configures the password generator. Lowercase letters are
// always part of the alphabet.
type PasswordPolicy struct {
	Length           int
	IncludeUppercase bool
	IncludeNumbers   bool
	IncludeSymbols   bool
}

// DefaultPolicy returns the default policy: 16 characters with every class enabled.
func DefaultPolicy() PasswordPolicy {
	return PasswordPolicy{
		Length:           DefaultLength,
		IncludeUppercase: true,
		IncludeNumbers:   true,
		IncludeSymbols:   true,
	}
}

// alphabet returns the full pool and the classes that get a guaranteed
// character, in seeding order.
func (p PasswordPolicy) alphabet() (string, []string) {
	pool := lowercaseChars
	var seeds []string

	if p.IncludeUppercase {
		pool += uppercaseChars
		seeds = append(seeds, uppercaseChars)
	}
	if p.IncludeNumbers {
		pool += numberChars
		seeds = append(seeds, numberChars)
	}
	if p.IncludeSymbols {
		pool += symbolChars
		seeds = append(seeds, symbolChars)
	}

	return pool, seeds
}

// AlphabetSize returns the number of distinct characters the policy allows.
func (p PasswordPolicy) AlphabetSize() int {
	pool, _ := p.alphabet()
	return len(pool)
}

// OutputLength returns the length of passwords generated with p. It exceeds
// Length when there are more seeded classes than Length allows.
func (p PasswordPolicy) OutputLength() int {
	if p.Length < 0 {
		return 0
	}
	_, seeds := p.alphabet()
	return max(p.Length, len(seeds))
}

// EntropyBits estimates the guess space of a password generated with p,
// assuming every emitted position is drawn from the full alphabet.
func (p PasswordPolicy) EntropyBits() float64 {
	n := p.OutputLength()
	if n == 0 {
		return 0
	}
	return float64(n) * math.Log2(float64(p.AlphabetSize()))
}

// Generator produces passwords from a random source. The zero value is not
// usable; use NewGenerator.
type Generator struct {
	rand io.Reader
}

// NewGenerator returns a Generator reading from r. A nil r selects crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{rand: r}
}

var defaultGenerator = NewGenerator(nil)

// Generate creates a password with the package default generator, which
// draws from crypto/rand.
func Generate(policy PasswordPolicy) (string, error) {
	return defaultGenerator.Generate(policy)
}

// Generate creates a random password for the given policy.
//
// One character of each enabled uppercase, number and symbol class is
// always emitted, even when policy.Length is smaller than the number of
// enabled classes; the result is then longer than requested. Lowercase
// letters are only drawn while padding.
func (g *Generator) Generate(policy PasswordPolicy) (string, error) {
	if policy.Length < 0 {
		return "", ErrNegativeLength
	}

	pool, seeds := policy.alphabet()

	result := make([]byte, 0, max(policy.Length, len(seeds)))

	for _, charset := range seeds {
		ch, err := g.randChar(charset)
		if err != nil {
			return "", err
		}
		result = append(result, ch)
	}

	for len(result) < policy.Length {
		ch, err := g.randChar(pool)
		if err != nil {
			return "", err
		}
		result = append(result, ch)
	}

	if err := g.shuffle(result); err != nil {
		return "", err
	}

	return string(result), nil
}

// randChar picks a uniformly random character from charset.
func (g *Generator) randChar(charset string) (byte, error) {
	n, err := rand.Int(g.rand, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}
	return charset[n.Int64()], nil
}

// shuffle performs a Fisher-Yates shuffle in place.
func (g *Generator) shuffle(data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := rand.Int(g.rand, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("reading random source: %w", err)
		}
		data[i], data[j.Int64()] = data[j.Int64()], data[i]
	}
	return nil
}
