package crypto

import "unicode/utf8"

// MaxStrengthScore is the highest score ScoreStrength returns.
const MaxStrengthScore = 4

var strengthLabels = [...]string{
	"Very Weak",
	"Weak",
	"Fair",
	"Good",
	"Strong",
}

// Strength is a coarse rating of a password.
type Strength struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

// ScoreStrength rates a password from 0 to 4. Each of the length thresholds
// 8, 12 and 16 and each present character kind (upper, lower, digit, other)
// earns a point; the score is half the points, capped at 4. Length is
// counted in characters, not bytes.
func ScoreStrength(password string) Strength {
	if password == "" {
		return Strength{Score: 0, Label: "No password"}
	}

	length := utf8.RuneCountInString(password)
	points := 0
	for _, threshold := range []int{8, 12, 16} {
		if length >= threshold {
			points++
		}
	}

	var upper, lower, digit, other bool
	for _, c := range password {
		switch {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		default:
			other = true
		}
	}
	for _, present := range []bool{upper, lower, digit, other} {
		if present {
			points++
		}
	}

	score := min(MaxStrengthScore, points/2)
	return Strength{Score: score, Label: strengthLabels[score]}
}
