package crypto

import "testing"

func TestScoreStrength(t *testing.T) {
	tests := []struct {
		name      string
		password  string
		wantScore int
		wantLabel string
	}{
		{name: "empty", password: "", wantScore: 0, wantLabel: "No password"},
		{name: "short lowercase", password: "abc", wantScore: 0, wantLabel: "Very Weak"},
		{name: "short mixed", password: "aB", wantScore: 1, wantLabel: "Weak"},
		{name: "eight lowercase", password: "abcdefgh", wantScore: 1, wantLabel: "Weak"},
		{name: "eight with digit", password: "abcdefg1", wantScore: 1, wantLabel: "Weak"},
		{name: "eight mixed with digit", password: "abcdeF1h", wantScore: 2, wantLabel: "Fair"},
		{name: "twelve mixed with digit", password: "abcdeF1habcd", wantScore: 2, wantLabel: "Fair"},
		{name: "twelve all kinds", password: "abcdeF1h!bcd", wantScore: 3, wantLabel: "Good"},
		{name: "seven accented", password: "ééééééé", wantScore: 0, wantLabel: "Very Weak"},
		{name: "eight accented", password: "éééééééé", wantScore: 1, wantLabel: "Weak"},
		{name: "sixteen all kinds", password: "abcdeF1h!bcdefgh", wantScore: 3, wantLabel: "Good"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreStrength(tt.password)
			if got.Score != tt.wantScore {
				t.Errorf("ScoreStrength(%q).Score = %d, want %d", tt.password, got.Score, tt.wantScore)
			}
			if got.Label != tt.wantLabel {
				t.Errorf("ScoreStrength(%q).Label = %q, want %q", tt.password, got.Label, tt.wantLabel)
			}
		})
	}
}

func TestScoreStrengthNeverExceedsMax(t *testing.T) {
	for i := 0; i < 50; i++ {
		password, err := Generate(PasswordPolicy{Length: 64, IncludeUppercase: true, IncludeNumbers: true, IncludeSymbols: true})
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		if s := ScoreStrength(password); s.Score > MaxStrengthScore {
			t.Fatalf("score %d exceeds max", s.Score)
		}
	}
}
