package services

import (
	"errors"
	"strings"
	"testing"
)

func validForm() RegistrationForm {
	return RegistrationForm{
		MakeModel:    "Ford Mustang GT",
		Year:         "2022",
		EngineSpec:   "750whp 850nm",
		Transmission: "6-Speed Manual",
		SteamID:      "76561198123456789",
	}
}

func TestValidateForm_Valid(t *testing.T) {
	form := validForm()
	form.MakeModel = "  Ford   Mustang\tGT "

	clean, err := ValidateForm(form)
	if err != nil {
		t.Fatalf("Expected valid form, got %v", err)
	}
	if clean.MakeModel != "Ford Mustang GT" {
		t.Errorf("Expected collapsed make/model, got %q", clean.MakeModel)
	}
}

func TestValidateForm_CollectsAllProblems(t *testing.T) {
	form := RegistrationForm{
		MakeModel:    "123",
		Year:         "1989",
		EngineSpec:   "V8",
		Transmission: "6",
		SteamID:      "7656119812345678x",
	}

	_, err := ValidateForm(form)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected *ValidationError, got %v", err)
	}
	if len(vErr.Problems) != 5 {
		t.Fatalf("Expected 5 problems, got %d: %v", len(vErr.Problems), vErr.Problems)
	}

	order := []string{"make and model", "Year", "Engine", "Transmission", "Steam ID"}
	for i, want := range order {
		if !strings.Contains(vErr.Problems[i], want) {
			t.Errorf("Problem %d: expected mention of %q, got %q", i, want, vErr.Problems[i])
		}
	}
}

func TestValidYear(t *testing.T) {
	tests := []struct {
		year string
		want bool
	}{
		{"1990", true},
		{"2024", true},
		{"1989", false},
		{"2025", false},
		{"99", false},
		{"20x2", false},
		{"02022", false},
	}
	for _, tt := range tests {
		if got := ValidYear(tt.year); got != tt.want {
			t.Errorf("ValidYear(%q) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestValidSteamID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"76561198123456789", true},
		{"7656119812345678", false},
		{"765611981234567890", false},
		{"7656119812345678a", false},
	}
	for _, tt := range tests {
		if got := ValidSteamID(tt.id); got != tt.want {
			t.Errorf("ValidSteamID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestSanitizeText_CapsLength(t *testing.T) {
	long := strings.Repeat("a", 600)
	if got := SanitizeText(long); len(got) != maxFieldLength {
		t.Errorf("Expected %d characters, got %d", maxFieldLength, len(got))
	}
}

func TestFormatStats(t *testing.T) {
	tests := []struct {
		wins, losses int
		want         string
	}{
		{12, 3, "12W-3L (80.0%)"},
		{0, 0, "No races completed"},
		{1, 2, "1W-2L (33.3%)"},
	}
	for _, tt := range tests {
		if got := FormatStats(tt.wins, tt.losses); got != tt.want {
			t.Errorf("FormatStats(%d, %d) = %q, want %q", tt.wins, tt.losses, got, tt.want)
		}
	}
}
