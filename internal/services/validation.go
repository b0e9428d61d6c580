package services

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	maxFieldLength = 500
	minYear        = 1990
	maxYear        = 2024
	steamIDLength  = 17
)

// RegistrationForm is the five-field vehicle submission.
type RegistrationForm struct {
	MakeModel    string
	Year         string
	EngineSpec   string
	Transmission string
	SteamID      string
}

// ValidationError carries every problem found in a submission, in field order.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid submission: " + strings.Join(e.Problems, "; ")
}

// SanitizeText trims, collapses whitespace runs and caps the length.
func SanitizeText(text string) string {
	cleaned := strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(cleaned) <= maxFieldLength {
		return cleaned
	}
	return string([]rune(cleaned)[:maxFieldLength])
}

// Sanitized returns a copy of the form with every field cleaned.
func (f RegistrationForm) Sanitized() RegistrationForm {
	return RegistrationForm{
		MakeModel:    SanitizeText(f.MakeModel),
		Year:         SanitizeText(f.Year),
		EngineSpec:   SanitizeText(f.EngineSpec),
		Transmission: SanitizeText(f.Transmission),
		SteamID:      SanitizeText(f.SteamID),
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func ValidYear(year string) bool {
	if len(year) != 4 || !isDigits(year) {
		return false
	}
	n, _ := strconv.Atoi(year)
	return n >= minYear && n <= maxYear
}

func ValidSteamID(id string) bool {
	return len(id) == steamIDLength && isDigits(id)
}

func ValidMakeModel(s string) bool {
	return utf8.RuneCountInString(s) >= 3 && !isDigits(s)
}

func ValidTransmission(s string) bool {
	return utf8.RuneCountInString(s) >= 3 && !isDigits(s)
}

func ValidEngineSpec(s string) bool {
	return utf8.RuneCountInString(s) >= 5
}

// ValidateForm sanitizes f and checks every field. The sanitized form is
// returned even when validation fails.
func ValidateForm(f RegistrationForm) (RegistrationForm, error) {
	clean := f.Sanitized()

	var problems []string
	if !ValidMakeModel(clean.MakeModel) {
		problems = append(problems, "Vehicle make and model must be at least 3 characters and not just numbers")
	}
	if !ValidYear(clean.Year) {
		problems = append(problems, "Year must be between 1990 and 2024")
	}
	if !ValidEngineSpec(clean.EngineSpec) {
		problems = append(problems, "Engine specifications must be more detailed (minimum 5 characters)")
	}
	if !ValidTransmission(clean.Transmission) {
		problems = append(problems, "Transmission information must be at least 3 characters and not just numbers")
	}
	if !ValidSteamID(clean.SteamID) {
		problems = append(problems, "Steam ID must be exactly 17 digits")
	}

	if len(problems) > 0 {
		return clean, &ValidationError{Problems: problems}
	}
	return clean, nil
}

// FormatStats renders a record like "12W-3L (80.0%)".
func FormatStats(wins, losses int) string {
	total := wins + losses
	if total == 0 {
		return "No races completed"
	}
	rate := float64(wins) / float64(total) * 100
	return strconv.Itoa(wins) + "W-" + strconv.Itoa(losses) + "L (" + strconv.FormatFloat(rate, 'f', 1, 64) + "%)"
}
