package dashboard

import (
	"strings"
	"unicode"

	"github.com/efuayankey/NextToIntern/internal/domain"
)

// Summary is the read-only dashboard projection of a profile.
type Summary struct {
	DisplayName    string        `json:"displayName"`
	Initials       string        `json:"initials"`
	Points         int           `json:"points"`
	Level          string        `json:"level"`
	GoalCount      int           `json:"goalCount"`
	CompanyCount   int           `json:"companyCount"`
	Major          string        `json:"major,omitempty"`
	Year           string        `json:"year,omitempty"`
	Availability   string        `json:"availability,omitempty"`
	ComingSoon     []FeatureCard `json:"comingSoon"`
}

// FeatureCard is an inert placeholder for a feature that is not built yet.
type FeatureCard struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func comingSoon() []FeatureCard {
	return []FeatureCard{
		{Title: "Find Study Partners", Description: "Match with classmates prepping for the same roles"},
		{Title: "Mock Interviews", Description: "Practice with peers targeting the same companies"},
		{Title: "Leaderboard", Description: "Earn points and climb the campus rankings"},
	}
}

func Summarize(u *domain.User) Summary {
	return Summary{
		DisplayName:  DisplayName(u),
		Initials:     Initials(u),
		Points:       u.Points,
		Level:        u.Level,
		GoalCount:    len(u.CareerGoals),
		CompanyCount: len(u.TargetCompanies),
		Major:        u.Major,
		Year:         u.Year,
		Availability: u.Availability,
		ComingSoon:   comingSoon(),
	}
}

// Initials takes the first letter of up to two name words; falls back to the
// first rune of the email, then "U".
func Initials(u *domain.User) string {
	if u.Name != "" {
		var b strings.Builder
		for _, w := range strings.Fields(u.Name) {
			r := []rune(w)[0]
			b.WriteRune(unicode.ToUpper(r))
			if b.Len() >= 2 {
				break
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	if u.Email != "" {
		return strings.ToUpper(string([]rune(u.Email)[0]))
	}
	return "U"
}

// DisplayName prefers the profile name, then the email local part.
func DisplayName(u *domain.User) string {
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		if at := strings.IndexByte(u.Email, '@'); at > 0 {
			return u.Email[:at]
		}
		return u.Email
	}
	return "User"
}
