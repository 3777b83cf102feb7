package domain

import (
	"errors"
	"strings"
)

// InstitutionalDomain is the only email suffix accepted at registration.
const InstitutionalDomain = "@lehigh.edu"

var ErrNotInstitutionalEmail = errors.New("email must end in " + InstitutionalDomain)

func IsInstitutionalEmail(email string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(email)), InstitutionalDomain)
}

// Fixed catalogs presented by the onboarding wizard and the profile editor.
// Free-text entries are not accepted; "Other" is the escape hatch.
var (
	Majors = []string{
		"Computer Science", "Computer Engineering", "Business", "Finance",
		"Mechanical Engineering", "Chemical Engineering", "Data Science",
		"Economics", "Psychology", "Marketing", "Industrial Engineering", "Other",
	}

	Years = []string{"2025", "2026", "2027", "2028"}

	CareerGoals = []string{
		"Software Engineering", "Product Management", "Data Science",
		"Consulting", "Investment Banking", "Marketing", "Sales",
		"UX/UI Design", "Operations", "Finance", "Research", "Other",
	}

	TargetCompanies = []string{
		"Google", "Microsoft", "Apple", "Amazon", "Meta",
		"Goldman Sachs", "JP Morgan", "Morgan Stanley", "Blackstone",
		"McKinsey & Company", "Boston Consulting Group", "Bain & Company",
		"Deloitte", "PwC", "EY", "KPMG", "Tesla", "Uber", "Airbnb", "Other",
	}

	AvailabilityOptions = []string{
		"Weekday evenings (6-9 PM)",
		"Weekend mornings (9 AM-12 PM)",
		"Weekend afternoons (1-5 PM)",
		"Flexible - any time works",
	}
)

func inCatalog(catalog []string, v string) bool {
	for _, c := range catalog {
		if c == v {
			return true
		}
	}
	return false
}

func ValidMajor(v string) bool        { return inCatalog(Majors, v) }
func ValidYear(v string) bool         { return inCatalog(Years, v) }
func ValidCareerGoal(v string) bool   { return inCatalog(CareerGoals, v) }
func ValidCompany(v string) bool      { return inCatalog(TargetCompanies, v) }
func ValidAvailability(v string) bool { return inCatalog(AvailabilityOptions, v) }
