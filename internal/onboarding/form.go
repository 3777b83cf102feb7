package onboarding

import "github.com/efuayankey/NextToIntern/internal/domain"

// Form is the attribute state shared by the wizard and the editor: three
// single-valued fields overwritten last-write-wins, two toggle sets.
type Form struct {
	Major        string
	Year         string
	Availability string
	Goals        domain.StringSet
	Companies    domain.StringSet
}

func NewForm() Form {
	return Form{Goals: domain.NewStringSet(), Companies: domain.NewStringSet()}
}

// FormFromProfile seeds the editor with the stored attributes.
func FormFromProfile(u *domain.User) Form {
	f := NewForm()
	if u == nil {
		return f
	}
	f.Major = u.Major
	f.Year = u.Year
	f.Availability = u.Availability
	for _, g := range u.CareerGoals {
		f.Goals.Add(g)
	}
	for _, c := range u.TargetCompanies {
		f.Companies.Add(c)
	}
	return f
}

func (f *Form) SetMajor(v string)        { f.Major = v }
func (f *Form) SetYear(v string)         { f.Year = v }
func (f *Form) SetAvailability(v string) { f.Availability = v }

func (f *Form) ToggleGoal(v string) bool    { return f.Goals.Toggle(v) }
func (f *Form) ToggleCompany(v string) bool { return f.Companies.Toggle(v) }

func (f *Form) Attrs() domain.ProfileAttrs {
	return domain.ProfileAttrs{
		Major:           f.Major,
		Year:            f.Year,
		CareerGoals:     f.Goals.Slice(),
		TargetCompanies: f.Companies.Slice(),
		Availability:    f.Availability,
	}
}
