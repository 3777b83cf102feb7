package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// User is the single per-student document in the "users" collection.
// Profile attributes stay unset until onboarding fills them in.
type User struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email              string             `bson:"email"         json:"email"`
	PasswordHash       string             `bson:"password_hash" json:"-"`
	Name               string             `bson:"name"          json:"name"`
	Points             int                `bson:"points"        json:"points"`
	Level              string             `bson:"level"         json:"level"`
	Major              string             `bson:"major,omitempty"             json:"major,omitempty"`
	Year               string             `bson:"year,omitempty"              json:"year,omitempty"`
	CareerGoals        []string           `bson:"career_goals,omitempty"      json:"careerGoals,omitempty"`
	TargetCompanies    []string           `bson:"target_companies,omitempty"  json:"targetCompanies,omitempty"`
	Availability       string             `bson:"availability,omitempty"      json:"availability,omitempty"`
	OnboardingComplete bool               `bson:"onboarding_complete" json:"onboardingComplete"`
	CreatedAt          time.Time          `bson:"created_at"    json:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

const (
	DefaultLevel = "Freshman"

	// OnboardingBonus is granted once, when the wizard completes.
	OnboardingBonus = 50
)

// ProfileAttrs is the slice of User that the wizard and the editor own.
type ProfileAttrs struct {
	Major           string   `json:"major"`
	Year            string   `json:"year"`
	CareerGoals     []string `json:"careerGoals"`
	TargetCompanies []string `json:"targetCompanies"`
	Availability    string   `json:"availability"`
}
