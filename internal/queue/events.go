package queue

import "go.mongodb.org/mongo-driver/bson/primitive"

// Routing keys on the profile.events exchange.
const (
	KeyUserRegistered      = "user.registered"
	KeyUserLoggedIn        = "user.loggedin"
	KeyOnboardingCompleted = "onboarding.completed"
	KeyProfileUpdated      = "profile.updated"
)

type UserRegistered struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
	Name   string             `json:"name"`
}

type UserLoggedIn struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
}

type OnboardingCompleted struct {
	UserID       string   `json:"user_id"`
	Major        string   `json:"major"`
	Year         string   `json:"year"`
	CareerGoals  []string `json:"career_goals"`
	PointsBonus  int      `json:"points_bonus"`
	Availability string   `json:"availability"`
}

type ProfileUpdated struct {
	UserID string `json:"user_id"`
}
