package session

import (
	"context"
	"errors"
	"testing"

	"github.com/efuayankey/NextToIntern/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeFetcher struct {
	users map[string]*domain.User
	err   error
	calls int
}

func (f *fakeFetcher) GetProfile(ctx context.Context, uid string) (*domain.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.users[uid], nil
}

func TestBroker_ImmediateAndOrderedDelivery(t *testing.T) {
	b := NewBroker()

	var got []string
	unsub1 := b.Subscribe(func(id *Identity) {
		if id == nil {
			got = append(got, "a:nil")
		} else {
			got = append(got, "a:"+id.UID)
		}
	})
	defer unsub1()

	if len(got) != 1 || got[0] != "a:nil" {
		t.Fatalf("subscribe must fire immediately with current state, got %v", got)
	}

	unsub2 := b.Subscribe(func(id *Identity) {
		if id != nil {
			got = append(got, "b:"+id.UID)
		}
	})

	b.SignIn(Identity{UID: "u1"})
	if len(got) != 3 || got[1] != "a:u1" || got[2] != "b:u1" {
		t.Fatalf("delivery must follow registration order, got %v", got)
	}

	unsub2()
	b.SignIn(Identity{UID: "u2"})
	for _, g := range got {
		if g == "b:u2" {
			t.Fatal("unsubscribed listener must not be called")
		}
	}
}

func TestGate_RoutesLoginWhenSignedOut(t *testing.T) {
	b := NewBroker()
	g := NewGate(&fakeFetcher{})
	g.Start(b)
	defer g.Close()

	if r := g.Route(); r != RouteLogin {
		t.Fatalf("want login, got %s", r)
	}

	// a cached profile must not matter once signed out
	b.SignIn(Identity{UID: "u1"})
	b.SignOut()
	if r := g.Route(); r != RouteLogin {
		t.Fatalf("want login after sign-out, got %s", r)
	}
}

func TestGate_RoutesOnboardingUntilComplete(t *testing.T) {
	uid := primitive.NewObjectID()
	ff := &fakeFetcher{users: map[string]*domain.User{
		uid.Hex(): {ID: uid, Email: "jdoe@lehigh.edu", OnboardingComplete: false},
	}}
	b := NewBroker()
	g := NewGate(ff)
	g.Start(b)
	defer g.Close()

	b.SignIn(Identity{UID: uid.Hex(), Email: "jdoe@lehigh.edu"})
	if r := g.Route(); r != RouteOnboarding {
		t.Fatalf("incomplete profile must route to onboarding, got %s", r)
	}

	ff.users[uid.Hex()].OnboardingComplete = true
	b.SignOut()
	b.SignIn(Identity{UID: uid.Hex(), Email: "jdoe@lehigh.edu"})
	if r := g.Route(); r != RouteDashboard {
		t.Fatalf("complete profile must route to dashboard, got %s", r)
	}
}

func TestGate_FetchFailureDegradesToOnboarding(t *testing.T) {
	ff := &fakeFetcher{err: errors.New("store down")}
	b := NewBroker()
	g := NewGate(ff)
	g.Start(b)
	defer g.Close()

	b.SignIn(Identity{UID: "u1"})
	if r := g.Route(); r != RouteOnboarding {
		t.Fatalf("fetch failure must degrade to onboarding, got %s", r)
	}
}

func TestGate_MissingDocumentRoutesOnboarding(t *testing.T) {
	ff := &fakeFetcher{users: map[string]*domain.User{}}
	b := NewBroker()
	g := NewGate(ff)
	g.Start(b)
	defer g.Close()

	b.SignIn(Identity{UID: "ghost"})
	if r := g.Route(); r != RouteOnboarding {
		t.Fatalf("missing document must route to onboarding, got %s", r)
	}
}

func TestGate_ApplyCompletedFlipsRouteWithoutRefetch(t *testing.T) {
	uid := primitive.NewObjectID()
	ff := &fakeFetcher{users: map[string]*domain.User{
		uid.Hex(): {ID: uid, Email: "jdoe@lehigh.edu", Points: 0, Level: domain.DefaultLevel},
	}}
	b := NewBroker()
	g := NewGate(ff)
	g.Start(b)
	defer g.Close()

	b.SignIn(Identity{UID: uid.Hex(), Email: "jdoe@lehigh.edu"})
	if r := g.Route(); r != RouteOnboarding {
		t.Fatalf("precondition: want onboarding, got %s", r)
	}
	fetches := ff.calls

	g.ApplyCompleted(domain.ProfileAttrs{
		Major:           "Computer Science",
		Year:            "2026",
		CareerGoals:     []string{"Software Engineering"},
		TargetCompanies: []string{"Google"},
		Availability:    "Flexible - any time works",
	})

	if r := g.Route(); r != RouteDashboard {
		t.Fatalf("completion must flip routing locally, got %s", r)
	}
	if ff.calls != fetches {
		t.Fatal("no re-fetch may be required for the route to flip")
	}
	p := g.Profile()
	if p.Points != domain.OnboardingBonus || !p.OnboardingComplete {
		t.Fatalf("bonus and flag must be applied locally: %+v", p)
	}

	// idempotent: a second apply cannot double-grant
	g.ApplyCompleted(domain.ProfileAttrs{Major: "Computer Science"})
	if g.Profile().Points != domain.OnboardingBonus {
		t.Fatalf("bonus granted twice: %d", g.Profile().Points)
	}
}

func TestGate_ApplySavedKeepsPointsAndFlag(t *testing.T) {
	uid := primitive.NewObjectID()
	ff := &fakeFetcher{users: map[string]*domain.User{
		uid.Hex(): {ID: uid, Points: 50, OnboardingComplete: true},
	}}
	b := NewBroker()
	g := NewGate(ff)
	g.Start(b)
	defer g.Close()

	b.SignIn(Identity{UID: uid.Hex()})
	g.ApplySaved(domain.ProfileAttrs{Major: "Finance", Year: "2027"})

	p := g.Profile()
	if p.Major != "Finance" || p.Year != "2027" {
		t.Fatalf("attrs not applied: %+v", p)
	}
	if p.Points != 50 || !p.OnboardingComplete {
		t.Fatalf("editor save must not touch points or the flag: %+v", p)
	}
}
