package session

import (
	"context"
	"sync"
	"time"

	"github.com/efuayankey/NextToIntern/internal/domain"
	"github.com/efuayankey/NextToIntern/internal/log"
)

type Route int

const (
	RouteLogin Route = iota
	RouteLoading
	RouteOnboarding
	RouteDashboard
)

func (r Route) String() string {
	switch r {
	case RouteLogin:
		return "login"
	case RouteLoading:
		return "loading"
	case RouteOnboarding:
		return "onboarding"
	case RouteDashboard:
		return "dashboard"
	}
	return "unknown"
}

// ProfileFetcher is the read side of the store the gate needs.
type ProfileFetcher interface {
	GetProfile(ctx context.Context, uid string) (*domain.User, error)
}

// Gate watches the auth-state stream and resolves which view a session sees.
// A fetch failure degrades to "not onboarded" rather than failing the session.
type Gate struct {
	mu       sync.Mutex
	identity *Identity
	profile  *domain.User
	loaded   bool

	fetch ProfileFetcher
	unsub func()
}

func NewGate(fetch ProfileFetcher) *Gate {
	return &Gate{fetch: fetch}
}

// Start subscribes to the broker; the first notification fires before Start
// returns. Close releases the subscription.
func (g *Gate) Start(b *Broker) {
	g.unsub = b.Subscribe(g.onAuthChange)
}

func (g *Gate) Close() {
	if g.unsub != nil {
		g.unsub()
		g.unsub = nil
	}
}

func (g *Gate) onAuthChange(id *Identity) {
	if id == nil {
		g.mu.Lock()
		g.identity = nil
		g.profile = nil
		g.loaded = false
		g.mu.Unlock()
		return
	}

	g.mu.Lock()
	g.identity = id
	g.loaded = false
	g.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	u, err := g.fetch.GetProfile(ctx, id.UID)
	if err != nil {
		log.Errorf("profile fetch for %s: %v", id.UID, err)
		u = nil // treated as not onboarded
	}

	g.mu.Lock()
	g.profile = u
	g.loaded = true
	g.mu.Unlock()
}

func (g *Gate) Route() Route {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch {
	case g.identity == nil:
		return RouteLogin
	case !g.loaded:
		return RouteLoading
	case g.profile == nil || !g.profile.OnboardingComplete:
		return RouteOnboarding
	default:
		return RouteDashboard
	}
}

func (g *Gate) Profile() *domain.User {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.profile
}

// PublishProfile replaces the local profile copy. Writers call this after a
// successful store write so routing flips without waiting for a re-fetch.
func (g *Gate) PublishProfile(u *domain.User) {
	g.mu.Lock()
	g.profile = u
	g.loaded = true
	g.mu.Unlock()
}

// ApplyCompleted is wired as the wizard's onComplete callback: it folds the
// written attributes into the local copy, latches the completion flag and
// grants the bonus, mirroring what the store write just did.
func (g *Gate) ApplyCompleted(attrs domain.ProfileAttrs) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.profile == nil {
		g.profile = &domain.User{Level: domain.DefaultLevel}
		if g.identity != nil {
			g.profile.Email = g.identity.Email
		}
	}
	applyAttrs(g.profile, attrs)
	if !g.profile.OnboardingComplete {
		g.profile.OnboardingComplete = true
		g.profile.Points += domain.OnboardingBonus
	}
	g.loaded = true
}

// ApplySaved is the editor's onSaved callback: attributes only.
func (g *Gate) ApplySaved(attrs domain.ProfileAttrs) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.profile == nil {
		return
	}
	applyAttrs(g.profile, attrs)
}

func applyAttrs(u *domain.User, attrs domain.ProfileAttrs) {
	u.Major = attrs.Major
	u.Year = attrs.Year
	u.CareerGoals = attrs.CareerGoals
	u.TargetCompanies = attrs.TargetCompanies
	u.Availability = attrs.Availability
	u.UpdatedAt = time.Now().UTC()
}
