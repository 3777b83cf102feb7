package onboarding

import (
	"context"
	"errors"
	"sync"

	"github.com/efuayankey/NextToIntern/internal/domain"
	"github.com/efuayankey/NextToIntern/internal/log"
)

var (
	ErrStepInvalid     = errors.New("current step is not valid")
	ErrSaveInFlight    = errors.New("a save is already in flight")
	ErrAlreadyComplete = errors.New("onboarding already complete")
)

// ProfileWriter is the slice of the store the wizard and the editor need.
// *repo.Store satisfies it; tests fake it.
type ProfileWriter interface {
	CompleteOnboarding(ctx context.Context, uid string, attrs domain.ProfileAttrs) error
	UpdateProfileAttrs(ctx context.Context, uid string, attrs domain.ProfileAttrs) error
}

// Step is one screen of the wizard. Valid is a pure predicate of the form.
type Step struct {
	ID    string
	Title string
	Valid func(*Form) bool
}

func Steps() []Step {
	return []Step{
		{ID: "academic", Title: "Academic Background", Valid: func(f *Form) bool {
			return f.Major != "" && f.Year != ""
		}},
		{ID: "goals", Title: "Career Interests", Valid: func(f *Form) bool {
			return f.Goals.Len() > 0
		}},
		{ID: "companies", Title: "Target Companies", Valid: func(f *Form) bool {
			return f.Companies.Len() > 0
		}},
		{ID: "schedule", Title: "Availability", Valid: func(f *Form) bool {
			return f.Availability != ""
		}},
	}
}

// Wizard is the four-step onboarding state machine for one signed-in session.
// Advancement is gated on the current step's validator; Complete performs the
// single profile write and may be retried after a failure, never after a
// success.
type Wizard struct {
	Form

	mu       sync.Mutex
	steps    []Step
	idx      int
	inFlight bool
	done     bool

	uid        string
	store      ProfileWriter
	onComplete func(domain.ProfileAttrs)
}

// NewWizard starts at the first step with an empty form. onComplete receives
// the accumulated attributes after a successful write so whoever routes on the
// profile sees the new state without a re-fetch; it may be nil.
func NewWizard(uid string, store ProfileWriter, onComplete func(domain.ProfileAttrs)) *Wizard {
	return &Wizard{
		Form:       NewForm(),
		steps:      Steps(),
		uid:        uid,
		store:      store,
		onComplete: onComplete,
	}
}

func (w *Wizard) StepIndex() int { return w.idx }
func (w *Wizard) StepCount() int { return len(w.steps) }
func (w *Wizard) Step() Step     { return w.steps[w.idx] }

// StepValid reports whether the current step's validator passes.
func (w *Wizard) StepValid() bool { return w.steps[w.idx].Valid(&w.Form) }

// Next advances one step if the current step validates. No-op at the last
// step and when validation fails; reports whether it moved.
func (w *Wizard) Next() bool {
	if w.idx >= len(w.steps)-1 || !w.StepValid() {
		return false
	}
	w.idx++
	return true
}

// Previous steps back without re-validating. No-op at the first step.
func (w *Wizard) Previous() bool {
	if w.idx == 0 {
		return false
	}
	w.idx--
	return true
}

// CanComplete requires every step's validator to pass and no write to be
// running or already landed.
func (w *Wizard) CanComplete() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.inFlight && !w.done && w.allValid()
}

func (w *Wizard) allValid() bool {
	for i := range w.steps {
		if !w.steps[i].Valid(&w.Form) {
			return false
		}
	}
	return true
}

// Complete persists the whole form in one write, setting onboardingComplete
// and granting the welcome bonus on the store side. While the write is out
// the control is disabled; on failure local state is kept and Complete may be
// invoked again; after success it never runs twice.
func (w *Wizard) Complete(ctx context.Context) error {
	w.mu.Lock()
	if w.done {
		w.mu.Unlock()
		return ErrAlreadyComplete
	}
	if w.inFlight {
		w.mu.Unlock()
		return ErrSaveInFlight
	}
	if !w.allValid() {
		w.mu.Unlock()
		return ErrStepInvalid
	}
	w.inFlight = true
	w.mu.Unlock()

	attrs := w.Attrs()
	err := w.store.CompleteOnboarding(ctx, w.uid, attrs)

	w.mu.Lock()
	w.inFlight = false
	if err == nil {
		w.done = true
	}
	w.mu.Unlock()

	if err != nil {
		log.Errorf("onboarding complete for %s: %v", w.uid, err)
		return err
	}
	if w.onComplete != nil {
		w.onComplete(attrs)
	}
	return nil
}

// Done reports whether a Complete has landed.
func (w *Wizard) Done() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.done
}
