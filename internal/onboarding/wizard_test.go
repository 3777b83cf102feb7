package onboarding

import (
	"context"
	"errors"
	"testing"

	"github.com/efuayankey/NextToIntern/internal/domain"
)

type fakeWriter struct {
	completes []domain.ProfileAttrs
	updates   []domain.ProfileAttrs
	err       error
	block     chan struct{} // when set, CompleteOnboarding waits on it
}

func (f *fakeWriter) CompleteOnboarding(ctx context.Context, uid string, attrs domain.ProfileAttrs) error {
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return f.err
	}
	f.completes = append(f.completes, attrs)
	return nil
}

func (f *fakeWriter) UpdateProfileAttrs(ctx context.Context, uid string, attrs domain.ProfileAttrs) error {
	if f.err != nil {
		return f.err
	}
	f.updates = append(f.updates, attrs)
	return nil
}

func filledWizard(w *Wizard) {
	w.SetMajor("Computer Science")
	w.SetYear("2026")
	w.ToggleGoal("Software Engineering")
	w.ToggleCompany("Google")
	w.SetAvailability("Flexible - any time works")
}

func TestWizard_StepGating(t *testing.T) {
	w := NewWizard("u1", &fakeWriter{}, nil)

	// academic: needs both major and year
	if w.Next() {
		t.Fatal("Next must be a no-op on an empty academic step")
	}
	w.SetMajor("Computer Science")
	if w.Next() {
		t.Fatal("major alone must not unlock the academic step")
	}
	w.SetYear("2026")
	if !w.Next() || w.StepIndex() != 1 {
		t.Fatalf("expected advance to goals, at %d", w.StepIndex())
	}

	// goals: needs at least one member
	if w.Next() {
		t.Fatal("Next must be a no-op with no goals selected")
	}
	w.ToggleGoal("Consulting")
	if !w.Next() || w.StepIndex() != 2 {
		t.Fatalf("expected advance to companies, at %d", w.StepIndex())
	}

	// companies: same rule
	if w.Next() {
		t.Fatal("Next must be a no-op with no companies selected")
	}
	w.ToggleCompany("Google")
	if !w.Next() || w.StepIndex() != 3 {
		t.Fatalf("expected advance to schedule, at %d", w.StepIndex())
	}

	// schedule is the last step; Next never goes past it
	w.SetAvailability("Flexible - any time works")
	if w.Next() {
		t.Fatal("Next at the last step must be a no-op")
	}
	if w.StepIndex() != 3 {
		t.Fatalf("index must stay clamped, got %d", w.StepIndex())
	}
}

func TestWizard_PreviousNeverValidates(t *testing.T) {
	w := NewWizard("u1", &fakeWriter{}, nil)
	if w.Previous() {
		t.Fatal("Previous at step 0 must be a no-op")
	}
	w.SetMajor("Business")
	w.SetYear("2027")
	w.Next()
	w.ToggleGoal("Finance")
	w.Next()

	// going back is always allowed, even off an invalid-looking state
	w.ToggleGoal("Finance") // now empty again
	if !w.Previous() || w.StepIndex() != 1 {
		t.Fatalf("Previous must step back unconditionally, at %d", w.StepIndex())
	}
	if !w.Previous() || w.StepIndex() != 0 {
		t.Fatalf("Previous must step back to 0, at %d", w.StepIndex())
	}
}

func TestWizard_ToggleIdempotence(t *testing.T) {
	w := NewWizard("u1", &fakeWriter{}, nil)

	if on := w.ToggleGoal("Research"); !on {
		t.Fatal("first toggle must add")
	}
	if on := w.ToggleGoal("Research"); on {
		t.Fatal("second toggle must remove")
	}
	if w.Goals.Len() != 0 {
		t.Fatalf("double toggle must restore the set, len=%d", w.Goals.Len())
	}

	w.ToggleGoal("Research")
	w.ToggleGoal("Research")
	w.ToggleGoal("Research")
	if w.Goals.Len() != 1 || !w.Goals.Has("Research") {
		t.Fatalf("odd toggles must leave exactly one member, got %v", w.Goals.Slice())
	}
}

func TestWizard_CompleteRequiresAllSteps(t *testing.T) {
	fw := &fakeWriter{}
	w := NewWizard("u1", fw, nil)

	w.SetMajor("Computer Science")
	w.SetYear("2026")
	if err := w.Complete(context.Background()); !errors.Is(err, ErrStepInvalid) {
		t.Fatalf("partial form must not complete, got %v", err)
	}
	if len(fw.completes) != 0 {
		t.Fatal("no write may happen before all validators pass")
	}

	filledWizard(w)
	if err := w.Complete(context.Background()); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if len(fw.completes) != 1 {
		t.Fatalf("expected one write, got %d", len(fw.completes))
	}
	got := fw.completes[0]
	if got.Major != "Computer Science" || got.Year != "2026" || got.Availability != "Flexible - any time works" {
		t.Fatalf("written attrs mismatch: %+v", got)
	}
	if len(got.CareerGoals) != 1 || got.CareerGoals[0] != "Software Engineering" {
		t.Fatalf("goals mismatch: %v", got.CareerGoals)
	}
	if len(got.TargetCompanies) != 1 || got.TargetCompanies[0] != "Google" {
		t.Fatalf("companies mismatch: %v", got.TargetCompanies)
	}
}

func TestWizard_CompleteOnlyOnce(t *testing.T) {
	fw := &fakeWriter{}
	w := NewWizard("u1", fw, nil)
	filledWizard(w)

	if err := w.Complete(context.Background()); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !w.Done() {
		t.Fatal("wizard must report done after a successful complete")
	}
	if err := w.Complete(context.Background()); !errors.Is(err, ErrAlreadyComplete) {
		t.Fatalf("second complete must be rejected, got %v", err)
	}
	if len(fw.completes) != 1 {
		t.Fatalf("store must see exactly one write, got %d", len(fw.completes))
	}
}

func TestWizard_CompleteRetryAfterFailure(t *testing.T) {
	fw := &fakeWriter{err: errors.New("store down")}
	w := NewWizard("u1", fw, nil)
	filledWizard(w)

	if err := w.Complete(context.Background()); err == nil {
		t.Fatal("expected write failure")
	}
	if w.Done() {
		t.Fatal("failed complete must not latch done")
	}
	// local state survives the failure
	if w.Major != "Computer Science" || w.Goals.Len() != 1 {
		t.Fatal("form state must be kept after a failed write")
	}

	fw.err = nil
	if err := w.Complete(context.Background()); err != nil {
		t.Fatalf("retry must work: %v", err)
	}
	if len(fw.completes) != 1 {
		t.Fatalf("expected one successful write, got %d", len(fw.completes))
	}
}

func TestWizard_CompleteGuardsInFlight(t *testing.T) {
	fw := &fakeWriter{block: make(chan struct{})}
	w := NewWizard("u1", fw, nil)
	filledWizard(w)

	done := make(chan error, 1)
	go func() { done <- w.Complete(context.Background()) }()

	// wait until the first write is holding the in-flight flag
	for w.CanComplete() {
	}
	if err := w.Complete(context.Background()); !errors.Is(err, ErrSaveInFlight) {
		t.Fatalf("concurrent complete must be rejected, got %v", err)
	}

	close(fw.block)
	if err := <-done; err != nil {
		t.Fatalf("first complete: %v", err)
	}
}

func TestWizard_OnCompleteCallback(t *testing.T) {
	var published *domain.ProfileAttrs
	w := NewWizard("u1", &fakeWriter{}, func(a domain.ProfileAttrs) { published = &a })
	filledWizard(w)

	if err := w.Complete(context.Background()); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if published == nil || published.Major != "Computer Science" {
		t.Fatalf("onComplete must receive the written attrs, got %+v", published)
	}
}
