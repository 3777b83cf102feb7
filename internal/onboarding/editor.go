package onboarding

import (
	"context"
	"sync"
	"time"

	"github.com/efuayankey/NextToIntern/internal/domain"
	"github.com/efuayankey/NextToIntern/internal/log"
)

// NoticeTTL is how long the editor's success notice stays visible.
const NoticeTTL = 3 * time.Second

// Editor is the freeform counterpart to the wizard: every section editable at
// once, one atomic save, no step sequencing and no points or completion-flag
// mutation.
type Editor struct {
	Form

	mu          sync.Mutex
	inFlight    bool
	noticeUntil time.Time

	uid     string
	store   ProfileWriter
	onSaved func(domain.ProfileAttrs)
	now     func() time.Time
}

// NewEditor seeds the form from the stored profile. onSaved is invoked with
// the saved attributes after a successful write; it may be nil.
func NewEditor(u *domain.User, store ProfileWriter, onSaved func(domain.ProfileAttrs)) *Editor {
	uid := ""
	if u != nil {
		uid = u.ID.Hex()
	}
	return &Editor{
		Form:    FormFromProfile(u),
		uid:     uid,
		store:   store,
		onSaved: onSaved,
		now:     time.Now,
	}
}

// Save writes the full attribute set. Disabled while a save is outstanding;
// failure keeps the form for retry, success shows a notice that self-clears
// after NoticeTTL.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	if e.inFlight {
		e.mu.Unlock()
		return ErrSaveInFlight
	}
	e.inFlight = true
	e.mu.Unlock()

	attrs := e.Attrs()
	err := e.store.UpdateProfileAttrs(ctx, e.uid, attrs)

	e.mu.Lock()
	e.inFlight = false
	if err == nil {
		e.noticeUntil = e.now().Add(NoticeTTL)
	}
	e.mu.Unlock()

	if err != nil {
		log.Errorf("profile save for %s: %v", e.uid, err)
		return err
	}
	if e.onSaved != nil {
		e.onSaved(attrs)
	}
	return nil
}

func (e *Editor) Saving() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inFlight
}

// Notice returns the transient success message, or "" once it has expired.
func (e *Editor) Notice() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.now().Before(e.noticeUntil) {
		return "Profile updated successfully!"
	}
	return ""
}
