package selection

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"roster/internal/catalog"
	"roster/internal/document"
	"roster/internal/log"
)

// Phase is the lifecycle state of a selection session.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseCommitted
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseCommitted:
		return "committed"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ErrSessionClosed is returned when a command is applied to a session that
// has already been committed or cancelled.
var ErrSessionClosed = errors.New("selection session is closed")

// UnknownCapabilityWarning records a toggle of an id absent from the catalog.
// The toggle still takes effect: stale references must survive catalog churn,
// so unknown ids are warned about, never rejected or dropped.
type UnknownCapabilityWarning struct {
	ID string
}

func (w UnknownCapabilityWarning) String() string {
	return fmt.Sprintf("agent %q is not in the current catalog", w.ID)
}

// Session edits a project's activation set through discrete commands. A
// presentation layer drives it with Toggle/ActivateCategory/.../Commit; a
// whole editing session becomes one atomic document rewrite on Commit, and
// nothing touches disk before that.
type Session struct {
	id       string
	cat      *catalog.Catalog
	docPath  string
	doc      *document.Document
	state    State
	original State
	phase    Phase
	warnings []UnknownCapabilityWarning
}

// NewSession loads the document at docPath and opens an editing session
// against it.
func NewSession(cat *catalog.Catalog, docPath string) (*Session, error) {
	doc, err := document.Read(docPath)
	if err != nil {
		return nil, err
	}
	return newSession(cat, docPath, doc), nil
}

func newSession(cat *catalog.Catalog, docPath string, doc *document.Document) *Session {
	state := State(doc.ActiveIDs())
	s := &Session{
		id:       uuid.NewString(),
		cat:      cat,
		docPath:  docPath,
		doc:      doc,
		state:    state,
		original: state.Clone(),
		phase:    PhaseEditing,
	}
	log.Debug(log.CatSelect, "Session opened", "session", s.id, "doc", docPath, "active", len(state))
	return s
}

// ID returns the session's correlation id.
func (s *Session) ID() string {
	return s.id
}

// Phase returns the session's lifecycle state.
func (s *Session) Phase() Phase {
	return s.phase
}

// Active returns a copy of the current activation set.
func (s *Session) Active() State {
	return s.state.Clone()
}

// Changed reports whether the set differs from the one loaded from disk.
func (s *Session) Changed() bool {
	return !s.state.Equal(s.original)
}

// Warnings returns the unknown-capability warnings recorded so far.
func (s *Session) Warnings() []UnknownCapabilityWarning {
	return s.warnings
}

// Toggle flips membership of id. Ids unknown to the catalog are still
// toggled; a warning is recorded and surfaced to the caller.
func (s *Session) Toggle(id string) error {
	if s.phase != PhaseEditing {
		return ErrSessionClosed
	}
	if !s.cat.Has(id) {
		s.warnings = append(s.warnings, UnknownCapabilityWarning{ID: id})
		log.Warn(log.CatSelect, "Toggling unknown agent", "session", s.id, "agent", id)
	}
	s.state = s.state.Toggle(id)
	return nil
}

// ActivateCategory adds every catalog agent of cat to the set.
func (s *Session) ActivateCategory(cat catalog.Category) error {
	if s.phase != PhaseEditing {
		return ErrSessionClosed
	}
	s.state = s.state.Union(categoryIDs(s.cat, cat))
	return nil
}

// DeactivateCategory removes every catalog agent of cat from the set.
func (s *Session) DeactivateCategory(cat catalog.Category) error {
	if s.phase != PhaseEditing {
		return ErrSessionClosed
	}
	s.state = s.state.Difference(categoryIDs(s.cat, cat))
	return nil
}

// ActivateAll adds every catalog agent to the set.
func (s *Session) ActivateAll() error {
	if s.phase != PhaseEditing {
		return ErrSessionClosed
	}
	s.state = s.state.Union(s.cat.AllIDs())
	return nil
}

// DeactivateAll removes every catalog agent from the set. Unknown ids are
// retained: only the catalog's own ids are subtracted.
func (s *Session) DeactivateAll() error {
	if s.phase != PhaseEditing {
		return ErrSessionClosed
	}
	s.state = s.state.Difference(s.cat.AllIDs())
	return nil
}

// Discarded lists what ResetToBaseline would remove, sorted. Callers must
// surface this to the user before executing the reset: it is the one
// operation that is destructive to non-baseline selections.
func (s *Session) Discarded() []string {
	return s.state.Difference(s.cat.BaselineIDs()).IDs()
}

// ResetToBaseline replaces the set with exactly the baseline ids, discarding
// everything else, and returns what was discarded.
func (s *Session) ResetToBaseline() ([]string, error) {
	if s.phase != PhaseEditing {
		return nil, ErrSessionClosed
	}
	discarded := s.Discarded()
	s.state = State(s.cat.BaselineIDs())
	log.Info(log.CatSelect, "Reset to baseline", "session", s.id, "discarded", len(discarded))
	return discarded, nil
}

// Commit rewrites the document with the session's activation set and closes
// the session. The rewrite replaces only the Active Capabilities section;
// every other section is preserved byte-for-byte, and the write is atomic.
func (s *Session) Commit() error {
	if s.phase != PhaseEditing {
		return ErrSessionClosed
	}
	updated := s.doc.WithActiveIDs(s.state)
	if err := document.Write(s.docPath, updated); err != nil {
		return fmt.Errorf("committing selection: %w", err)
	}
	s.phase = PhaseCommitted
	log.Info(log.CatSelect, "Session committed", "session", s.id, "active", len(s.state))
	return nil
}

// Cancel closes the session without touching disk.
func (s *Session) Cancel() {
	if s.phase != PhaseEditing {
		return
	}
	s.phase = PhaseCancelled
	log.Debug(log.CatSelect, "Session cancelled", "session", s.id)
}

func categoryIDs(c *catalog.Catalog, cat catalog.Category) map[string]bool {
	ids := make(map[string]bool)
	for _, a := range c.ByCategory(cat) {
		ids[a.ID()] = true
	}
	return ids
}
