// Package session owns the single in-progress invoice. All mutation and
// computation that the browser UI would run on its one thread is
// serialized here behind a mutex, with persistence injected as a
// capability rather than reached for as a global.
package session

import (
	"sync"
	"time"

	"github.com/nkrishang/invoicepad/internal/draft"
	"github.com/nkrishang/invoicepad/internal/models"
	"github.com/nkrishang/invoicepad/internal/notify"
)

// Session is the per-process document context: current invoice snapshot,
// draft store, autosave timer, notice center, and the export busy flag.
type Session struct {
	mu        sync.Mutex
	inv       models.Invoice
	store     *draft.Store
	saver     *draft.Autosaver
	notices   *notify.Center
	exporting bool
}

// New restores the draft (or defaults) and arms the autosave machinery.
func New(store *draft.Store, notices *notify.Center) *Session {
	return NewWithDebounce(store, notices, draft.DebounceWindow)
}

// NewWithDebounce exists so tests can shrink the quiet window.
func NewWithDebounce(store *draft.Store, notices *notify.Center, debounce time.Duration) *Session {
	s := &Session{
		store:   store,
		notices: notices,
		inv:     store.Load(),
	}
	s.saver = draft.NewAutosaver(debounce, s.persist, func(err error) {
		// Autosave failure is non-fatal: state stays in memory and the
		// user sees a transient notice until the next save succeeds.
		notices.Push(notify.KindError, "Autosave failed: "+err.Error())
	})
	return s
}

// persist snapshots under the lock and writes outside of it.
func (s *Session) persist() error {
	return s.store.Save(s.Snapshot())
}

// Snapshot returns a copy of the current invoice. Items are cloned so
// callers cannot alias the live slice.
func (s *Session) Snapshot() models.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv := s.inv
	inv.Items = append([]models.Item(nil), s.inv.Items...)
	return inv
}

// Mutate applies fn to the invoice under the lock and, when it succeeds,
// reschedules the debounced autosave. Errors from fn leave the document
// untouched only if fn itself made no changes; fn is expected to either
// fully apply or fully reject.
func (s *Session) Mutate(fn func(*models.Invoice) error) error {
	s.mu.Lock()
	err := fn(&s.inv)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.saver.Arm()
	return nil
}

// Notices exposes the notice center for handlers.
func (s *Session) Notices() *notify.Center { return s.notices }

// BeginExport sets the export busy flag; it reports false when an export
// is already in flight, in which case the new request is rejected.
func (s *Session) BeginExport() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exporting {
		return false
	}
	s.exporting = true
	return true
}

// EndExport clears the busy flag on every exit path of an export.
func (s *Session) EndExport() {
	s.mu.Lock()
	s.exporting = false
	s.mu.Unlock()
}

// Close flushes any pending autosave. Called on shutdown.
func (s *Session) Close() error {
	return s.saver.Flush()
}
