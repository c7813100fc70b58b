package tableorder

import (
	"sync"

	"github.com/appetiteclub/tableorder/internal/enums/itemstatus"
)

// Session owns the mutable state of one table: the active table token, the
// item collection with live submission statuses, the transient error message
// and the menu loading flag. It is created once by the application and shared
// by reference with the menu cache, the submitter and the HTTP handler.
//
// All mutations are applied as independent per-item updates under the lock,
// so concurrent in-flight submissions never clobber each other.
type Session struct {
	mu    sync.RWMutex
	table string
	// items keeps the order received from the menu service
	items []MenuItem
	// index by item code -> position in items
	index map[int]int
	// gens guards against stale submission results applying after an edit
	gens map[int]uint64

	filter      FilterMode
	errorMsg    string
	menuLoading bool
	menuLoaded  bool
}

// ItemDispatch is the snapshot handed to the submitter for one eligible
// item. Gen pins the item state the dispatch was taken from.
type ItemDispatch struct {
	Code     int
	Name     string
	Quantity int
	Gen      uint64
}

func NewSession() *Session {
	return &Session{
		index:  make(map[int]int),
		gens:   make(map[int]uint64),
		filter: FilterAll,
	}
}

// SetTable stores the active table token in memory. Persistence is handled
// by the IdentityStore before this is called.
func (s *Session) SetTable(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = token
}

// Table returns the active table token, or an empty string when the session
// has no identity yet.
func (s *Session) Table() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// ReplaceItems swaps in a freshly loaded collection. Every generation is
// bumped so results from submissions dispatched against the old collection
// are discarded when they arrive late.
func (s *Session) ReplaceItems(items []MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]MenuItem, len(items))
	copy(s.items, items)
	s.index = make(map[int]int, len(items))
	for i := range s.items {
		code := s.items[i].Code
		s.index[code] = i
		s.gens[code]++
	}
	s.menuLoaded = true
}

// Items returns a copy of the collection in menu order.
func (s *Session) Items() []MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]MenuItem, len(s.items))
	copy(out, s.items)
	return out
}

// Item returns the item with the given code.
func (s *Session) Item(code int) (MenuItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[code]
	if !ok {
		return MenuItem{}, false
	}
	return s.items[i], true
}

// SetQuantity updates an item's quantity and forces it back to idle: a
// changed quantity invalidates any prior submission outcome. It returns a
// snapshot of the collection for the caller to persist.
func (s *Session) SetQuantity(code, qty int) ([]MenuItem, error) {
	if qty < 0 {
		return nil, &ValidationError{Field: "quantity", Message: "quantity cannot be negative"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[code]
	if !ok {
		return nil, &NotFoundError{Code: code}
	}

	s.items[i].Quantity = qty
	s.items[i].Status = itemstatus.Statuses.Idle.Code()
	s.gens[code]++

	out := make([]MenuItem, len(s.items))
	copy(out, s.items)
	return out, nil
}

// BeginSubmission atomically selects the eligible items and marks them
// loading. It refuses to start while a previous submission still has items
// in flight, so two submits can never interleave on the same item.
func (s *Session) BeginSubmission() ([]ItemDispatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Status == itemstatus.Statuses.Loading.Code() {
			return nil, ErrSubmissionInProgress
		}
	}

	var dispatches []ItemDispatch
	for i := range s.items {
		if !s.items[i].Eligible() {
			continue
		}
		s.items[i].Status = itemstatus.Statuses.Loading.Code()
		dispatches = append(dispatches, ItemDispatch{
			Code:     s.items[i].Code,
			Name:     s.items[i].Name,
			Quantity: s.items[i].Quantity,
			Gen:      s.gens[s.items[i].Code],
		})
	}
	return dispatches, nil
}

// ApplyOutcome settles one item's submission. The outcome is dropped when
// the item no longer exists or its generation moved on (a quantity edit or a
// collection swap happened while the request was in flight).
func (s *Session) ApplyOutcome(code int, gen uint64, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[code]
	if !ok {
		return false
	}
	if s.gens[code] != gen {
		return false
	}
	if s.items[i].Status != itemstatus.Statuses.Loading.Code() {
		return false
	}

	s.items[i].Status = status
	return true
}

// HasInFlight reports whether any item is currently loading.
func (s *Session) HasInFlight() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.items {
		if s.items[i].Status == itemstatus.Statuses.Loading.Code() {
			return true
		}
	}
	return false
}

// SetError records the user-facing error message. Later failures overwrite
// earlier ones; the presentation shows one transient notification at a time.
func (s *Session) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorMsg = msg
}

// ErrorMessage returns the current error message, or an empty string.
func (s *Session) ErrorMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errorMsg
}

// DismissError clears the current error message.
func (s *Session) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorMsg = ""
}

// BeginMenuLoad flips the loading flag if a load is allowed: one load per
// session, never while another load is running, never after the collection
// is already populated.
func (s *Session) BeginMenuLoad() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.menuLoading || s.menuLoaded {
		return false
	}
	s.menuLoading = true
	return true
}

// FinishMenuLoad clears the loading flag and, when the load succeeded,
// installs the collection. The flag clears on the failure path too so the
// presentation is never stuck on a spinner.
func (s *Session) FinishMenuLoad(items []MenuItem) {
	if items != nil {
		s.ReplaceItems(items)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menuLoading = false
}

// MenuLoading reports whether a menu load is in progress.
func (s *Session) MenuLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.menuLoading
}

// SetFilter switches the projection mode used by FilteredItems.
func (s *Session) SetFilter(mode FilterMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = mode
}

// Filter returns the current projection mode.
func (s *Session) Filter() FilterMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// FilteredItems projects the collection through the session's filter mode.
func (s *Session) FilteredItems() []MenuItem {
	s.mu.RLock()
	mode := s.filter
	items := make([]MenuItem, len(s.items))
	copy(items, s.items)
	s.mu.RUnlock()
	return View(items, mode)
}
