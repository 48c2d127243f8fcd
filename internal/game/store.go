package game

import (
	"sync"
)

// Store owns every Session instance, keyed by id, plus the current-session
// pointer that start overwrites. Terminated sessions move to an in-memory
// archive that backs statistics when no database is configured.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	current  string
	finished []*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Put registers a session and makes it current. A prior current session
// that is still active is abandoned: it counts as neither a win nor a
// loss and never reaches the archive.
func (st *Store) Put(s *Session) {
	st.mu.Lock()
	prior := st.sessions[st.current]
	st.sessions[s.ID] = s
	st.current = s.ID
	st.mu.Unlock()

	if prior != nil && prior.Active {
		// Best effort: if a turn is in flight the lock is held and the
		// orphaned session simply finishes unreferenced.
		if prior.mu.TryLock() {
			prior.state.Lock()
			prior.Active = false
			prior.state.Unlock()
			prior.mu.Unlock()
		}
	}
}

// Get returns the session with the given id, or nil.
func (st *Store) Get(id string) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[id]
}

// Current returns the session the single-tenant operations target, or nil
// when none has been started.
func (st *Store) Current() *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[st.current]
}

// End archives a terminated session and clears the current pointer if it
// still refers to it. The caller has already marked the session inactive.
func (st *Store) End(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return
	}
	delete(st.sessions, id)
	if st.current == id {
		st.current = ""
	}
	st.finished = append(st.finished, s)
}

// Finished returns a copy of the archive of terminated sessions.
func (st *Store) Finished() []*Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]*Session, len(st.finished))
	copy(out, st.finished)
	return out
}
