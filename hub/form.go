package hub

import "sync"

// FormSession tracks whether a save started from one particular form is
// still pending. Each open invoice form owns one session, so blocking one
// form's resubmission never blocks another form.
type FormSession struct {
	mu       sync.Mutex
	inFlight bool
}

func (s *FormSession) tryBegin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

func (s *FormSession) end() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}
