package state

import (
	"sync"

	"picsum/grid/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Listener is called with the new state after every dispatched event, one
// dispatch at a time. A listener may call Snapshot but must not Dispatch.
type Listener func(ev domain.Event, s domain.AppState)

type StateManager interface {
	Dispatch(ev domain.Event) domain.AppState
	Snapshot() domain.AppState
	Subscribe(l Listener)
}

type memoryStateManager struct {
	// notify orders listener calls the same way as the reductions they observe.
	notify    sync.Mutex
	mutex     sync.RWMutex
	current   domain.AppState
	listeners []Listener
}

func NewStateManager(initial domain.AppState) StateManager {
	if initial.Photos == nil {
		initial.Photos = []domain.Photo{}
	}
	return &memoryStateManager{
		current: initial,
	}
}

func (s *memoryStateManager) Dispatch(ev domain.Event) domain.AppState {
	s.notify.Lock()
	defer s.notify.Unlock()

	s.mutex.Lock()
	next := Reduce(s.current, ev)
	s.current = next
	listeners := s.listeners
	s.mutex.Unlock()

	log.Debugf("Dispatched %s: loading=%t error=%t photos=%d next_page=%d",
		ev.EventType(), next.Loading, next.Error, len(next.Photos), next.NextPage)

	for _, l := range listeners {
		l(ev, next)
	}

	return next
}

// Snapshot returns the current state. Photos is shared with the store and must
// not be modified; Reduce always allocates a new slice so older snapshots stay valid.
func (s *memoryStateManager) Snapshot() domain.AppState {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.current
}

func (s *memoryStateManager) Subscribe(l Listener) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.listeners = append(s.listeners, l)
}
