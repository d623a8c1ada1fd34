package state

import (
	"picsum/grid/internal/domain"
)

// Reduce returns the state that follows s after ev. It never modifies s.
//
// On LoadSuccess the page counter advances from its current value rather than
// from ev.Page, so out-of-order successes still count one page each.
func Reduce(s domain.AppState, ev domain.Event) domain.AppState {
	switch e := ev.(type) {
	case domain.StartLoad:
		s.Loading = true
		s.Error = false
		return s
	case domain.LoadSuccess:
		photos := make([]domain.Photo, 0, len(s.Photos)+len(e.Photos))
		photos = append(photos, s.Photos...)
		photos = append(photos, e.Photos...)

		s.Loading = false
		s.Error = false
		s.Photos = photos
		s.NextPage = s.NextPage + 1
		return s
	case domain.LoadFailure:
		s.Loading = false
		s.Error = true
		return s
	default:
		return s
	}
}
