package domain

// AppState is the accumulated result of every fetch issued so far.
// It is replaced wholesale on every event and never mutated in place.
type AppState struct {
	Loading  bool    `json:"loading"`
	Error    bool    `json:"error"`
	Photos   []Photo `json:"photos"`
	NextPage int     `json:"next_page"` // 1-based, grows by one per success
}

// InitialState returns the state the application starts with.
func InitialState() AppState {
	return AppState{
		Loading:  false,
		Error:    false,
		Photos:   []Photo{},
		NextPage: 1,
	}
}

// HasPhotos reports whether at least one page has been accumulated.
func (s AppState) HasPhotos() bool {
	return len(s.Photos) > 0
}
