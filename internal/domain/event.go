package domain

type EventType string

func (e EventType) String() string {
	return string(e)
}

const (
	EventTypeStartLoad   EventType = "START_LOAD"
	EventTypeLoadSuccess EventType = "LOAD_SUCCESS"
	EventTypeLoadFailure EventType = "LOAD_FAILURE"
)

// Event is one of StartLoad, LoadSuccess or LoadFailure.
type Event interface {
	EventType() EventType
	isEvent()
}

type StartLoad struct{}

func (StartLoad) EventType() EventType { return EventTypeStartLoad }
func (StartLoad) isEvent()             {}

type LoadSuccess struct {
	Photos []Photo `json:"photos"`
	Page   int     `json:"page"` // Page that was requested
}

func (LoadSuccess) EventType() EventType { return EventTypeLoadSuccess }
func (LoadSuccess) isEvent()             {}

type LoadFailure struct {
	Err error `json:"-"`
}

func (LoadFailure) EventType() EventType { return EventTypeLoadFailure }
func (LoadFailure) isEvent()             {}
