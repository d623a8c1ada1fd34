package view

import (
	"picsum/grid/internal/domain"
)

type ScreenKind string

func (k ScreenKind) String() string {
	return string(k)
}

const (
	ScreenLoading ScreenKind = "loading" // First page in flight, nothing to show yet
	ScreenError   ScreenKind = "error"   // First page failed
	ScreenGrid    ScreenKind = "grid"    // At least one page, or nothing has gone wrong
)

const FailureMessage = "Failed to load photos!"

const ModalText = "This is my 3/4 modal"

// URIFormatter builds the display URL of a photo at a pixel size.
type URIFormatter func(id string, width, height float64) string

// Layout describes how the grid divides the screen.
type Layout struct {
	Columns     int
	ScreenWidth float64
}

// CellSize is the square edge of one grid cell. Columns is not validated;
// a non-positive column count yields zero-size cells.
func (l Layout) CellSize() float64 {
	if l.Columns <= 0 {
		return 0
	}
	return l.ScreenWidth / float64(l.Columns)
}

type Cell struct {
	Photo    domain.Photo `json:"photo"`
	ImageURI string       `json:"image_uri"`
	Size     float64      `json:"size"`
}

type Modal struct {
	Visible bool   `json:"visible"`
	Text    string `json:"text"`
}

// Screen is everything needed to draw one frame of the app.
type Screen struct {
	Kind     ScreenKind `json:"kind"`
	Message  string     `json:"message,omitempty"`
	Columns  int        `json:"columns,omitempty"`
	Cells    []Cell     `json:"cells,omitempty"`
	Modal    Modal      `json:"modal"`
	NextPage int        `json:"next_page"`
}

// Render picks the screen for s. Loading and error flags only matter while no
// photo has arrived; afterwards the grid is always shown.
func Render(s domain.AppState, modalVisible bool, layout Layout, format URIFormatter) Screen {
	screen := Screen{
		Modal:    Modal{Visible: modalVisible, Text: ModalText},
		NextPage: s.NextPage,
	}

	if !s.HasPhotos() {
		if s.Loading {
			screen.Kind = ScreenLoading
			return screen
		}
		if s.Error {
			screen.Kind = ScreenError
			screen.Message = FailureMessage
			return screen
		}
	}

	size := layout.CellSize()
	cells := make([]Cell, len(s.Photos))
	for i, p := range s.Photos {
		cells[i] = Cell{
			Photo:    p,
			ImageURI: format(p.ID, size, size),
			Size:     size,
		}
	}

	screen.Kind = ScreenGrid
	screen.Columns = layout.Columns
	screen.Cells = cells
	return screen
}
