package view

import (
	"fmt"
	"testing"

	"picsum/grid/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFormat(id string, width, height float64) string {
	return fmt.Sprintf("https://picsum.photos/id/%s/%d/%d", id, int64(width), int64(height))
}

func photos(ids ...string) []domain.Photo {
	out := make([]domain.Photo, len(ids))
	for i, id := range ids {
		out[i] = domain.Photo{ID: id, Author: "author " + id}
	}
	return out
}

var layout = Layout{Columns: 3, ScreenWidth: 390}

func TestRenderInitialLoading(t *testing.T) {
	s := domain.AppState{Loading: true, Photos: []domain.Photo{}, NextPage: 1}

	screen := Render(s, false, layout, testFormat)

	assert.Equal(t, ScreenLoading, screen.Kind)
	assert.Empty(t, screen.Cells)
}

func TestRenderInitialError(t *testing.T) {
	s := domain.AppState{Error: true, Photos: []domain.Photo{}, NextPage: 1}

	screen := Render(s, false, layout, testFormat)

	assert.Equal(t, ScreenError, screen.Kind)
	assert.Equal(t, "Failed to load photos!", screen.Message)
	assert.Empty(t, screen.Cells)
}

func TestRenderLoadingWinsOverStaleError(t *testing.T) {
	s := domain.AppState{Loading: true, Error: true, Photos: []domain.Photo{}}

	assert.Equal(t, ScreenLoading, Render(s, false, layout, testFormat).Kind)
}

func TestRenderEmptyIdleStateShowsEmptyGrid(t *testing.T) {
	screen := Render(domain.InitialState(), false, layout, testFormat)

	assert.Equal(t, ScreenGrid, screen.Kind)
	assert.Empty(t, screen.Cells)
}

func TestRenderGridHidesLaterErrors(t *testing.T) {
	s := domain.AppState{Error: true, Photos: photos("1", "2"), NextPage: 2}

	screen := Render(s, false, layout, testFormat)

	assert.Equal(t, ScreenGrid, screen.Kind)
	assert.Empty(t, screen.Message)
	require.Len(t, screen.Cells, 2)
}

func TestRenderGridHidesLaterLoading(t *testing.T) {
	s := domain.AppState{Loading: true, Photos: photos("1"), NextPage: 2}

	assert.Equal(t, ScreenGrid, Render(s, false, layout, testFormat).Kind)
}

func TestRenderGridCells(t *testing.T) {
	s := domain.AppState{Photos: photos("10", "11", "12", "13"), NextPage: 2}

	screen := Render(s, true, Layout{Columns: 3, ScreenWidth: 400}, testFormat)

	require.Len(t, screen.Cells, 4)
	assert.Equal(t, 3, screen.Columns)
	assert.Equal(t, 2, screen.NextPage)
	assert.True(t, screen.Modal.Visible)
	assert.Equal(t, ModalText, screen.Modal.Text)
	for i, c := range screen.Cells {
		assert.Equal(t, s.Photos[i], c.Photo)
		assert.InDelta(t, 133.333, c.Size, 0.001)
	}
	assert.Equal(t, "https://picsum.photos/id/10/133/133", screen.Cells[0].ImageURI)
}

func TestLayoutCellSize(t *testing.T) {
	assert.Equal(t, 130.0, Layout{Columns: 3, ScreenWidth: 390}.CellSize())
	assert.Equal(t, 0.0, Layout{Columns: 0, ScreenWidth: 390}.CellSize())
	assert.Equal(t, 0.0, Layout{Columns: -2, ScreenWidth: 390}.CellSize())
}
