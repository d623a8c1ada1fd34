package server

import (
	"encoding/json"
	"net/http"

	"picsum/grid/internal/controller"
	"picsum/grid/internal/view"

	"github.com/andybalholm/brotli"
	log "github.com/sirupsen/logrus"
)

type handlers struct {
	ctrl *controller.Controller
}

type EndReachedResponse struct {
	Issued  bool   `json:"issued"`
	FetchID string `json:"fetch_id,omitempty"`
	Page    int    `json:"page,omitempty"`
}

type ModalResponse struct {
	Visible bool `json:"visible"`
}

func (h *handlers) page(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	body := brotli.HTTPCompressor(w, r)
	defer body.Close()

	if err := view.WritePage(body, h.ctrl.Screen()); err != nil {
		log.Errorf("❌ Failed to write page: %v", err)
	}
}

func (h *handlers) screen(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.ctrl.Screen())
}

func (h *handlers) state(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.ctrl.State())
}

func (h *handlers) endReached(w http.ResponseWriter, r *http.Request) {
	f := h.ctrl.EndReached()
	if f == nil {
		writeJSON(w, r, http.StatusOK, EndReachedResponse{Issued: false})
		return
	}
	writeJSON(w, r, http.StatusAccepted, EndReachedResponse{
		Issued:  true,
		FetchID: f.ID().String(),
		Page:    f.Page(),
	})
}

func (h *handlers) showModal(w http.ResponseWriter, r *http.Request) {
	h.ctrl.ShowModal()
	writeJSON(w, r, http.StatusOK, ModalResponse{Visible: h.ctrl.ModalVisible()})
}

func (h *handlers) hideModal(w http.ResponseWriter, r *http.Request) {
	h.ctrl.HideModal()
	writeJSON(w, r, http.StatusOK, ModalResponse{Visible: h.ctrl.ModalVisible()})
}

// writeJSON encodes v, brotli or gzip compressed when the client accepts it.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	body := brotli.HTTPCompressor(w, r)
	defer body.Close()

	w.WriteHeader(status)
	if err := json.NewEncoder(body).Encode(v); err != nil {
		log.Errorf("❌ Failed to encode response: %v", err)
	}
}
