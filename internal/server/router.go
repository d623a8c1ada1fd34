package server

import (
	"fmt"
	"net/http"

	"picsum/grid/internal/controller"
	"picsum/grid/internal/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(ctrl *controller.Controller, m *metrics.Metrics) *mux.Router {
	h := &handlers{ctrl: ctrl}

	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")
	r.HandleFunc("/", h.page).Methods("GET")
	r.HandleFunc("/api/screen", h.screen).Methods("GET")
	r.HandleFunc("/api/state", h.state).Methods("GET")
	r.HandleFunc("/api/end-reached", h.endReached).Methods("POST")
	r.HandleFunc("/api/modal/show", h.showModal).Methods("POST")
	r.HandleFunc("/api/modal/hide", h.hideModal).Methods("POST")
	if m != nil {
		r.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})).Methods("GET")
	}
	return r
}
