// Package http exposes a small debug surface over a running machine: the
// active state, the chart shape, and an event-injection endpoint.
package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/espalier/pkg/domain"
)

// Machine is the slice of the engine the server needs.
type Machine interface {
	Current() domain.StateID
	Previous() domain.StateID
	Terminated() bool
	TerminationValue() int32
	Dispatch(ev domain.Event) (int32, error)
}

// Server serves introspection over one machine. The engine is single-threaded
// by contract, so the server serializes every touch of it behind its own
// mutex; callers driving the same machine elsewhere must share that
// serialization (see Lock).
type Server struct {
	mu      sync.Mutex
	machine Machine
	chart   *domain.Chart
}

// NewHandler creates an HTTP handler over machine and its chart.
func NewHandler(machine Machine, chart *domain.Chart) (*Server, http.Handler) {
	s := &Server{machine: machine, chart: chart}

	r := chi.NewRouter()
	r.Get("/healthz", s.health)
	r.Get("/state", s.state)
	r.Get("/chart", s.describeChart)
	r.Post("/dispatch", s.dispatch)
	return s, r
}

// Lock acquires the server's machine mutex so an external driver can share
// it. The returned func releases it.
func (s *Server) Lock() func() {
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// StateResponse is the GET /state payload.
type StateResponse struct {
	Current    domain.StateID `json:"current"`
	Previous   domain.StateID `json:"previous,omitempty"`
	Terminated bool           `json:"terminated"`
	Value      int32          `json:"value,omitempty"`
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := StateResponse{
		Current:    s.machine.Current(),
		Previous:   s.machine.Previous(),
		Terminated: s.machine.Terminated(),
		Value:      s.machine.TerminationValue(),
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

// StateRecord is one entry of the GET /chart payload.
type StateRecord struct {
	ID      domain.StateID `json:"id"`
	Parent  domain.StateID `json:"parent,omitempty"`
	Initial domain.StateID `json:"initial,omitempty"`
	Depth   int            `json:"depth"`
}

func (s *Server) describeChart(w http.ResponseWriter, r *http.Request) {
	records := make([]StateRecord, 0, s.chart.Len())
	for i := 0; i < s.chart.Len(); i++ {
		records = append(records, StateRecord{
			ID:      s.chart.ID(i),
			Parent:  s.chart.ID(s.chart.Parent(i)),
			Initial: s.chart.ID(s.chart.Initial(i)),
			Depth:   s.chart.Depth(i),
		})
	}
	writeJSON(w, http.StatusOK, records)
}

// DispatchRequest is the POST /dispatch body. The event is injected as a
// plain string value.
type DispatchRequest struct {
	Event string `json:"event"`
}

// DispatchResponse is the POST /dispatch payload.
type DispatchResponse struct {
	Current    domain.StateID `json:"current"`
	Terminated bool           `json:"terminated"`
	Value      int32          `json:"value"`
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	var body DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	val, err := s.machine.Dispatch(body.Event)
	resp := DispatchResponse{
		Current:    s.machine.Current(),
		Terminated: s.machine.Terminated(),
		Value:      val,
	}
	s.mu.Unlock()

	if err != nil {
		http.Error(w, fmt.Sprintf("dispatch error: %v", err), http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
