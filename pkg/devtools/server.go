package devtools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/delaneyj/proxyparty/reactivity"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const writeTimeout = 10 * time.Second

// Server exposes a loop over HTTP:
//
//	GET /graph        subscription graph as JSON
//	GET /metrics      Prometheus metrics
//	GET /events       websocket stream of engine events
//	GET /state        snapshot of the state record
//	PUT /state/{key}  set one key of the state record from a JSON body
type Server struct {
	loop     *Loop
	hub      *Hub
	gatherer prometheus.Gatherer
	state    *reactivity.Record
	upgrader websocket.Upgrader
}

func NewServer(loop *Loop, hub *Hub, gatherer prometheus.Gatherer, state *reactivity.Record) *Server {
	return &Server{
		loop:     loop,
		hub:      hub,
		gatherer: gatherer,
		state:    state,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/graph", s.handleGraph)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Get("/events", s.handleEvents)
	r.Get("/state", s.handleGetState)
	r.Put("/state/{key}", s.handleSetState)
	return r
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.loop.Do(r.Context(), func(rs *reactivity.System) {
		rs.WriteGraph(&buf)
	}); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(buf.Bytes())
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	var snapshot any
	if err := s.loop.Do(r.Context(), func(rs *reactivity.System) {
		snapshot = reactivity.Snapshot(s.state)
	}); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleSetState(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	var value any
	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		http.Error(w, fmt.Sprintf("decode %s: %v", key, err), http.StatusBadRequest)
		return
	}
	if err := s.loop.Do(r.Context(), func(rs *reactivity.System) {
		reactivity.Reactive(rs, s.state).(*reactivity.RecordProxy).Set(key, value)
	}); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	events, cancel := s.hub.Subscribe(0)
	defer cancel()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}
				if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
					return
				}
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
