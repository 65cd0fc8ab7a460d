package admin

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"hostile-sim/internal/sim"
	"hostile-sim/internal/telemetry"
)

// Simulation is the part of the simulator the admin UI drives.
type Simulation interface {
	Drones() []sim.DroneView
	Closest() float64
	InRange(rangeM float64, arc *float64) []sim.DroneView
	ClearAll()
	SetMaxDrones(n int) int
	BreakStealth() int
	Session() telemetry.SessionStateRow
}

type Server struct {
	Sim Simulation
	tpl *template.Template
	log *slog.Logger
	mux *http.ServeMux
}

//go:embed templates/index.html
var content embed.FS

func NewServer(s Simulation, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	srv := &Server{Sim: s, tpl: tpl, log: log, mux: http.NewServeMux()}
	srv.routes()
	return srv
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/drones", s.handleDrones)
	s.mux.HandleFunc("/closest", s.handleClosest)
	s.mux.HandleFunc("/in-range", s.handleInRange)
	s.mux.HandleFunc("/session", s.handleSession)
	s.mux.HandleFunc("/clear", s.post(s.handleClear))
	s.mux.HandleFunc("/max-drones", s.post(s.handleMaxDrones))
	s.mux.HandleFunc("/break-stealth", s.post(s.handleBreakStealth))
}

// Handler exposes the routes for embedding or tests.
func (s *Server) Handler() http.Handler { return s.mux }

// Start serves on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = hs.Shutdown(shutCtx)
	}()
	s.log.Info("admin UI listening", "addr", addr)
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) post(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data := struct {
		Session telemetry.SessionStateRow
		Drones  []sim.DroneView
	}{
		Session: s.Sim.Session(),
		Drones:  s.Sim.Drones(),
	}
	if err := s.tpl.Execute(w, data); err != nil {
		s.log.Error("render index", "err", err)
	}
}

func (s *Server) handleDrones(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sim.Drones())
}

func (s *Server) handleClosest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]float64{"closest_distance_m": s.Sim.Closest()})
}

func (s *Server) handleInRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rangeM, err := strconv.ParseFloat(q.Get("range"), 64)
	if err != nil || rangeM < 0 {
		http.Error(w, "range must be a non-negative number", http.StatusBadRequest)
		return
	}
	var arc *float64
	if a := q.Get("arc"); a != "" {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			http.Error(w, "arc must be a number", http.StatusBadRequest)
			return
		}
		arc = &v
	}
	writeJSON(w, s.Sim.InRange(rangeM, arc))
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Sim.Session())
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.Sim.ClearAll()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMaxDrones(w http.ResponseWriter, r *http.Request) {
	count, err := strconv.Atoi(r.URL.Query().Get("count"))
	if err != nil {
		http.Error(w, "count must be an integer", http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]int{"max_drones": s.Sim.SetMaxDrones(count)})
}

func (s *Server) handleBreakStealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]int{"forced_search": s.Sim.BreakStealth()})
}
