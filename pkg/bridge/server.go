// Package bridge exposes a deck session over a local HTTP API and provides
// the matching client.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"tableflip.dev/deck/pkg/app"
	"tableflip.dev/deck/pkg/host"
	"tableflip.dev/deck/pkg/logging"
	"tableflip.dev/deck/pkg/profile"
	"tableflip.dev/deck/pkg/schedule"
	"tableflip.dev/deck/pkg/store"
	"tableflip.dev/deck/pkg/tile"
)

// Server answers bridge requests against a Session.
type Server struct {
	Session *app.Session
	// Stats samples system load; host.SystemLoad when nil.
	Stats host.Sampler
	// OS is reported by the ping endpoint.
	OS     string
	Logger *zap.Logger
	// Origins allowed by CORS; every origin when empty.
	Origins []string
}

// Result is the acknowledgement body of mutating endpoints.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Ping is the body of GET /api/ping.
type Ping struct {
	Status  string `json:"status"`
	OS      string `json:"os"`
	Profile string `json:"profile,omitempty"`
}

// TriggerResponse is the body of POST /api/tiles/{id}/trigger.
type TriggerResponse struct {
	Result
	Entered  bool `json:"entered,omitempty"`
	Executed int  `json:"executed"`
	Failed   int  `json:"failed"`
}

// Handler returns the CORS wrapped API router.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/api/ping", s.ping).Methods("GET")
	router.HandleFunc("/api/profiles", s.listProfiles).Methods("GET")
	router.HandleFunc("/api/profiles/{name}", s.loadProfile).Methods("GET")
	router.HandleFunc("/api/profiles/{name}", s.saveProfile).Methods("PUT")
	router.HandleFunc("/api/actions", s.executeAction).Methods("POST")
	router.HandleFunc("/api/tiles/{id}/trigger", s.triggerTile).Methods("POST")
	router.HandleFunc("/api/system/stats", s.systemStats).Methods("GET")
	router.HandleFunc("/api/session", s.summary).Methods("GET")
	router.HandleFunc("/api/schedule/conflicts", s.conflicts).Methods("GET")
	router.HandleFunc("/api/schedule/autofix", s.autofix).Methods("POST")
	router.HandleFunc("/api/schedule/ignore/{id}", s.ignore).Methods("POST")

	origins := s.Origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           86400,
	})
	return c.Handler(router)
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener is Serve over an existing listener.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	logger := logging.OrNop(s.Logger)
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		errs <- srv.Serve(ln)
	}()
	logger.Info("bridge listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ping{Status: "ok", OS: s.OS, Profile: s.Session.Name()})
}

func (s *Server) listProfiles(w http.ResponseWriter, r *http.Request) {
	names, err := s.Session.Profiles(r.Context())
	if err != nil {
		writeResult(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// loadProfile opens the profile, which also re-registers its hotkeys.
func (s *Server) loadProfile(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if err := s.Session.Open(r.Context(), name); err != nil {
		writeResult(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, s.Session.Active())
}

func (s *Server) saveProfile(w http.ResponseWriter, r *http.Request) {
	var p profile.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeResult(w, http.StatusBadRequest, err)
		return
	}
	p.Name = mux.Vars(r)["name"]
	if err := s.Session.Import(r.Context(), &p); err != nil {
		writeResult(w, statusFor(err), err)
		return
	}
	writeResult(w, http.StatusOK, nil)
}

func (s *Server) executeAction(w http.ResponseWriter, r *http.Request) {
	var a tile.Action
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeResult(w, http.StatusBadRequest, err)
		return
	}
	if err := s.Session.Execute(r.Context(), a); err != nil {
		logging.OrNop(s.Logger).Warn("bridge action", zap.String("type", string(a.Type)), zap.Error(err))
		writeResult(w, http.StatusOK, err)
		return
	}
	writeResult(w, http.StatusOK, nil)
}

func (s *Server) triggerTile(w http.ResponseWriter, r *http.Request) {
	res, err := s.Session.Trigger(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, statusFor(err), TriggerResponse{Result: Result{Error: err.Error()}})
		return
	}
	body := TriggerResponse{
		Result:   Result{Success: len(res.Report.Failed) == 0},
		Entered:  res.Entered,
		Executed: res.Report.Executed,
		Failed:   len(res.Report.Failed),
	}
	if err := res.Report.Err(); err != nil {
		body.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) systemStats(w http.ResponseWriter, r *http.Request) {
	sample := s.Stats
	if sample == nil {
		sample = host.SystemLoad
	}
	load, err := sample(r.Context())
	if err != nil {
		logging.OrNop(s.Logger).Debug("system load", zap.Error(err))
		load = host.Load{}
	}
	writeJSON(w, http.StatusOK, load)
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.Session.Summarize()
	if err != nil {
		writeResult(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) conflicts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Session.Conflicts())
}

type autofixResponse struct {
	Result
	Moved any `json:"moved,omitempty"`
}

func (s *Server) autofix(w http.ResponseWriter, r *http.Request) {
	moved, ok, err := s.Session.AutoFix()
	if err != nil {
		writeResult(w, statusFor(err), err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, autofixResponse{Result: Result{Success: false, Error: "no conflicts"}})
		return
	}
	writeJSON(w, http.StatusOK, autofixResponse{Result: Result{Success: true}, Moved: moved})
}

func (s *Server) ignore(w http.ResponseWriter, r *http.Request) {
	s.Session.IgnoreConflict(mux.Vars(r)["id"])
	writeResult(w, http.StatusOK, nil)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, app.ErrTileNotFound):
		return http.StatusNotFound
	case errors.Is(err, app.ErrNoProfile), errors.Is(err, schedule.ErrPastMidnight):
		return http.StatusConflict
	case errors.Is(err, profile.ErrMissingTiles), errors.Is(err, profile.ErrInvalidName), errors.Is(err, tile.ErrDuplicateID):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeResult(w http.ResponseWriter, status int, err error) {
	res := Result{Success: err == nil}
	if err != nil {
		res.Error = err.Error()
	}
	writeJSON(w, status, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
