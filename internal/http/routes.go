// Package httpapi exposes the workout session to the browser page: page
// events come in as JSON posts, render events go out over SSE.
package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hperssn/mapty/internal/app"
	"github.com/hperssn/mapty/internal/domain"
	"github.com/hperssn/mapty/internal/geo"
	"github.com/hperssn/mapty/internal/storage"
	"github.com/hperssn/mapty/internal/ui"
)

type Deps struct {
	Controller *app.Controller
	Hub        *ui.Hub
	// Positions is nil when the start position comes from configuration.
	Positions *geo.Reported
	StaticDir string
	// StartSession launches Controller.Start in the background.
	StartSession func()
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/events", StreamEvents(d.Hub))
		r.Get("/state", getState(d.Controller))
		r.Get("/workouts", listWorkouts(d.Controller))
		r.Post("/workouts", submitWorkout(d.Controller))
		r.Post("/position", reportPosition(d.Positions))
		r.Post("/map/click", clickMap(d.Hub))
		r.Post("/form/type", selectType(d.Controller))
		r.Post("/form/cancel", cancelForm(d.Controller))
		r.Post("/list/click", clickList(d.Controller))
		r.Post("/reset", reset(d.Controller, d.StartSession))
	})

	r.Get("/healthz", healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", serveIndex(d.StaticDir))
	fs := http.FileServer(http.Dir(d.StaticDir))
	r.Handle("/static/*", http.StripPrefix("/static/", fs))

	return r
}

func serveIndex(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(dir, "index.html"))
	}
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type stateView struct {
	State    app.State               `json:"state"`
	Form     formView                `json:"form"`
	Pending  *domain.Coords          `json:"pending,omitempty"`
	Workouts []storage.WorkoutRecord `json:"workouts"`
}

type formView struct {
	Visible    bool        `json:"visible"`
	Kind       domain.Kind `json:"kind"`
	Collapsing bool        `json:"collapsing"`
}

func toRecords(workouts []*domain.Workout) []storage.WorkoutRecord {
	records := make([]storage.WorkoutRecord, 0, len(workouts))
	for _, w := range workouts {
		records = append(records, storage.FromDomainWorkout(w))
	}
	return records
}

func getState(c *app.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := c.Snapshot()
		respondJSON(w, stateView{
			State: snap.State,
			Form: formView{
				Visible:    snap.FormVisible,
				Kind:       snap.FormKind,
				Collapsing: snap.Collapsing,
			},
			Pending:  snap.Pending,
			Workouts: toRecords(snap.Workouts),
		}, http.StatusOK)
	}
}

func listWorkouts(c *app.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, toRecords(c.Snapshot().Workouts), http.StatusOK)
	}
}

func submitWorkout(c *app.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in app.FormInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			respondError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		workout, err := c.Submit(r.Context(), in)
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			respondError(w, app.MsgInvalidInput, http.StatusUnprocessableEntity)
			return
		case errors.Is(err, app.ErrNoPendingLocation):
			respondError(w, err.Error(), http.StatusConflict)
			return
		case err != nil:
			respondError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		respondJSON(w, storage.FromDomainWorkout(workout), http.StatusCreated)
	}
}

type positionRequest struct {
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
	Error string   `json:"error"`
}

func reportPosition(positions *geo.Reported) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if positions == nil {
			respondError(w, "position is fixed by configuration", http.StatusConflict)
			return
		}

		var req positionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if req.Error != "" {
			positions.Fail(req.Error)
			w.WriteHeader(http.StatusAccepted)
			return
		}
		if req.Lat == nil || req.Lng == nil {
			respondError(w, "lat and lng are required", http.StatusBadRequest)
			return
		}

		positions.Report(domain.Coords{Lat: *req.Lat, Lng: *req.Lng})
		w.WriteHeader(http.StatusAccepted)
	}
}

func clickMap(hub *ui.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var at domain.Coords
		if err := json.NewDecoder(r.Body).Decode(&at); err != nil {
			respondError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if !hub.Click(at) {
			respondError(w, "map not ready", http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func selectType(c *app.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Type string `json:"type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if err := c.SelectType(req.Type); err != nil {
			respondError(w, "unknown workout type", http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func cancelForm(c *app.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c.Cancel()
		w.WriteHeader(http.StatusNoContent)
	}
}

func clickList(c *app.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		c.HandleListClick(req.ID)
		w.WriteHeader(http.StatusNoContent)
	}
}

func reset(c *app.Controller, startSession func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := c.Reset(r.Context()); err != nil {
			respondError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if startSession != nil {
			startSession()
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
