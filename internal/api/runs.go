package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Pareto/internal/engine"
	"github.com/MikeSquared-Agency/Pareto/internal/store"
)

type RunsHandler struct {
	store  store.Store
	engine *engine.Engine
}

func NewRunsHandler(s store.Store, e *engine.Engine) *RunsHandler {
	return &RunsHandler{store: s, engine: e}
}

// Create submits a run for the dataset. The body is an optional run spec.
// With ?async=true the run is queued and 202 is returned.
// POST /api/v1/datasets/{id}/runs
func (h *RunsHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid dataset id"})
		return
	}

	var spec engine.RunSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		writeDecodeError(w, err)
		return
	}
	async := r.URL.Query().Get("async") == "true"

	run, err := h.engine.Submit(r.Context(), id, spec, async)
	if err != nil {
		if run != nil {
			writeJSON(w, statusFor(err), map[string]string{"error": err.Error(), "run_id": run.ID.String()})
			return
		}
		writeError(w, err)
		return
	}
	if async {
		writeJSON(w, http.StatusAccepted, run)
		return
	}
	writeJSON(w, http.StatusCreated, run)
}

func (h *RunsHandler) ListForDataset(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid dataset id"})
		return
	}

	filter := store.RunFilter{
		DatasetID: &id,
		Limit:     queryInt(r, "limit", 50),
		Offset:    queryInt(r, "offset", 0),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := store.RunStatus(s)
		filter.Status = &status
	}

	runs, err := h.store.ListRuns(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if runs == nil {
		runs = []*store.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (h *RunsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid run id"})
		return
	}

	run, err := h.store.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if run == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "run not found"})
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// Explain returns the survivors of a completed run and, for every other
// item, the survivor that dominated it.
// GET /api/v1/runs/{id}/explain
func (h *RunsHandler) Explain(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid run id"})
		return
	}

	ex, err := h.engine.Explain(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ex)
}
