package api

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Pareto/internal/engine"
	"github.com/MikeSquared-Agency/Pareto/internal/pareto"
	"github.com/MikeSquared-Agency/Pareto/internal/store"
	"github.com/MikeSquared-Agency/Pareto/internal/tsv"
)

type DatasetsHandler struct {
	store  store.Store
	engine *engine.Engine
}

func NewDatasetsHandler(s store.Store, e *engine.Engine) *DatasetsHandler {
	return &DatasetsHandler{store: s, engine: e}
}

type CreateDatasetRequest struct {
	Name   string       `json:"name" validate:"required,max=200"`
	Labels []string     `json:"labels,omitempty"`
	Items  []store.Item `json:"items" validate:"required,min=1,dive"`
}

// Create stores a dataset. A JSON body carries the items directly; a
// tab-separated body is parsed as a score file with the name taken from
// ?name= and the score width from ?fields= (header width by default).
// POST /api/v1/datasets
func (h *DatasetsHandler) Create(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var (
		name   string
		labels []string
		ds     *pareto.Dataset
		err    error
	)
	switch mediaType {
	case "text/tab-separated-values", "text/plain":
		name = r.URL.Query().Get("name")
		if name == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name query parameter required"})
			return
		}
		fields := tsv.InferFields
		if r.URL.Query().Has("fields") {
			fields = queryInt(r, "fields", tsv.InferFields)
		}
		table, err := tsv.Read(r.Body, tsv.ReadOptions{Fields: fields})
		if err != nil {
			writeError(w, err)
			return
		}
		labels, ds = table.Header, table.Dataset
	default:
		var req CreateDatasetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDecodeError(w, err)
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, err)
			return
		}
		name, labels = req.Name, req.Labels
		ds, err = (&store.Dataset{Items: req.Items}).ToPareto()
		if err != nil {
			writeError(w, err)
			return
		}
	}

	if len(labels) > 0 && ds.Len() > 0 && len(labels) != ds.Dims() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "labels must match the score dimensions"})
		return
	}

	rec, err := h.engine.CreateDataset(r.Context(), name, labels, ds)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *DatasetsHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListDatasets(r.Context(), queryInt(r, "limit", 50), queryInt(r, "offset", 0))
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []*store.DatasetSummary{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *DatasetsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid dataset id"})
		return
	}

	ds, err := h.store.GetDataset(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if ds == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "dataset not found"})
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

func (h *DatasetsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid dataset id"})
		return
	}
	if err := h.engine.DeleteDataset(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
