package api

import (
	"encoding/json"
	"net/http"

	"github.com/MikeSquared-Agency/Pareto/internal/engine"
	"github.com/MikeSquared-Agency/Pareto/internal/pareto"
	"github.com/MikeSquared-Agency/Pareto/internal/store"
)

type FrontHandler struct {
	engine *engine.Engine
}

func NewFrontHandler(e *engine.Engine) *FrontHandler {
	return &FrontHandler{engine: e}
}

type FrontRequest struct {
	Items []store.Item `json:"items" validate:"dive"`
	engine.RunSpec
}

// Compute extracts the front of the posted items without storing them.
// POST /api/v1/front
func (h *FrontHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var req FrontRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	items := make([]pareto.Datum, len(req.Items))
	for i, it := range req.Items {
		items[i] = pareto.Datum{Name: it.Name, Scores: it.Scores}
	}
	ds, err := pareto.NewDataset(items)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := h.engine.Compute(r.Context(), ds, req.RunSpec)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
