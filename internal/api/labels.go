package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"globelabels/pkg/globe"
	"globelabels/pkg/model"
)

// LabelsHandler exposes the visibility controller over HTTP.
type LabelsHandler struct {
	ctrl *globe.Controller
}

// NewLabelsHandler creates a new LabelsHandler.
func NewLabelsHandler(c *globe.Controller) *LabelsHandler {
	return &LabelsHandler{ctrl: c}
}

// ZoomRequest carries a camera change.
type ZoomRequest struct {
	ZoomPercent float64 `json:"zoom_percent"`
	KmPerPixel  float64 `json:"km_per_pixel"`
}

// TogglesRequest carries type and layer switches. Omitted keys keep their state.
type TogglesRequest struct {
	Types  map[string]bool `json:"types"`
	Layers map[string]bool `json:"layers"`
}

// EmpiresRequest replaces the empire overlay state.
type EmpiresRequest struct {
	Visible       []string `json:"visible"`
	EmpireLabels  bool     `json:"empire_labels"`
	AncientCities bool     `json:"ancient_cities"`
}

// AspectsRequest carries measured width/height ratios keyed by label ID.
type AspectsRequest struct {
	Aspects map[string]float64 `json:"aspects"`
}

// RecomputeResponse is returned by every mutating endpoint.
type RecomputeResponse struct {
	Recomputed bool     `json:"recomputed"`
	Seq        uint64   `json:"seq"`
	Visible    []string `json:"visible"`
}

// ReloadResponse summarises a reload.
type ReloadResponse struct {
	RecomputeResponse
	Added   int            `json:"added"`
	Skipped int            `json:"skipped"`
	Reasons map[string]int `json:"reasons,omitempty"`
}

// HandleState handles GET /api/labels/state
func (h *LabelsHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.ctrl.State())
}

// HandleVisible handles GET /api/labels/visible and returns the distinct visible names.
func (h *LabelsHandler) HandleVisible(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string][]string{"names": h.ctrl.State().Names})
}

// HandleZoom handles POST /api/labels/zoom
func (h *LabelsHandler) HandleZoom(w http.ResponseWriter, r *http.Request) {
	var req ZoomRequest
	if !decode(w, r, &req) {
		return
	}
	if req.ZoomPercent < 0 || req.ZoomPercent > 100 {
		http.Error(w, "zoom_percent must be within 0-100", http.StatusBadRequest)
		return
	}
	if req.KmPerPixel < 0 {
		http.Error(w, "km_per_pixel must not be negative", http.StatusBadRequest)
		return
	}
	fired := h.ctrl.SetZoom(req.ZoomPercent, req.KmPerPixel)
	h.respond(w, fired)
}

// HandleToggles handles POST /api/labels/toggles
func (h *LabelsHandler) HandleToggles(w http.ResponseWriter, r *http.Request) {
	var req TogglesRequest
	if !decode(w, r, &req) {
		return
	}

	types := make(map[model.LabelType]bool, len(req.Types))
	for name, on := range req.Types {
		t, ok := model.ParseLabelType(name)
		if !ok {
			http.Error(w, fmt.Sprintf("unknown label type %q", name), http.StatusBadRequest)
			return
		}
		types[t] = on
	}
	layers := make(map[model.FeatureLayer]bool, len(req.Layers))
	for name, on := range req.Layers {
		l := model.FeatureLayer(name)
		if !l.LabelType().Known() {
			http.Error(w, fmt.Sprintf("unknown feature layer %q", name), http.StatusBadRequest)
			return
		}
		layers[l] = on
	}

	h.ctrl.SetToggles(types, layers)
	h.respond(w, true)
}

// HandleEmpires handles POST /api/labels/empires
func (h *LabelsHandler) HandleEmpires(w http.ResponseWriter, r *http.Request) {
	var req EmpiresRequest
	if !decode(w, r, &req) {
		return
	}
	h.ctrl.SetEmpires(req.Visible, req.EmpireLabels, req.AncientCities)
	h.respond(w, true)
}

// HandleAspects handles POST /api/labels/aspects
func (h *LabelsHandler) HandleAspects(w http.ResponseWriter, r *http.Request) {
	var req AspectsRequest
	if !decode(w, r, &req) {
		return
	}
	if len(req.Aspects) == 0 {
		http.Error(w, "aspects must not be empty", http.StatusBadRequest)
		return
	}
	h.ctrl.SetAspects(req.Aspects)
	h.respond(w, true)
}

// HandleReload handles POST /api/labels/reload
func (h *LabelsHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ctrl.Reload()
	if err != nil {
		slog.Error("Label reload failed", "error", err)
		http.Error(w, "Failed to reload labels", http.StatusInternalServerError)
		return
	}
	st := h.ctrl.State()
	writeJSON(w, ReloadResponse{
		RecomputeResponse: RecomputeResponse{Recomputed: true, Seq: st.Seq, Visible: st.Visible},
		Added:             stats.Added,
		Skipped:           stats.Skipped,
		Reasons:           stats.Reasons,
	})
}

func (h *LabelsHandler) respond(w http.ResponseWriter, recomputed bool) {
	st := h.ctrl.State()
	writeJSON(w, RecomputeResponse{Recomputed: recomputed, Seq: st.Seq, Visible: st.Visible})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}
