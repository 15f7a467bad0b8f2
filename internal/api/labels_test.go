package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globelabels/pkg/engine"
	"globelabels/pkg/globe"
	"globelabels/pkg/label"
	"globelabels/pkg/model"
)

func newTestController(t *testing.T) *globe.Controller {
	t.Helper()
	c := globe.NewController(globe.Options{
		Params: engine.DefaultParams(),
		Inputs: engine.DefaultInputs().WithZoom(40, 5),
	})
	c.LoadRecords([]model.LabelRecord{
		{Name: "Italy", Type: model.TypeCountry, Lat: 42.5, Lng: 12.5},
		{Name: "Rome", Type: model.TypeCapital, Lat: 42.45, Lng: 12.5, National: true, Country: "Italy"},
		{Name: "Roman Empire", Type: model.TypeEmpire, Lat: 42, Lng: 15, Empire: "roman"},
		{Name: "Garda", Type: model.TypeLake, Lat: 45.6, Lng: 10.6},
	})
	return c
}

func post(t *testing.T, h http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodPost, path, &buf))
	return w
}

func decodeRecompute(t *testing.T, w *httptest.ResponseRecorder) RecomputeResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp RecomputeResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestLabelsHandler_State(t *testing.T) {
	h := NewLabelsHandler(newTestController(t))

	w := httptest.NewRecorder()
	h.HandleState(w, httptest.NewRequest(http.MethodGet, "/api/labels/state", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var st globe.State
	require.NoError(t, json.NewDecoder(w.Body).Decode(&st))
	assert.Equal(t, 4, st.Labels)
	assert.Equal(t, globe.TriggerReload, st.LastTrigger)
	assert.Contains(t, st.Visible, "country:Italy")
	assert.NotContains(t, st.Visible, "empire:Roman Empire")

	w = httptest.NewRecorder()
	h.HandleVisible(w, httptest.NewRequest(http.MethodGet, "/api/labels/visible", nil))
	var names map[string][]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&names))
	assert.Contains(t, names["names"], "Rome")
}

func TestLabelsHandler_Zoom(t *testing.T) {
	h := NewLabelsHandler(newTestController(t))

	resp := decodeRecompute(t, post(t, h.HandleZoom, "/api/labels/zoom", ZoomRequest{ZoomPercent: 40.2, KmPerPixel: 5}))
	assert.False(t, resp.Recomputed)
	assert.Equal(t, uint64(1), resp.Seq)

	resp = decodeRecompute(t, post(t, h.HandleZoom, "/api/labels/zoom", ZoomRequest{ZoomPercent: 45, KmPerPixel: 4}))
	assert.True(t, resp.Recomputed)
	assert.Equal(t, uint64(2), resp.Seq)

	tests := []struct {
		name string
		body any
	}{
		{"NegativeZoom", ZoomRequest{ZoomPercent: -1}},
		{"ZoomAbove100", ZoomRequest{ZoomPercent: 101}},
		{"HugeZoom", ZoomRequest{ZoomPercent: 1e300}},
		{"NegativeScale", ZoomRequest{ZoomPercent: 50, KmPerPixel: -1}},
		{"Malformed", "{not json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, h.HandleZoom, "/api/labels/zoom", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	assert.Equal(t, uint64(2), h.ctrl.State().Seq, "rejected requests never reach the controller")
}

func TestLabelsHandler_Toggles(t *testing.T) {
	h := NewLabelsHandler(newTestController(t))

	resp := decodeRecompute(t, post(t, h.HandleToggles, "/api/labels/toggles", TogglesRequest{
		Types:  map[string]bool{"capital": false},
		Layers: map[string]bool{"lakes": false},
	}))
	assert.Equal(t, []string{"country:Italy"}, resp.Visible)

	tests := []struct {
		name string
		req  TogglesRequest
	}{
		{"UnknownType", TogglesRequest{Types: map[string]bool{"volcano": true}}},
		{"UnknownLayer", TogglesRequest{Layers: map[string]bool{"roads": true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, h.HandleToggles, "/api/labels/toggles", tt.req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLabelsHandler_Empires(t *testing.T) {
	h := NewLabelsHandler(newTestController(t))

	resp := decodeRecompute(t, post(t, h.HandleEmpires, "/api/labels/empires", EmpiresRequest{
		Visible:      []string{"roman"},
		EmpireLabels: true,
	}))
	assert.Contains(t, resp.Visible, "empire:Roman Empire")
}

func TestLabelsHandler_Aspects(t *testing.T) {
	c := newTestController(t)
	h := NewLabelsHandler(c)

	decodeRecompute(t, post(t, h.HandleAspects, "/api/labels/aspects", AspectsRequest{
		Aspects: map[string]float64{"country:Italy": 5},
	}))
	assert.InDelta(t, 5.0, c.Inputs().Aspects["country:Italy"], 1e-12)

	w := post(t, h.HandleAspects, "/api/labels/aspects", AspectsRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLabelsHandler_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name":"Chad","type":"country","lat":13,"lng":14},
		{"name":"","type":"city","lat":0,"lng":0}
	]`), 0o644))

	c := globe.NewController(globe.Options{
		Inputs:  engine.DefaultInputs().WithZoom(20, 10),
		Sources: label.Sources{File: path},
	})
	h := NewLabelsHandler(c)

	w := post(t, h.HandleReload, "/api/labels/reload", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp ReloadResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Added)
	assert.Equal(t, 1, resp.Skipped)
	assert.Equal(t, []string{"country:Chad"}, resp.Visible)

	require.NoError(t, os.Remove(path))
	w = post(t, h.HandleReload, "/api/labels/reload", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
