package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	labels := filepath.Join(dir, "labels.json")
	require.NoError(t, os.WriteFile(labels, []byte(`[
		{"name":"Italy","type":"country","lat":42.5,"lng":12.5},
		{"name":"Rome","type":"capital","lat":42.45,"lng":12.5,"national":true,"country":"Italy"},
		{"name":"Nowhere","type":"city","lat":95,"lng":0}
	]`), 0o644))

	cfg := `
server:
    address: localhost:0
engine:
    zoom_step: 1
fade:
    duration: 100ms
    frame_interval: 5ms
data:
    label_file: "` + labels + `"
    layers: {}
    empires: ""
toggles:
    zoom_percent: 40
    km_per_pixel: 5
log:
    server:
        path: "` + filepath.Join(dir, "server.log") + `"
        level: "debug"
    requests:
        path: "` + filepath.Join(dir, "requests.log") + `"
        level: "info"
`
	path := filepath.Join(dir, "globelabels.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

func TestRun(t *testing.T) {
	path := writeFixture(t)

	// Cancel quickly to verify the startup sequence.
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	require.NoError(t, run(ctx, path))
}

func TestCheck(t *testing.T) {
	path := writeFixture(t)

	var out bytes.Buffer
	require.NoError(t, check(&out, path))
	assert.Contains(t, out.String(), "labels: 2 loaded, 1 skipped")
	assert.Contains(t, out.String(), "visible: 2, suppressed: 0, dependent: 0, offsets: 1")
}

func TestCheck_MissingLabels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "globelabels.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data:\n    label_file: \""+filepath.Join(dir, "none.json")+"\"\n"), 0o644))

	assert.Error(t, check(&bytes.Buffer{}, path))
}
