package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(RecomputesTotal.WithLabelValues("zoom"))
	RecomputesTotal.WithLabelValues("zoom").Inc()
	assert.InDelta(t, before+1, testutil.ToFloat64(RecomputesTotal.WithLabelValues("zoom")), 1e-9)

	VisibleLabels.Set(42)
	assert.InDelta(t, 42.0, testutil.ToFloat64(VisibleLabels), 1e-9)
}

func TestHandler(t *testing.T) {
	FadeCommandsTotal.WithLabelValues("in").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "globelabels_fade_commands_total"))
}
