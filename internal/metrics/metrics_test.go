package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordInstall(t *testing.T) {
	before := testutil.ToFloat64(installs.WithLabelValues("success"))
	RecordInstall("success")
	assert.Equal(t, before+1, testutil.ToFloat64(installs.WithLabelValues("success")))
}

func TestRecordGateway(t *testing.T) {
	before := testutil.ToFloat64(gatewayRequests.WithLabelValues("http_status_error"))
	RecordGateway("http_status_error")
	assert.Equal(t, before+1, testutil.ToFloat64(gatewayRequests.WithLabelValues("http_status_error")))
}

func TestRecordHTTPRequest_UnmatchedRoute(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "unmatched", "404"))
	RecordHTTPRequest("GET", "", http.StatusNotFound, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	RecordInstall("signature_error")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `storefront_installs_total{result="signature_error"}`)
}
