package usgs

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/openpaddle/paddle-planner/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ivFixture = `{
  "value": {
    "timeSeries": [
      {
        "values": [
          {
            "value": [
              {"value": "3.42", "dateTime": "2026-06-14T07:45:00.000-04:00"},
              {"value": "3.51", "dateTime": "2026-06-14T08:00:00.000-04:00"}
            ]
          }
        ]
      }
    ]
  }
}`

const emptyIVFixture = `{"value": {"timeSeries": []}}`

func mockServer(t *testing.T, body string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLatestReading(t *testing.T) {
	srv := mockServer(t, ivFixture, func(r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "03049500", q.Get("sites"))
		assert.Equal(t, "00065", q.Get("parameterCd"))
		assert.Equal(t, "P1D", q.Get("period"))
	})

	client := NewClient(srv.URL, "")
	reading, err := client.LatestReading("3049500", entities.MetricFeet)
	require.NoError(t, err)
	require.NotNil(t, reading)

	assert.Equal(t, "03049500", reading.SiteID)
	assert.Equal(t, 3.51, reading.Value, "the most recent point wins")
	assert.Equal(t, entities.MetricFeet, reading.Metric)

	want := time.Date(2026, 6, 14, 8, 0, 0, 0, time.FixedZone("", -4*3600))
	assert.True(t, reading.Timestamp.Equal(want))
}

func TestLatestReadingDischargeParameter(t *testing.T) {
	srv := mockServer(t, ivFixture, func(r *http.Request) {
		assert.Equal(t, "00060", r.URL.Query().Get("parameterCd"))
	})

	client := NewClient(srv.URL, "")
	reading, err := client.LatestReading("03051000", entities.MetricCFS)
	require.NoError(t, err)
	require.NotNil(t, reading)
	assert.Equal(t, entities.MetricCFS, reading.Metric)
}

func TestLatestReadingNoData(t *testing.T) {
	srv := mockServer(t, emptyIVFixture, nil)

	client := NewClient(srv.URL, "")
	reading, err := client.LatestReading("03049500", entities.MetricFeet)

	// A reachable site with nothing to report is not an error.
	require.NoError(t, err)
	assert.Nil(t, reading)
}

func TestLatestReadingHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "")
	_, err := client.LatestReading("03049500", entities.MetricFeet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestLatestReadingBadValue(t *testing.T) {
	srv := mockServer(t, `{"value":{"timeSeries":[{"values":[{"value":[{"value":"Ice","dateTime":"2026-01-14T08:00:00.000-05:00"}]}]}]}}`, nil)

	client := NewClient(srv.URL, "")
	_, err := client.LatestReading("03049500", entities.MetricFeet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unparseable gauge value")
}

func TestNormalizeSiteID(t *testing.T) {
	assert.Equal(t, "03049500", NormalizeSiteID("3049500"))
	assert.Equal(t, "03049500", NormalizeSiteID("03049500"))
	assert.Equal(t, "00000042", NormalizeSiteID("42"))
}

func TestSiteName(t *testing.T) {
	page := `<!DOCTYPE html>
<html><body>
<h2>Some other heading</h2>
<h2>USGS 03049500 Allegheny River at Natrona, PA</h2>
</body></html>`
	srv := mockServer(t, page, func(r *http.Request) {
		assert.Equal(t, "03049500", r.URL.Query().Get("site_no"))
	})

	client := NewClient("", srv.URL)
	name, err := client.SiteName("3049500")
	require.NoError(t, err)
	assert.Equal(t, "Allegheny River at Natrona, PA", name)
}

func TestSiteNameNotFound(t *testing.T) {
	srv := mockServer(t, `<html><body><h2>Nothing here</h2></body></html>`, nil)

	client := NewClient("", srv.URL)
	_, err := client.SiteName("3049500")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
