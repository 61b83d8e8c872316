package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"huddle/internal/dataset"
	"huddle/internal/huddle"
	"huddle/internal/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `[
  {
    "name": "Ada Lovelace",
    "reservations": [
      {"date": "2024-05-20", "number_of_people": 2, "orders": [{"dietary_tags": ["vegan", "gluten-free"]}]},
      {"date": "2024-05-21", "number_of_people": 5, "orders": [{"dietary_tags": []}]}
    ]
  },
  {"name": "Grace Hopper", "reservations": []}
]`

func newTestAPI(t *testing.T, datasetPath string) *HuddleAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service := huddle.NewService(dataset.NewFileSource(datasetPath))
	return NewHuddleAPI(service, monitoring.NewMetricsCollector(), monitoring.NewMonitor())
}

func writeFixture(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fine-dining-dataset.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func get(api *HuddleAPI, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	api.Router.ServeHTTP(w, req)
	return w
}

func TestRoot(t *testing.T) {
	api := newTestAPI(t, writeFixture(t, fixture))

	w := get(api, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Kitchen Morning Huddle API"}`, w.Body.String())
}

func TestGetHuddle(t *testing.T) {
	api := newTestAPI(t, writeFixture(t, fixture))

	w := get(api, "/huddle/2024-05-20")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	assert.JSONEq(t, `{
		"date": "2024-05-20",
		"total_reservations": 1,
		"total_guests": 2,
		"total_orders": 1,
		"high_complexity_orders": 0,
		"dietary_requirements": {"vegan": 1, "gluten-free": 1},
		"table_insights": [{
			"name": "Ada Lovelace",
			"party_size": 2,
			"orders": [{"dietary_tags": ["vegan", "gluten-free"]}],
			"dietary_requirements": {"vegan": 1, "gluten-free": 1},
			"prep_time": 21,
			"complexity": 2,
			"kitchen_notes": ["Multiple dietary restrictions - verify ingredients"]
		}]
	}`, w.Body.String())
}

func TestGetHuddle_NoReservations(t *testing.T) {
	api := newTestAPI(t, writeFixture(t, fixture))

	w := get(api, "/huddle/2030-01-01")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"date": "2030-01-01",
		"total_reservations": 0,
		"total_guests": 0,
		"total_orders": 0,
		"high_complexity_orders": 0,
		"dietary_requirements": {},
		"table_insights": []
	}`, w.Body.String())
}

func TestGetHuddle_Idempotent(t *testing.T) {
	api := newTestAPI(t, writeFixture(t, fixture))

	first := get(api, "/huddle/2024-05-21")
	second := get(api, "/huddle/2024-05-21")

	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestGetHuddle_MissingDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fine-dining-dataset.json")
	api := newTestAPI(t, path)

	w := get(api, "/huddle/2024-05-20")

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	_, statErr := os.Open(path)
	require.Error(t, statErr)
	assert.Equal(t, statErr.Error(), body["detail"])

	lastError, ok := api.Monitor.GetMetrics()["last_error"]
	assert.True(t, ok)
	assert.Equal(t, statErr.Error(), lastError)
}

func TestGetHuddle_MalformedDataset(t *testing.T) {
	api := newTestAPI(t, writeFixture(t, `[{"name": "Ada", "reservations": [`))

	w := get(api, "/huddle/2024-05-20")

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["detail"], "invalid dataset")
}

func TestGetHuddle_BadDate(t *testing.T) {
	api := newTestAPI(t, writeFixture(t, fixture))

	for _, path := range []string{"/huddle/tomorrow", "/huddle/2024-13-01", "/huddle/20-05-2024"} {
		w := get(api, path)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, path)
		assert.Contains(t, w.Body.String(), "detail", path)
	}
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t, writeFixture(t, fixture))
	get(api, "/huddle/2024-05-20")

	w := get(api, "/health")

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Contains(t, body, "uptime_seconds")
	assert.Equal(t, "2024-05-20", body["last_huddle_date"])
}

func TestHealth_ClearsErrorAfterRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fine-dining-dataset.json")
	api := newTestAPI(t, path)

	require.Equal(t, http.StatusInternalServerError, get(api, "/huddle/2024-05-20").Code)
	assert.Contains(t, api.Monitor.GetMetrics(), "last_error")

	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))
	require.Equal(t, http.StatusOK, get(api, "/huddle/2024-05-20").Code)

	w := get(api, "/health")

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotContains(t, body, "last_error")
	assert.NotContains(t, body, "last_error_at")
	assert.Equal(t, "2024-05-20", body["last_huddle_date"])
}

func TestGetHuddle_MissingTagsServedAsEmptyList(t *testing.T) {
	api := newTestAPI(t, writeFixture(t, `[{"name": "Ada", "reservations": [
		{"date": "2024-05-20", "number_of_people": 2, "orders": [{}, {"dietary_tags": null}]}
	]}]`))

	w := get(api, "/huddle/2024-05-20")

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "null")

	var body struct {
		TableInsights []struct {
			Orders []map[string]json.RawMessage `json:"orders"`
		} `json:"table_insights"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.TableInsights, 1)
	require.Len(t, body.TableInsights[0].Orders, 2)
	for _, o := range body.TableInsights[0].Orders {
		assert.JSONEq(t, `[]`, string(o["dietary_tags"]))
	}
}

func TestRequestID_Propagated(t *testing.T) {
	api := newTestAPI(t, writeFixture(t, fixture))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	api.Router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-Id"))
}
