package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/lintang-b-s/navigatorx-lite/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/navigatorx-lite/pkg/graph"
	"github.com/lintang-b-s/navigatorx-lite/pkg/server/rest/service"
	"github.com/lintang-b-s/navigatorx-lite/pkg/snap"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
)

// square 1(0,0) 2(1,0) 3(0,1) 4(1,1) as one closed way, plus detached segment 10-11.
func newTestRouter(t *testing.T) (*chi.Mux, *Metrics) {
	t.Helper()
	b := graph.NewBuilder()
	assert.NoError(t, b.AddVertex(1, 0, 0))
	assert.NoError(t, b.AddVertex(2, 1, 0))
	assert.NoError(t, b.AddVertex(3, 0, 1))
	assert.NoError(t, b.AddVertex(4, 1, 1))
	assert.NoError(t, b.AddVertex(10, 5, 5))
	assert.NoError(t, b.AddVertex(11, 6, 5))
	for _, way := range [][]int64{{1, 2, 4, 3, 1}, {10, 11}} {
		b.BeginWay()
		for _, id := range way {
			b.AppendToWay(id)
		}
		assert.NoError(t, b.CommitWay())
	}
	g, err := b.Finalize()
	assert.NoError(t, err)

	loc := snap.NewRoadSnapper(g)
	rt := routingalgorithm.NewRouteAlgorithm(g, loc)

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	svc := service.NewNavigationService(g, loc, rt, nil, m)

	r := chi.NewRouter()
	r.Use(PromeHttpMiddleware(m))
	NavigatorRouter(r, svc)
	return r, m
}

func doRequest(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestNearestVertexHandler(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/navigations/nearest-vertex", `{"lat": 0.9, "lon": 0.8}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp VertexResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(4), resp.ID)

	w = doRequest(t, r, http.MethodPost, "/api/navigations/nearest-vertex", `{"lat": 120, "lon": 0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp ErrResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.NotEmpty(t, errResp.ErrValidation)
}

func TestShortestPathHandler(t *testing.T) {
	r, m := newTestRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/navigations/shortest-path",
		`{"src_lat": 0.1, "src_lon": 0.1, "dst_lat": 0.9, "dst_lon": 1.05}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp ShortestPathResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Found)
	assert.Len(t, resp.VertexIDs, 3)
	assert.Equal(t, int64(1), resp.VertexIDs[0])
	assert.Equal(t, int64(4), resp.VertexIDs[2])
	assert.InDelta(t, 2.0, resp.Dist, 1e-9)
	assert.NotEmpty(t, resp.Polyline)

	// both snap to vertex 1
	w = doRequest(t, r, http.MethodPost, "/api/navigations/shortest-path",
		`{"src_lat": 0.1, "src_lon": 0.1, "dst_lat": 0.0, "dst_lon": 0.0}`)
	assert.Equal(t, http.StatusOK, w.Code)
	resp = ShortestPathResponse{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Found)
	assert.Empty(t, resp.VertexIDs)

	w = doRequest(t, r, http.MethodPost, "/api/navigations/shortest-path",
		`{"src_lat": 0, "src_lon": 0, "dst_lat": 5, "dst_lon": 6}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	metric := &dto.Metric{}
	counter := m.HttpRequestCounter.WithLabelValues("/api/navigations/shortest-path", http.MethodPost, "200")
	assert.NoError(t, counter.Write(metric))
	assert.Equal(t, 2.0, metric.GetCounter().GetValue())
}

func TestShortestPathManyHandler(t *testing.T) {
	r, _ := newTestRouter(t)

	body := `{"queries": [
		{"src_lat": 0, "src_lon": 0, "dst_lat": 1, "dst_lon": 1},
		{"src_lat": 0, "src_lon": 0, "dst_lat": 5, "dst_lon": 6},
		{"src_lat": 5, "src_lon": 5, "dst_lat": 5, "dst_lon": 6, "simplify": true}
	]}`
	w := doRequest(t, r, http.MethodPost, "/api/navigations/shortest-path/many", body)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp ShortestPathManyResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Routes, 3)
	assert.True(t, resp.Routes[0].Found)
	assert.False(t, resp.Routes[1].Found)
	assert.NotEmpty(t, resp.Routes[1].Error)
	assert.Equal(t, []int64{10, 11}, resp.Routes[2].VertexIDs)

	w = doRequest(t, r, http.MethodPost, "/api/navigations/shortest-path/many", `{"queries": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetVertexHandler(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/navigations/vertices/2", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp VertexResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.ID)
	assert.Equal(t, 1.0, resp.Lon)
	assert.Equal(t, []int64{1, 4}, resp.Neighbors)

	w = doRequest(t, r, http.MethodGet, "/api/navigations/vertices/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/navigations/vertices/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
