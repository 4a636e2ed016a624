package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/engine"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/http/usecases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	abcRoute     = "origin_lat=45.0001&origin_lon=7.0001&destination_lat=45.0101&destination_lon=7.0199"
	reverseRoute = "origin_lat=45.0101&origin_lon=7.0199&destination_lat=45.0001&destination_lon=7.0001"
)

// A->B (1000m, 50), B->C (2000m, 100), A->C (4000m, 50)
func newTestHandler(t *testing.T, useRateLimit bool) http.Handler {
	t.Helper()
	g := datastructure.NewGraph()
	a := g.AddNode(1, 45.00, 7.00)
	b := g.AddNode(2, 45.01, 7.00)
	c := g.AddNode(3, 45.01, 7.02)
	for _, e := range []struct {
		from, to datastructure.Index
		length   float64
		speed    string
	}{{a, b, 1000, "50"}, {b, c, 2000, "100"}, {a, c, 4000, "50"}} {
		_, err := g.AddEdge(e.from, e.to, e.length, datastructure.NewMaxSpeed(e.speed), pkg.SECONDARY, nil)
		require.NoError(t, err)
	}

	eng, err := engine.NewEngineFromGraph(g, routing.FirstParallelEdge, zap.NewNop())
	require.NoError(t, err)
	rs, err := usecases.NewRoutingService(zap.NewNop(), eng.GetRoutingEngine(), eng.GetSpatialIndex(), 1, 64)
	require.NoError(t, err)

	return NewAPI(zap.NewNop()).Handler(useRateLimit, rs)
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	body := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestComputeRoutes(t *testing.T) {
	h := newTestHandler(t, false)

	rec := doGet(t, h, "/api/computeRoutes?"+abcRoute)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.InDelta(t, 40.0, data["eta"], 1e-9)
	assert.InDelta(t, 3.0, data["distance"], 1e-9)
	assert.Equal(t, []interface{}{50.0, 100.0}, data["maxspeeds"])
	assert.Equal(t, []interface{}{0.0, 1.0}, data["edges"])
	assert.Equal(t, 2.0, data["steps"])
	assert.NotEmpty(t, data["path"])
}

func TestComputeRoutesErrors(t *testing.T) {
	h := newTestHandler(t, false)

	tests := []struct {
		name    string
		query   string
		status  int
		message string
	}{
		{"missing parameter", "origin_lat=45&origin_lon=7&destination_lat=45", http.StatusBadRequest, "destination_lon is required"},
		{"not a number", "origin_lat=abc&origin_lon=7&destination_lat=45&destination_lon=7", http.StatusBadRequest, "origin_lat is required"},
		{"out of range", "origin_lat=95&origin_lon=7&destination_lat=45&destination_lon=7", http.StatusBadRequest, "validation error"},
		{"unreachable", reverseRoute, http.StatusNotFound, "no path"},
		{"far from the network", "origin_lat=40&origin_lon=10&destination_lat=45.0101&destination_lon=7.0199", http.StatusNotFound, "no vertex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(t, h, "/api/computeRoutes?"+tt.query)
			require.Equal(t, tt.status, rec.Code)
			errBody := decodeBody(t, rec)["error"].(map[string]interface{})
			assert.Equal(t, http.StatusText(tt.status), errBody["code"])
			assert.Contains(t, errBody["message"], tt.message)
		})
	}
}

func TestEdgeUsage(t *testing.T) {
	h := newTestHandler(t, false)

	require.Equal(t, http.StatusOK, doGet(t, h, "/api/computeRoutes?"+abcRoute).Code)
	require.Equal(t, http.StatusOK, doGet(t, h, "/api/computeRoutes?"+abcRoute).Code)

	rec := doGet(t, h, "/api/edgeUsage?k=1")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, pkg.DIJKSTRA, data["algorithm"])
	assert.Equal(t, 4.0, data["total"])
	edges := data["edges"].([]interface{})
	require.Len(t, edges, 1)
	assert.Equal(t, map[string]interface{}{"edge_id": 0.0, "from": 0.0, "to": 1.0, "count": 2.0}, edges[0])

	rec = doGet(t, h, "/api/edgeUsage")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["data"].(map[string]interface{})["edges"], 2)

	assert.Equal(t, http.StatusBadRequest, doGet(t, h, "/api/edgeUsage?k=0").Code)
	assert.Equal(t, http.StatusBadRequest, doGet(t, h, "/api/edgeUsage?k=abc").Code)
}

func TestVisualizeRoute(t *testing.T) {
	h := newTestHandler(t, false)

	rec := doGet(t, h, "/api/visualizeRoute?"+abcRoute)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))
	body := decodeBody(t, rec)
	assert.Equal(t, "FeatureCollection", body["type"])
	assert.Len(t, body["features"], 4)

	rec = doGet(t, h, "/api/visualizeRoute?include_unvisited=true&"+abcRoute)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["features"], 5)

	assert.Equal(t, http.StatusBadRequest, doGet(t, h, "/api/visualizeRoute?include_unvisited=maybe&"+abcRoute).Code)
}

func TestSearchEventsWebsocket(t *testing.T) {
	srv := httptest.NewServer(newTestHandler(t, false))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/searchEvents?" + abcRoute
	conn, br, _, err := ws.Dial(ctx, url)
	require.NoError(t, err)
	defer conn.Close()

	var rw io.ReadWriter = conn
	if br != nil {
		rw = struct {
			io.Reader
			io.Writer
		}{br, conn}
	}

	messages := make([]map[string]interface{}, 0)
	for {
		msg, op, err := wsutil.ReadServerData(rw)
		if err != nil {
			break
		}
		require.Equal(t, ws.OpText, op)
		m := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(msg, &m))
		messages = append(messages, m)
	}

	require.GreaterOrEqual(t, len(messages), 2)
	first := messages[0]["event"].(map[string]interface{})
	assert.Equal(t, "search_start", first["type"])

	last := messages[len(messages)-1]
	data := last["data"].(map[string]interface{})
	assert.InDelta(t, 40.0, data["eta"], 1e-9)

	pathEdges := 0
	for _, m := range messages[:len(messages)-1] {
		if m["event"].(map[string]interface{})["type"] == "path_edge" {
			pathEdges++
		}
	}
	assert.Equal(t, 2, pathEdges)
}

func TestSearchEventsBadRequest(t *testing.T) {
	h := newTestHandler(t, false)
	rec := doGet(t, h, "/ws/searchEvents?origin_lat=1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMiddleware(t *testing.T) {
	h := newTestHandler(t, false)

	rec := doGet(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ".", rec.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/api/computeRoutes", strings.NewReader("origin=1"))
	req.Header.Set("Content-Type", "text/plain")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/computeRoutes?"+abcRoute, nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRealIP(t *testing.T) {
	var got string
	h := RealIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.RemoteAddr
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.7, 10.0.0.1")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "10.0.0.7", got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "not an ip")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, req.RemoteAddr, got)
}

func TestRecoverPanic(t *testing.T) {
	api := NewAPI(zap.NewNop())
	h := api.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "close", rec.Header().Get("Connection"))
}

func TestLimiter(t *testing.T) {
	h := newLimiter(1, 1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, first.Code)

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
}
