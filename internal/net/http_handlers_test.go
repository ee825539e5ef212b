package net

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	worldnav "worldnav"
	"worldnav/internal/metrics"
)

func smallGrid() *worldnav.NavGrid {
	return &worldnav.NavGrid{
		Vertices: make([]worldnav.Vertex, 2*worldnav.Width),
		Edges:    make(map[uint32][]worldnav.Edge),
	}
}

func newTestHandler(grid *worldnav.NavGrid) http.Handler {
	registry := prometheus.NewRegistry()
	collectors := metrics.NewCollectors(registry)
	return NewHTTPHandler(HTTPHandlerConfig{
		Grid:     grid,
		Registry: registry,
		Metrics:  collectors,
	})
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestHandler(smallGrid())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Body.String() != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", resp.Body.String())
	}
}

func TestPathEndpointFindsAdjacentRoute(t *testing.T) {
	grid := smallGrid()
	start := worldnav.Coordinate{X: 0, Y: 0, Plane: 0}
	end := worldnav.Coordinate{X: 1, Y: 0, Plane: 0}

	v := grid.Vertex(start.Index())
	v.Flags |= worldnav.FlagE
	grid.Vertices[start.Index()] = v

	w := grid.Vertex(end.Index())
	w.Flags |= worldnav.FlagW
	grid.Vertices[end.Index()] = w

	handler := newTestHandler(grid)

	body, _ := json.Marshal(PathRequest{Start: start, End: end})
	req := httptest.NewRequest(http.MethodPost, "/path", bytes.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var decoded PathResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded.Steps) != 1 {
		t.Fatalf("expected 1 step, got %d: %+v", len(decoded.Steps), decoded.Steps)
	}
	if decoded.Steps[0].Type != "step" {
		t.Fatalf("expected a plain grid step, got %q", decoded.Steps[0].Type)
	}
}

func TestPathEndpointReturnsNilStepsWhenUnreachable(t *testing.T) {
	grid := smallGrid()
	start := worldnav.Coordinate{X: 0, Y: 0, Plane: 0}
	end := worldnav.Coordinate{X: 1, Y: 0, Plane: 0}

	handler := newTestHandler(grid)

	body, _ := json.Marshal(PathRequest{Start: start, End: end})
	req := httptest.NewRequest(http.MethodPost, "/path", bytes.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var decoded PathResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Steps != nil {
		t.Fatalf("expected nil steps for an unreachable query, got %+v", decoded.Steps)
	}
}

func TestPathEndpointRejectsOutOfBoundsCoordinate(t *testing.T) {
	handler := newTestHandler(smallGrid())

	req := PathRequest{
		Start: worldnav.Coordinate{X: 0, Y: 0, Plane: 0},
		End:   worldnav.Coordinate{X: 0, Y: 0, Plane: 200},
	}
	body, _ := json.Marshal(req)
	httpReq := httptest.NewRequest(http.MethodPost, "/path", bytes.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httpReq)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestPathEndpointRejectsWrongMethod(t *testing.T) {
	handler := newTestHandler(smallGrid())

	req := httptest.NewRequest(http.MethodGet, "/path", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
}

func TestSelectEndpointSurfacesRequirementVocabulary(t *testing.T) {
	grid := smallGrid()
	source := worldnav.Coordinate{X: 0, Y: 0, Plane: 0}
	grid.AddEdge(source.Index(), worldnav.Edge{
		Destination: worldnav.Coordinate{X: 1, Y: 0, Plane: 0},
		Cost:        1,
		Definition:  worldnav.DoorEdge{ID: 1, Position: source, Action: worldnav.MustPattern("^Open$")},
		Requirements: []worldnav.RequirementDefinition{
			worldnav.SkillRequirement{Skill: "magic", Level: 50},
		},
	})

	handler := newTestHandler(grid)

	req := httptest.NewRequest(http.MethodGet, "/select", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var decoded SelectResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded.Skills) != 1 || decoded.Skills[0] != "magic" {
		t.Fatalf("expected skills [magic], got %+v", decoded.Skills)
	}
}

func TestMetricsEndpointExposesRegisteredCollectors(t *testing.T) {
	handler := newTestHandler(smallGrid())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte("worldnav_queries_total")) {
		t.Fatalf("expected worldnav_queries_total in metrics output, got:\n%s", resp.Body.String())
	}
}
