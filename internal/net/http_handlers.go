package net

import (
	"encoding/json"
	"fmt"
	"log"
	nethttp "net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	worldnav "worldnav"
	"worldnav/internal/metrics"
	"worldnav/internal/observability"
	"worldnav/internal/pathfinder"
	"worldnav/internal/telemetry"
)

// HTTPHandlerConfig wires the query service's dependencies into its HTTP
// surface.
type HTTPHandlerConfig struct {
	Grid          *worldnav.NavGrid
	Registry      *prometheus.Registry
	Metrics       *metrics.Collectors
	Logger        *telemetry.EventLogger
	Observability observability.Config
}

// NewHTTPHandler builds the query service's mux: POST /path, GET /select,
// GET /metrics, GET /health, plus pprof debug endpoints.
func NewHTTPHandler(cfg HTTPHandlerConfig) nethttp.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.NewEventLogger(nil, log.Default())
	}

	mux := nethttp.NewServeMux()

	registerPprofHandlers(mux, cfg.Observability.EnablePprofTrace)

	mux.HandleFunc("/health", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	hub := newStreamHub()

	mux.HandleFunc("/path", pathHandler(cfg.Grid, cfg.Metrics, logger, hub))
	mux.HandleFunc("/select", selectHandler(cfg.Grid))
	mux.HandleFunc("/stream", streamHandler(hub, logger))

	if cfg.Registry != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))
	}

	return mux
}

type PathRequest struct {
	Start     worldnav.Coordinate `json:"start"`
	End       worldnav.Coordinate `json:"end"`
	GameState *GameStateJSON      `json:"game_state,omitempty"`
}

type GameStateJSON struct {
	Member      bool              `json:"member"`
	SkillLevels map[string]uint8  `json:"skill_levels"`
	Items       map[string]uint32 `json:"items"`
	Varps       map[uint32]int32  `json:"varps"`
	Varbits     map[uint32]int32  `json:"varbits"`
}

func (g *GameStateJSON) toGameState() worldnav.GameState {
	state := worldnav.NewGameState()
	if g == nil {
		return state
	}
	state.Member = g.Member
	for k, v := range g.SkillLevels {
		state.SkillLevels[k] = v
	}
	for k, v := range g.Items {
		state.Items[k] = v
	}
	for k, v := range g.Varps {
		state.Varps[k] = v
	}
	for k, v := range g.Varbits {
		state.Varbits[k] = v
	}
	return state
}

type StepJSON struct {
	Type       string `json:"type"`
	Definition any    `json:"definition,omitempty"`
	Coordinate any    `json:"coordinate,omitempty"`
}

type PathResponse struct {
	Steps []StepJSON `json:"steps"`
}

// queryEvent is broadcast to every connected /stream subscriber once a
// /path query completes, successfully or not.
type queryEvent struct {
	Cost            uint32  `json:"cost"`
	StepCount       int     `json:"step_count"`
	DurationSeconds float64 `json:"duration_seconds"`
	Outcome         string  `json:"outcome"`
}

func pathHandler(grid *worldnav.NavGrid, collectors *metrics.Collectors, logger *telemetry.EventLogger, hub *streamHub) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			httpError(w, "method not allowed", nethttp.StatusMethodNotAllowed)
			return
		}

		defer func() {
			if rec := recover(); rec != nil {
				writeTypedError(w, logger, recoveredErr(rec))
			}
		}()

		var req PathRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			recordResult(collectors, metrics.ResultBadRequest)
			httpError(w, "invalid payload", nethttp.StatusBadRequest)
			return
		}

		if !req.Start.Validate() || !req.End.Validate() {
			recordResult(collectors, metrics.ResultBadRequest)
			writeTypedError(w, logger, &worldnav.DomainError{Detail: "start/end coordinate out of bounds"})
			return
		}

		started := time.Now()
		steps, cost := pathfinder.Dijkstra(grid, req.Start, req.End, req.GameState.toGameState())
		duration := time.Since(started).Seconds()
		if collectors != nil {
			collectors.QueryDurationSeconds.Observe(duration)
		}

		if steps == nil {
			recordResult(collectors, metrics.ResultUnreachable)
			writeJSON(w, PathResponse{Steps: nil})
			hub.broadcast(queryEvent{DurationSeconds: duration, Outcome: "unreachable"})
			return
		}

		recordResult(collectors, metrics.ResultFound)
		response := PathResponse{Steps: make([]StepJSON, len(steps))}
		for i, step := range steps {
			if step.Edge != nil {
				response.Steps[i] = StepJSON{Type: "edge", Definition: step.Edge}
			} else {
				response.Steps[i] = StepJSON{Type: "step", Coordinate: step.Coordinate}
			}
		}
		writeJSON(w, response)
		logger.Info("http", "path.query", "path query completed", map[string]any{
			"start": req.Start, "end": req.End, "steps": len(steps), "cost": cost,
		})
		hub.broadcast(queryEvent{Cost: cost, StepCount: len(steps), DurationSeconds: duration, Outcome: "found"})
	}
}

// recoveredErr normalizes a recovered panic value into an error,
// preserving *worldnav.IntegrityError and similar typed panics raised by
// the pathfinder so writeTypedError can classify them.
func recoveredErr(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return fmt.Errorf("%v", rec)
}

// writeTypedError type-switches on worldnav's typed error hierarchy to
// pick an HTTP status code and a logging severity/category, falling back
// to 500/SeverityError for anything untyped.
func writeTypedError(w nethttp.ResponseWriter, logger *telemetry.EventLogger, err error) {
	switch e := err.(type) {
	case *worldnav.DomainError:
		logger.Warn("http", "path.rejected", e.Error(), nil)
		httpError(w, e.Error(), nethttp.StatusBadRequest)
	case *worldnav.IntegrityError:
		logger.Error("pathfinder", "path.integrity_error", e.Error(), map[string]any{"index": e.Index})
		httpError(w, e.Error(), nethttp.StatusInternalServerError)
	case *worldnav.DataCorruptionError:
		logger.Error("pathfinder", "path.data_corruption", e.Error(), nil)
		httpError(w, e.Error(), nethttp.StatusInternalServerError)
	default:
		logger.Error("http", "path.unhandled_error", err.Error(), nil)
		httpError(w, "internal error", nethttp.StatusInternalServerError)
	}
}

type SelectResponse struct {
	Varps   []uint32 `json:"varps"`
	Varbits []uint32 `json:"varbits"`
	Items   []string `json:"items"`
	Skills  []string `json:"skills"`
}

func selectHandler(grid *worldnav.NavGrid) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodGet {
			httpError(w, "method not allowed", nethttp.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, collectRequirementSurface(grid))
	}
}

func collectRequirementSurface(grid *worldnav.NavGrid) SelectResponse {
	varps := map[uint32]struct{}{}
	varbits := map[uint32]struct{}{}
	items := map[string]struct{}{}
	skills := map[string]struct{}{}

	visit := func(reqs []worldnav.RequirementDefinition) {
		for _, req := range reqs {
			switch r := req.(type) {
			case worldnav.VarpRequirement:
				varps[r.Index] = struct{}{}
			case worldnav.VarbitRequirement:
				varbits[r.Index] = struct{}{}
			case worldnav.ItemRequirement:
				items[r.Item.String()] = struct{}{}
			case worldnav.SkillRequirement:
				skills[r.Skill] = struct{}{}
			}
		}
	}

	for _, edges := range grid.Edges {
		for _, edge := range edges {
			visit(edge.Requirements)
		}
	}
	for _, teleport := range grid.Teleports {
		visit(teleport.Requirements)
	}

	resp := SelectResponse{}
	for k := range varps {
		resp.Varps = append(resp.Varps, k)
	}
	for k := range varbits {
		resp.Varbits = append(resp.Varbits, k)
	}
	for k := range items {
		resp.Items = append(resp.Items, k)
	}
	for k := range skills {
		resp.Skills = append(resp.Skills, k)
	}
	return resp
}

func recordResult(collectors *metrics.Collectors, result string) {
	if collectors == nil {
		return
	}
	collectors.QueriesTotal.WithLabelValues(result).Inc()
}

func writeJSON(w nethttp.ResponseWriter, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		httpError(w, "failed to encode", nethttp.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func httpError(w nethttp.ResponseWriter, msg string, code int) {
	nethttp.Error(w, msg, code)
}

func registerPprofHandlers(mux *nethttp.ServeMux, enableTrace bool) {
	mux.HandleFunc("/debug/pprof/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/debug/pprof/" {
			nethttp.NotFound(w, r)
			return
		}
		pprof.Index(w, r)
	})

	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)

	profiles := []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"}
	for _, name := range profiles {
		mux.Handle("/debug/pprof/"+name, pprof.Handler(name))
	}

	if enableTrace {
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
		return
	}

	mux.HandleFunc("/debug/pprof/trace", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		httpError(w, "pprof trace disabled", nethttp.StatusNotFound)
	})
}
