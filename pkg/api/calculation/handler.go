// Package calculation exposes the projection engine over HTTP. One worker
// process serves stateless calculation requests; persistence is optional and
// keyed by run ID.
package calculation

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"lease_proforma/pkg/core/codec"
	"lease_proforma/pkg/core/config"
	"lease_proforma/pkg/core/engine"
	"lease_proforma/pkg/core/store"
)

// Handler serves the calculation endpoints.
type Handler struct {
	timeout time.Duration
	repo    *store.RunRepo // nil disables persistence
}

// NewHandler builds a handler with the given run timeout. repo may be nil
// when the worker runs without a database.
func NewHandler(timeout time.Duration, repo *store.RunRepo) *Handler {
	return &Handler{timeout: timeout, repo: repo}
}

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type calculationResponse struct {
	RunID uuid.UUID `json:"run_id"`
	*engine.CalculationEngineOutput
}

// Handle routes all requests for the worker.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	switch {
	case path == "/health" && method == fasthttp.MethodGet:
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"status":"ok"}`)
	case path == "/api/v1/calculate" && method == fasthttp.MethodPost:
		h.calculate(ctx)
	case path == "/api/v1/runs" && method == fasthttp.MethodGet:
		h.listRuns(ctx)
	case strings.HasPrefix(path, "/api/v1/runs/") && method == fasthttp.MethodGet:
		h.loadRun(ctx, strings.TrimPrefix(path, "/api/v1/runs/"))
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func (h *Handler) calculate(ctx *fasthttp.RequestCtx) {
	input, err := codec.DecodeInput(ctx.PostBody())
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	runCtx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	type runResult struct {
		out *engine.CalculationEngineOutput
		err error
	}
	done := make(chan runResult, 1)
	go func() {
		out, err := engine.Run(*input)
		done <- runResult{out, err}
	}()

	var res runResult
	select {
	case <-runCtx.Done():
		// A run past the deadline is a hard failure, not a partial result.
		log.Printf("[API] calculation exceeded %s timeout", h.timeout)
		writeError(ctx, fasthttp.StatusGatewayTimeout, "calculation timed out")
		return
	case res = <-done:
	}

	if res.err != nil {
		var cfgErr *config.ConfigurationError
		if errors.As(res.err, &cfgErr) {
			writeError(ctx, fasthttp.StatusUnprocessableEntity, res.err.Error())
			return
		}
		writeError(ctx, fasthttp.StatusInternalServerError, res.err.Error())
		return
	}

	runID := uuid.New()
	if h.repo != nil {
		if err := h.repo.Save(ctx, runID, input, res.out); err != nil {
			// The caller still gets their result; persistence is best effort.
			log.Printf("[API] failed to persist run %s: %v", runID, err)
		}
	}

	writeJSON(ctx, fasthttp.StatusOK, calculationResponse{
		RunID:                   runID,
		CalculationEngineOutput: res.out,
	})
}

func (h *Handler) loadRun(ctx *fasthttp.RequestCtx, rawID string) {
	if h.repo == nil {
		writeError(ctx, fasthttp.StatusNotFound, "run persistence disabled")
		return
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid run id: "+rawID)
		return
	}
	record, err := h.repo.Load(ctx, id)
	if err != nil {
		writeError(ctx, fasthttp.StatusNotFound, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, calculationResponse{
		RunID:                   record.ID,
		CalculationEngineOutput: record.Output,
	})
}

func (h *Handler) listRuns(ctx *fasthttp.RequestCtx) {
	if h.repo == nil {
		writeError(ctx, fasthttp.StatusNotFound, "run persistence disabled")
		return
	}
	listings, err := h.repo.ListRecent(ctx, 50)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, listings)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to encode response: "+err.Error())
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	data, _ := json.Marshal(errorResponse{Status: status, Message: message})
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}
