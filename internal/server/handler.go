package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/XGenerationLab/XiYan-DateResolver/internal/dateparse"
	"github.com/XGenerationLab/XiYan-DateResolver/internal/output"
)

const maxBodyBytes = 1 << 20

// ResolveRequest is the body of the resolve and comment endpoints.
type ResolveRequest struct {
	Expressions []string `json:"expressions"`
	// Now is an optional anchor date in any form dateparse accepts.
	Now string `json:"now,omitempty"`
}

type handler struct {
	resolver Resolver
	location *time.Location
	now      func() time.Time
}

func newHandler(config Config) *handler {
	h := &handler{
		resolver: config.Dependencies.Resolver,
		location: config.Location,
		now:      config.Dependencies.Now,
	}
	if h.location == nil {
		h.location = time.Local
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

func (h *handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (h *handler) ListPatterns(w http.ResponseWriter, r *http.Request) {
	categories := h.resolver.Categories()
	writeJSON(w, r, http.StatusOK, output.FormatListResponse(categories, len(categories)))
}

func (h *handler) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	req, anchor, ok := h.decode(w, r)
	if !ok {
		return
	}

	results, err := h.resolver.ResolveAll(ctx, anchor, req.Expressions)
	if err != nil {
		logger.Error().
			Err(err).
			Int("expressions", len(req.Expressions)).
			Msg("failed to resolve expressions")
		writeError(w, r, http.StatusServiceUnavailable, "resolution cancelled")
		return
	}

	writeJSON(w, r, http.StatusOK, output.FormatResolveResponse(anchor, results))
}

func (h *handler) Comment(w http.ResponseWriter, r *http.Request) {
	req, anchor, ok := h.decode(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, h.resolver.BuildDateTimeComment(anchor, req.Expressions))
}

// decode reads a ResolveRequest and its anchor, answering 400 on bad input.
func (h *handler) decode(w http.ResponseWriter, r *http.Request) (ResolveRequest, time.Time, bool) {
	var req ResolveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return req, time.Time{}, false
	}

	anchor, err := dateparse.ParseAnchor(req.Now, h.now().In(h.location))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return req, time.Time{}, false
	}
	return req, anchor, true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := output.WriteJSON(w, v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	zerolog.Ctx(r.Context()).Debug().
		Int("status", status).
		Str("error", msg).
		Msg("rejecting request")
	writeJSON(w, r, status, output.ErrorResponse{Error: msg})
}
