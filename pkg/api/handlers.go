package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/mastviz/mastfig/pkg/buildinfo"
	"github.com/mastviz/mastfig/pkg/canvas"
	"github.com/mastviz/mastfig/pkg/distribution"
	"github.com/mastviz/mastfig/pkg/errors"
	"github.com/mastviz/mastfig/pkg/layout"
	"github.com/mastviz/mastfig/pkg/pipeline"
)

// ContentTypes maps output formats to response content types.
var ContentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// Response headers set by the render endpoint.
const (
	CacheHeader      = "X-Cache"
	LayoutHashHeader = "X-Layout-Hash"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type presetsResponse struct {
	Default string              `json:"default"`
	Presets []canvas.PresetInfo `json:"presets"`
}

type layoutResponse struct {
	ID           string                    `json:"id"`
	Cached       bool                      `json:"cached"`
	Distribution distribution.Distribution `json:"distribution"`
	Layout       *layout.Result            `json:"layout"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, presetsResponse{Default: canvas.DefaultPreset, Presets: canvas.Presets()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	dist, err := s.runner.BuildDistribution(opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	l, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), dist, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		ID:           RequestID(r.Context()),
		Cached:       hit,
		Distribution: dist,
		Layout:       l,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheState := "miss"
	if res.CacheInfo.RenderHit {
		cacheState = "hit"
	}
	w.Header().Set("Content-Type", ContentTypes[format])
	w.Header().Set(CacheHeader, cacheState)
	w.Header().Set(LayoutHashHeader, res.LayoutHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorBody{
		Error:     errorDetail{Code: errors.ErrCodeInvalidInput, Message: r.Method + " not allowed on " + r.URL.Path},
		RequestID: RequestID(r.Context()),
	})
}

// decodeOptions reads a pipeline.Options document. An empty body yields
// zero Options, i.e. the demo distribution on the default preset.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(bytes.TrimSpace(body)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&opts); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
		}
	}
	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))
	return opts, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
