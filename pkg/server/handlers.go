package server

import (
	"encoding/json"
	stderrors "errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/microviz/pkg/buildinfo"
	"github.com/matzehuels/microviz/pkg/engine"
	"github.com/matzehuels/microviz/pkg/errors"
	"github.com/matzehuels/microviz/pkg/io"
	"github.com/matzehuels/microviz/pkg/model"
	"github.com/matzehuels/microviz/pkg/pipeline"
	"github.com/matzehuels/microviz/pkg/sink"
)

// Response headers set on successful renders.
const (
	WarningsHeader = "X-Microviz-Warnings"
	CacheHeader    = "X-Microviz-Cache"
)

type handler struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// ErrorResponse is the JSON body of every error answer.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// TypeInfo describes one registered chart type.
type TypeInfo struct {
	Type        model.Type `json:"type"`
	DefaultPad  float64    `json:"defaultPad"`
	DefaultSize model.Size `json:"defaultSize"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (h *handler) types(w http.ResponseWriter, r *http.Request) {
	tags := engine.Types()
	out := make([]TypeInfo, 0, len(tags))
	for _, tag := range tags {
		c, ok := engine.Lookup(tag)
		if !ok {
			continue
		}
		out = append(out, TypeInfo{Type: tag, DefaultPad: c.DefaultPad(), DefaultSize: c.DefaultSize()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) render(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format := sink.FormatSVG
	if v := q.Get("format"); v != "" {
		f, err := sink.ParseFormat(v)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		format = f
	}

	var scale float64
	if v := q.Get("scale"); v != "" {
		s, err := strconv.ParseFloat(v, 64)
		if err != nil {
			h.fail(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid scale %q", v))
			return
		}
		scale = s
	}

	inFormat, err := inputFormat(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	doc, err := io.ReadDocument(http.MaxBytesReader(w, r.Body, MaxBodyBytes), inFormat)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	in, err := doc.Input()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.runner.Execute(r.Context(), pipeline.Options{
		Input:   in,
		Formats: []sink.Format{format},
		Scale:   scale,
		Title:   q.Get("title"),
		Class:   q.Get("class"),
		Refresh: q.Get("refresh") == "true",
		Logger:  h.logger.With("request_id", RequestID(r.Context())),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	cacheState := "miss"
	if result.CacheInfo.RenderHit {
		cacheState = "hit"
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set(WarningsHeader, strconv.Itoa(result.Stats.Warnings))
	w.Header().Set(CacheHeader, cacheState)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// inputFormat picks the body encoding from ?input=, then Content-Type.
func inputFormat(r *http.Request) (io.Format, error) {
	if v := r.URL.Query().Get("input"); v != "" {
		return io.ParseFormat(v)
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return io.FormatJSON, nil
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid content type %q", ct)
	}
	switch {
	case mt == "application/json", mt == "text/plain":
		return io.FormatJSON, nil
	case strings.HasSuffix(mt, "toml"):
		return io.FormatTOML, nil
	case strings.HasSuffix(mt, "yaml"), strings.HasSuffix(mt, "yml"):
		return io.FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported content type %q", mt)
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("render failed", "error", err, "request_id", RequestID(r.Context()))
	}
	writeJSON(w, status, ErrorResponse{Error: errors.UserMessage(err), Code: string(errors.GetCode(err))})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
