package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gdlkit/pkg/buildinfo"
	"github.com/matzehuels/gdlkit/pkg/errors"
	gdlio "github.com/matzehuels/gdlkit/pkg/io"
	"github.com/matzehuels/gdlkit/pkg/pipeline"
	"github.com/matzehuels/gdlkit/pkg/store"
)

const maxListLimit = 500

var contentTypes = map[string]string{
	pipeline.FormatGDL: "text/plain; charset=utf-8",
	pipeline.FormatDOT: "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPDF: "application/pdf",
	pipeline.FormatPNG: "image/png",
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Current()})
}

// readDescription decodes the request body in the format named by its
// Content-Type.
func (s *Server) readDescription(w http.ResponseWriter, r *http.Request) (*gdlio.Description, error) {
	format := gdlio.FormatJSON
	if ct := r.Header.Get("Content-Type"); ct != "" {
		f, err := gdlio.ParseFormat(ct)
		if err != nil {
			return nil, err
		}
		format = f
	}
	return gdlio.Read(http.MaxBytesReader(w, r.Body, s.maxBody), format)
}

func (s *Server) dump(w http.ResponseWriter, r *http.Request) {
	s.serveFormat(w, r, pipeline.FormatGDL)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	s.serveFormat(w, r, format)
}

func (s *Server) serveFormat(w http.ResponseWriter, r *http.Request, format string) {
	opts, err := renderOptions(r, format)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	desc, err := s.readDescription(w, r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	res, err := s.runner.Render(r.Context(), desc, opts)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set("X-Document-Hash", res.Hash)
	if res.DocumentID != "" {
		h.Set("X-Document-ID", res.DocumentID)
	}
	cache := "MISS"
	if (format == pipeline.FormatGDL && res.CacheInfo.DumpHit) || (format != pipeline.FormatGDL && res.CacheInfo.RenderHit) {
		cache = "HIT"
	}
	h.Set("X-Cache", cache)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// renderOptions reads the query parameters save, layout, detailed and scale.
func renderOptions(r *http.Request, format string) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Formats: []string{format},
		Layout:  q.Get("layout"),
	}
	var err error
	if opts.Save, err = boolParam(q.Get("save"), "save"); err != nil {
		return opts, err
	}
	if opts.Detailed, err = boolParam(q.Get("detailed"), "detailed"); err != nil {
		return opts, err
	}
	if v := q.Get("scale"); v != "" {
		opts.Scale, err = strconv.ParseFloat(v, 64)
		if err != nil || opts.Scale <= 0 || opts.Scale > 10 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "scale must be a number in (0, 10]")
		}
	}
	return opts, opts.ValidateAndSetDefaults()
}

func boolParam(v, name string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean", name)
	}
	return b, nil
}

type listResponse struct {
	Documents []*store.Record `json:"documents"`
}

func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) {
	st, ok := s.documentStore(w)
	if !ok {
		return
	}

	limit := store.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxListLimit {
			writeError(w, s.logger, errors.New(errors.ErrCodeInvalidInput, "limit must be between 1 and %d", maxListLimit))
			return
		}
		limit = n
	}

	recs, err := st.List(r.Context(), limit)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if recs == nil {
		recs = []*store.Record{}
	}
	writeJSON(w, http.StatusOK, listResponse{Documents: recs})
}

func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	st, ok := s.documentStore(w)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := store.ValidateID(id); err != nil {
		writeError(w, s.logger, err)
		return
	}
	rec, err := st.Get(r.Context(), id)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) documentStore(w http.ResponseWriter) (store.Store, bool) {
	if s.runner.Store == nil {
		writeError(w, s.logger, errors.New(errors.ErrCodeStorage, "document storage is not configured"))
		return nil, false
	}
	return s.runner.Store, true
}
