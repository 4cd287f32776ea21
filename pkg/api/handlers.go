package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gridtext/pkg/blocks"
	"github.com/matzehuels/gridtext/pkg/buildinfo"
	"github.com/matzehuels/gridtext/pkg/cluster"
	"github.com/matzehuels/gridtext/pkg/errors"
	"github.com/matzehuels/gridtext/pkg/grid"
	"github.com/matzehuels/gridtext/pkg/httputil"
	"github.com/matzehuels/gridtext/pkg/label"
	"github.com/matzehuels/gridtext/pkg/pipeline"
	"github.com/matzehuels/gridtext/pkg/render/sink"
)

// Request is the body of every analysis endpoint.
type Request struct {
	Grid    json.RawMessage  `json:"grid"`
	Options pipeline.Options `json:"options"`
}

// BlocksResponse lists blocks per line, lines ascending.
type BlocksResponse struct {
	Lines []LineBlocks `json:"lines"`
	Count int          `json:"count"`
}

// LineBlocks is the blocks of one line.
type LineBlocks struct {
	Y      int                `json:"y"`
	Blocks []blocks.TextBlock `json:"blocks"`
}

// ClustersResponse is the clustering result.
type ClustersResponse struct {
	Clusters  []cluster.TextCluster `json:"clusters"`
	Discarded int                   `json:"discarded"`
	Coverage  float64               `json:"coverage"`
}

// LabelsResponse holds the generated labels.
type LabelsResponse struct {
	Labels []label.ClusterLabel `json:"labels"`
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

var contentTypes = map[string]string{
	pipeline.FormatJSON:    "application/json",
	pipeline.FormatSVG:     "image/svg+xml",
	pipeline.FormatPNG:     "image/png",
	pipeline.FormatPDF:     "application/pdf",
	pipeline.FormatOverlay: "text/plain; charset=utf-8",
	pipeline.FormatDOT:     "text/vnd.graphviz",
}

// decode reads and validates a Request.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (grid.Grid, pipeline.Options, error) {
	req := Request{Options: pipeline.DefaultOptions()}
	if err := httputil.DecodeJSON(w, r, &req, s.maxBody); err != nil {
		return nil, req.Options, err
	}
	if len(bytes.TrimSpace(req.Grid)) == 0 {
		return nil, req.Options, errors.New(errors.ErrCodeInvalidGrid, "grid is required")
	}
	g, err := grid.ReadJSON(bytes.NewReader(req.Grid))
	if err != nil {
		return nil, req.Options, err
	}
	if err := req.Options.ValidateAndSetDefaults(); err != nil {
		return nil, req.Options, err
	}
	return g, req.Options, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = httputil.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleBlocks(w http.ResponseWriter, r *http.Request) {
	g, opts, err := s.decode(w, r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	lb := s.runner.Extract(r.Context(), g, opts)
	resp := BlocksResponse{Lines: make([]LineBlocks, 0, len(lb)), Count: lb.Count()}
	for _, y := range lb.SortedLines() {
		resp.Lines = append(resp.Lines, LineBlocks{Y: y, Blocks: lb[y]})
	}
	_ = httputil.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClusters(w http.ResponseWriter, r *http.Request) {
	g, opts, err := s.decode(w, r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	res := s.runner.Cluster(r.Context(), s.runner.Extract(r.Context(), g, opts), opts)
	clusters := res.Clusters
	if clusters == nil {
		clusters = []cluster.TextCluster{}
	}
	_ = httputil.WriteJSON(w, http.StatusOK, ClustersResponse{
		Clusters:  clusters,
		Discarded: len(res.Discarded),
		Coverage:  res.Coverage(),
	})
}

func (s *Server) handleFrames(w http.ResponseWriter, r *http.Request) {
	g, opts, err := s.decode(w, r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	a, hit, err := s.runner.AnalyzeWithCacheInfo(r.Context(), g, opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	data, err := sink.RenderJSON(a.Frames,
		sink.WithJSONGridHash(g.Hash()),
		sink.WithJSONRunID(RequestID(r.Context())))
	if err != nil {
		httputil.WriteError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode frames"))
		return
	}
	w.Header().Set("X-Cache", cacheStatus(hit))
	_ = httputil.WriteRaw(w, http.StatusOK, contentTypes[pipeline.FormatJSON], data)
}

func (s *Server) handleLabels(w http.ResponseWriter, r *http.Request) {
	g, opts, err := s.decode(w, r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	a, _, err := s.runner.AnalyzeWithCacheInfo(r.Context(), g, opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	labels, err := s.runner.Label(r.Context(), a.Clusters, opts)
	if err != nil {
		httputil.WriteError(w, errors.Wrap(errors.ErrCodeTimeout, err, "generate labels"))
		return
	}
	if labels == nil {
		labels = []label.ClusterLabel{}
	}
	_ = httputil.WriteJSON(w, http.StatusOK, LabelsResponse{Labels: labels})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		httputil.WriteError(w, err)
		return
	}
	g, opts, err := s.decode(w, r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	opts.Formats = []string{format}
	res, err := s.runner.Execute(r.Context(), g, opts)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("X-Cache", cacheStatus(res.CacheInfo.AnalysisHit))
	_ = httputil.WriteRaw(w, http.StatusOK, contentTypes[format], res.Artifacts[format])
}

func notFound(r *http.Request) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
