// Package server serves the projection calculator over HTTP.
package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rpgo/fire-projector/internal/calculation"
	"github.com/rpgo/fire-projector/internal/config"
	"github.com/rpgo/fire-projector/internal/domain"
	"github.com/rpgo/fire-projector/internal/output"
	"github.com/rpgo/fire-projector/internal/service"
)

const (
	defaultRequestTimeout = 5 * time.Second
	shutdownTimeout       = 10 * time.Second
	maxJSONBody           = 1 << 16
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

// Options configures a Server.
type Options struct {
	Service  *service.ProjectionService
	Defaults domain.ProjectionParameters
	Display  domain.DisplaySettings
	Logger   calculation.Logger
	// Limiter throttles the projection endpoints; nil disables throttling.
	Limiter        *RateLimiter
	RequestTimeout time.Duration
}

// Server routes calculator, API and report requests to a ProjectionService.
type Server struct {
	svc      *service.ProjectionService
	defaults domain.ProjectionParameters
	display  domain.DisplaySettings
	logger   calculation.Logger
	limiter  *RateLimiter
	timeout  time.Duration
	handler  http.Handler
}

func New(opts Options) *Server {
	s := &Server{
		svc:      opts.Service,
		defaults: opts.Defaults,
		display:  opts.Display,
		logger:   opts.Logger,
		limiter:  opts.Limiter,
		timeout:  opts.RequestTimeout,
	}
	if s.svc == nil {
		s.svc = service.NewProjectionService(nil, nil, opts.Logger, opts.Display)
	}
	if s.logger == nil {
		s.logger = calculation.NopLogger{}
	}
	if s.timeout <= 0 {
		s.timeout = defaultRequestTimeout
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /{$}", s.limited(http.HandlerFunc(s.handleIndex)))
	mux.Handle("/api/projection", s.limited(http.HandlerFunc(s.handleAPI)))
	for _, format := range []string{"csv", "html", "pdf"} {
		mux.Handle("GET /report."+format, s.limited(s.reportHandler(format)))
	}
	s.handler = LoggingMiddleware(s.logger, mux)
	return s
}

func (s *Server) limited(h http.Handler) http.Handler {
	if s.limiter == nil {
		return h
	}
	return RateLimitMiddleware(s.limiter, h)
}

// Handler returns the root handler with logging applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Infof("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Infof("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

// requestParams reads parameters from a JSON body or from query/form values.
// Missing fields keep the server defaults.
func (s *Server) requestParams(r *http.Request) (domain.ProjectionParameters, error) {
	if r.Method == http.MethodPost && isJSON(r.Header.Get("Content-Type")) {
		params := s.defaults
		dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&params); err != nil {
			return s.defaults, fmt.Errorf("%w: invalid JSON body: %v", config.ErrInvalidParameter, err)
		}
		return params, nil
	}
	if err := r.ParseForm(); err != nil {
		return s.defaults, fmt.Errorf("%w: %v", config.ErrInvalidParameter, err)
	}
	return config.ParseParameters(r.Form, s.defaults)
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "application/json"
}

// requestDisplay applies an optional ?unit= override.
func (s *Server) requestDisplay(r *http.Request) domain.DisplaySettings {
	d := s.display
	if u := r.URL.Query().Get("unit"); u != "" && config.IsKnownDisplayUnit(u) {
		d.Unit = u
	}
	return d
}

func (s *Server) run(r *http.Request, params domain.ProjectionParameters) (*domain.ProjectionReport, error) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	report, err := s.svc.Run(ctx, params)
	if report != nil {
		report.Display = s.requestDisplay(r)
	}
	return report, err
}

func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, config.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, calculation.ErrDidNotConverge):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

type apiResponse struct {
	Report *domain.ProjectionReport `json:"report,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		writeJSON(w, http.StatusMethodNotAllowed, apiResponse{Error: "method not allowed"})
		return
	}

	params, err := s.requestParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: err.Error()})
		return
	}

	report, err := s.run(r, params)
	resp := apiResponse{Report: report}
	if err != nil {
		resp.Error = err.Error()
	}
	status := statusFor(err)

	var buf bytes.Buffer
	if encErr := json.NewEncoder(&buf).Encode(resp); encErr != nil {
		// NaN and Inf have no JSON form.
		writeJSON(w, http.StatusUnprocessableEntity, apiResponse{Error: "projection produced non-finite values"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var reportContentTypes = map[string]string{
	"csv":  "text/csv; charset=utf-8",
	"html": "text/html; charset=utf-8",
	"pdf":  "application/pdf",
}

// reportHandler serves a downloadable report. Partial projections are still
// served; the stop reason is exposed in the X-Projection-Stop header.
func (s *Server) reportHandler(format string) http.Handler {
	f := output.GetFormatterByName(format)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params, err := s.requestParams(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		report, err := s.run(r, params)
		if report == nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		data, err := f.Format(report)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", reportContentTypes[format])
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "projection."+output.ExtensionFor(f)))
		w.Header().Set("X-Projection-Stop", string(report.Result.StopReason))
		_, _ = w.Write(data)
	})
}

type formField struct {
	Key   string
	Label string
	Value string
}

type unitOption struct {
	Name     string
	Selected bool
}

type downloadLink struct {
	Label string
	Href  template.URL
}

type indexData struct {
	Fields    []formField
	Adjust    bool
	Units     []unitOption
	Body      template.HTML
	Error     string
	Downloads []downloadLink
	HasInput  bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data := indexData{Adjust: s.defaults.AdjustForInflation}
	for _, f := range config.ParameterFields {
		if _, ok := r.Form[f.Key]; ok {
			data.HasInput = true
		}
	}
	for _, f := range config.ParameterFields {
		value := strconv.FormatFloat(f.Value(&s.defaults), 'f', -1, 64)
		if data.HasInput {
			value = r.Form.Get(f.Key)
		}
		data.Fields = append(data.Fields, formField{Key: f.Key, Label: f.Label, Value: value})
	}
	display := s.requestDisplay(r)
	for _, name := range domain.DisplayUnitNames() {
		data.Units = append(data.Units, unitOption{Name: name, Selected: name == display.Unit})
	}

	if data.HasInput {
		s.renderProjection(r, &data)
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		s.logger.Errorf("render index: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) renderProjection(r *http.Request, data *indexData) {
	params, err := config.ParseParameters(r.Form, s.defaults)
	if err != nil {
		data.Error = err.Error()
		return
	}
	data.Adjust = params.AdjustForInflation

	report, err := s.run(r, params)
	if err != nil {
		data.Error = err.Error()
	}
	if report == nil {
		return
	}
	body, err := output.RenderReportBody(report)
	if err != nil {
		data.Error = err.Error()
		return
	}
	data.Body = body
	for _, format := range []string{"csv", "html", "pdf"} {
		data.Downloads = append(data.Downloads, downloadLink{
			Label: strings.ToUpper(format),
			Href:  template.URL("/report." + format + "?" + r.URL.RawQuery),
		})
	}
}
