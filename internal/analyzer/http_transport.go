package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/accesslens/accesslens/internal/model"
	"github.com/accesslens/accesslens/internal/platform/errs"
	"github.com/accesslens/accesslens/internal/report"
)

const analyzeTimeout = 60 * time.Second

var (
	errURLRequired    = errors.New("the \"url\" field is required")
	errResultRequired = errors.New("the \"result\" field is required")
)

// Transport handles HTTP requests for accessibility analysis and
// report export.
type Transport struct {
	service *Service
	logger  *slog.Logger
}

// NewTransport creates an HTTP transport backed by the given service.
func NewTransport(service *Service, logger *slog.Logger) *Transport {
	return &Transport{service: service, logger: logger}
}

// RegisterRoutes attaches the transport's handlers to the given mux.
func (t *Transport) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /analyze", t.handleAnalyze)
	mux.HandleFunc("GET /analyze/events", t.handleAnalyzeEvents)
	mux.HandleFunc("POST /report", t.handleReport)
}

type analyzeRequest struct {
	URL string `json:"url"`
}

func (r analyzeRequest) validate() error {
	if r.URL == "" {
		return errURLRequired
	}
	return nil
}

func (t *Transport) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	const maxRequestBody = 1 << 20 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.renderError(w, http.StatusBadRequest, "Invalid request body. Please send a JSON object with a \"url\" field.")
		return
	}

	if err := req.validate(); err != nil {
		t.renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), analyzeTimeout)
	defer cancel()

	result, err := t.service.Analyze(ctx, req.URL)
	if err != nil {
		t.handleServiceError(w, err)
		return
	}

	t.renderJSON(w, http.StatusOK, result)
}

// handleAnalyzeEvents streams one scan over Server-Sent Events: a
// "progress" event per step, then a terminal "result" or "error" event.
func (t *Transport) handleAnalyzeEvents(w http.ResponseWriter, r *http.Request) {
	targetURL := r.URL.Query().Get("url")
	if targetURL == "" {
		t.renderError(w, http.StatusBadRequest, errURLRequired.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		t.renderError(w, http.StatusInternalServerError, "Streaming is not supported by this server.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), analyzeTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	result, err := t.service.AnalyzeWithProgress(ctx, targetURL, func(pct int) {
		writeSSE(w, flusher, "progress", strconv.Itoa(pct))
	})
	if err != nil {
		message := "An unexpected error occurred."
		var appErr *errs.AppError
		if errors.As(err, &appErr) {
			message = appErr.Message
		}
		writeSSE(w, flusher, "error", message)
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		t.logger.Error("failed to encode result event", "error", err)
		writeSSE(w, flusher, "error", "An unexpected error occurred.")
		return
	}
	writeSSE(w, flusher, "result", string(payload))
}

func writeSSE(w http.ResponseWriter, flusher http.Flusher, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}

type reportRequest struct {
	URL    string                `json:"url"`
	Result *model.AnalysisResult `json:"result"`
}

func (r reportRequest) validate() error {
	if r.URL == "" {
		return errURLRequired
	}
	if r.Result == nil {
		return errResultRequired
	}
	return r.Result.Validate()
}

// handleReport turns a completed analysis result back into the PDF
// artifact. The URL is echoed into the report, not re-validated; the
// result record must be fully populated.
func (t *Transport) handleReport(w http.ResponseWriter, r *http.Request) {
	const maxRequestBody = 1 << 20 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.renderError(w, http.StatusBadRequest, "Invalid request body. Please send a JSON object with \"url\" and \"result\" fields.")
		return
	}

	if err := req.validate(); err != nil {
		t.renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Build fully before writing anything so a render failure surfaces
	// as an error response, never as a truncated document.
	data, err := report.BuildPDF(req.URL, req.Result)
	if err != nil {
		t.handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.PDFFileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		t.logger.Error("failed to write report response", "error", err)
	}
}

func (t *Transport) handleServiceError(w http.ResponseWriter, err error) {
	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch appErr.Kind {
		case errs.InvalidInput:
			status = http.StatusBadRequest
		case errs.Timeout:
			status = http.StatusGatewayTimeout
		case errs.ScanFailed, errs.ExportFailed, errs.Unknown:
			// 500 Internal Server Error
		}
		t.renderError(w, status, appErr.Message)
		return
	}

	t.renderError(w, http.StatusInternalServerError, "An unexpected error occurred.")
}

func (t *Transport) renderJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		t.logger.Error("failed to encode response", "error", err)
		http.Error(w, `{"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (t *Transport) renderError(w http.ResponseWriter, status int, message string) {
	t.renderJSON(w, status, model.ErrorResponse{
		Error:      http.StatusText(status),
		StatusCode: status,
		Message:    message,
	})
}
