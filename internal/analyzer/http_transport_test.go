package analyzer

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/accesslens/accesslens/internal/model"
	"github.com/accesslens/accesslens/internal/platform/errs"
)

func newTestMux(t *testing.T, provider Provider) *http.ServeMux {
	t.Helper()
	service := NewService(provider, slog.Default())
	transport := NewTransport(service, slog.Default())
	mux := http.NewServeMux()
	transport.RegisterRoutes(mux)
	return mux
}

func decodeErrorResponse(t *testing.T, body *bytes.Buffer) model.ErrorResponse {
	t.Helper()
	var resp model.ErrorResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp
}

func TestHandleAnalyze_Success(t *testing.T) {
	mux := newTestMux(t, &mockProvider{result: validAnalysisResult()})

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"url":"https://example.com"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var got model.AnalysisResult
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got != *validAnalysisResult() {
		t.Errorf("result = %+v, want the provider's result", got)
	}
}

func TestHandleAnalyze_EmptyURL(t *testing.T) {
	mux := newTestMux(t, &mockProvider{result: validAnalysisResult()})

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"url":""}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	resp := decodeErrorResponse(t, rec.Body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestHandleAnalyze_MalformedJSON(t *testing.T) {
	mux := newTestMux(t, &mockProvider{result: validAnalysisResult()})

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"url":`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleAnalyze_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "invalid input",
			err:        &errs.AppError{Kind: errs.InvalidInput, Message: "Please enter a valid URL."},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "scan failure",
			err:        &errs.AppError{Kind: errs.ScanFailed, Message: "Failed to analyze website. Please try again."},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "timeout",
			err:        &errs.AppError{Kind: errs.Timeout, Message: "Analysis timed out. Please try again."},
			wantStatus: http.StatusGatewayTimeout,
		},
		{
			name:       "plain error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newTestMux(t, &mockProvider{err: tt.err})

			req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"url":"https://example.com"}`))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			resp := decodeErrorResponse(t, rec.Body)
			if resp.Message == "" {
				t.Error("error response must carry a message")
			}
		})
	}
}

func TestHandleAnalyze_MethodNotAllowed(t *testing.T) {
	mux := newTestMux(t, &mockProvider{result: validAnalysisResult()})

	req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestHandleReport_Success(t *testing.T) {
	mux := newTestMux(t, &mockProvider{result: validAnalysisResult()})

	body, err := json.Marshal(reportRequest{URL: "https://example.com", Result: validAnalysisResult()})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/report", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, `filename="accessibility-report.pdf"`) {
		t.Errorf("Content-Disposition = %q, want the fixed report filename", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("response body is not a PDF")
	}
}

func TestHandleReport_MissingResult(t *testing.T) {
	mux := newTestMux(t, &mockProvider{result: validAnalysisResult()})

	req := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(`{"url":"https://example.com"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleReport_InvalidResult(t *testing.T) {
	mux := newTestMux(t, &mockProvider{result: validAnalysisResult()})

	result := validAnalysisResult()
	result.Score = 200
	body, err := json.Marshal(reportRequest{URL: "https://example.com", Result: result})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/report", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleAnalyzeEvents_Success(t *testing.T) {
	mux := newTestMux(t, &mockProvider{result: validAnalysisResult(), steps: []int{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}})

	req := httptest.NewRequest(http.MethodGet, "/analyze/events?url=https://example.com", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"event: progress\ndata: 10\n\n",
		"event: progress\ndata: 100\n\n",
		"event: result\n",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("stream missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, "event: error") {
		t.Errorf("stream must not contain an error event:\n%s", body)
	}
}

func TestHandleAnalyzeEvents_MissingURL(t *testing.T) {
	mux := newTestMux(t, &mockProvider{result: validAnalysisResult()})

	req := httptest.NewRequest(http.MethodGet, "/analyze/events", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleAnalyzeEvents_ScanError(t *testing.T) {
	mux := newTestMux(t, &mockProvider{
		err:   &errs.AppError{Kind: errs.ScanFailed, Message: "Failed to analyze website. Please try again."},
		steps: []int{10, 20},
	})

	req := httptest.NewRequest(http.MethodGet, "/analyze/events?url=https://example.com", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	// The stream is already open when the failure lands, so the status
	// stays 200 and the failure arrives as a terminal error event.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "event: progress\ndata: 10\n\n") {
		t.Errorf("stream missing early progress:\n%s", body)
	}
	if !strings.Contains(body, "event: error\ndata: Failed to analyze website. Please try again.\n\n") {
		t.Errorf("stream missing terminal error event:\n%s", body)
	}
	if strings.Contains(body, "event: result") {
		t.Errorf("failed stream must not contain a result event:\n%s", body)
	}
}
