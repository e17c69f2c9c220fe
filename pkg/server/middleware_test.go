// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

func newTestServer(limiter *rate.Limiter) *Server {
	return &Server{
		config:      NewConfig(),
		rateLimiter: limiter,
	}
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequestIDMiddleware(t *testing.T) {
	provided := uuid.New().String()

	tests := []struct {
		name     string
		header   string
		wantSame bool
	}{
		{"generated when missing", "", false},
		{"kept when valid", provided, true},
		{"replaced when invalid", "invalid-not-a-uuid", false},
	}

	s := newTestServer(rate.NewLimiter(100, 200))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured string
			handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
				captured = RequestID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/match", nil)
			if tt.header != "" {
				req.Header.Set("X-Request-Id", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if _, err := uuid.Parse(captured); err != nil {
				t.Fatalf("request ID %q is not a UUID", captured)
			}
			if got := captured == tt.header; got != tt.wantSame {
				t.Errorf("captured %q, header %q, want same=%v", captured, tt.header, tt.wantSame)
			}
			if rec.Header().Get("X-Request-Id") != captured {
				t.Errorf("X-Request-Id = %q, want %q", rec.Header().Get("X-Request-Id"), captured)
			}
		})
	}
}

func TestVersionMiddleware(t *testing.T) {
	s := newTestServer(rate.NewLimiter(100, 200))

	var captured string
	handler := s.versionMiddleware(func(w http.ResponseWriter, r *http.Request) {
		captured = APIVersion(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/help", nil)
	req.Header.Set("Accept", "application/vnd.nvidia.clspec.v1+json")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if captured != "v1" {
		t.Errorf("context version = %q, want v1", captured)
	}
	if got := rec.Header().Get("X-API-Version"); got != "v1" {
		t.Errorf("X-API-Version = %q, want v1", got)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		limiter    *rate.Limiter
		wantCalled bool
		wantStatus int
		wantHeader string
	}{
		{"allows within budget", rate.NewLimiter(100, 200), true, http.StatusOK, "X-RateLimit-Remaining"},
		{"rejects empty bucket", rate.NewLimiter(0, 0), false, http.StatusTooManyRequests, "Retry-After"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(tt.limiter)

			called := false
			handler := s.rateLimitMiddleware(func(w http.ResponseWriter, _ *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest(http.MethodPost, "/v1/match", nil))

			if called != tt.wantCalled {
				t.Errorf("handler called = %v, want %v", called, tt.wantCalled)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if rec.Header().Get(tt.wantHeader) == "" {
				t.Errorf("expected %s header", tt.wantHeader)
			}
		})
	}
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	s := newTestServer(rate.NewLimiter(100, 200))

	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    int
	}{
		{"string panic", func(http.ResponseWriter, *http.Request) { panic("boom") }, http.StatusInternalServerError},
		{"error panic", func(http.ResponseWriter, *http.Request) { panic(http.ErrAbortHandler) }, http.StatusInternalServerError},
		{"no panic", okHandler, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.panicRecoveryMiddleware(tt.handler)(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestLoggingMiddleware_PreservesStatus(t *testing.T) {
	s := newTestServer(rate.NewLimiter(100, 200))

	for _, status := range []int{http.StatusOK, http.StatusBadRequest, http.StatusServiceUnavailable} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			handler := s.loggingMiddleware(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
			})
			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest(http.MethodGet, "/v1/grammar", nil))
			if rec.Code != status {
				t.Errorf("status = %d, want %d", rec.Code, status)
			}
		})
	}
}

func TestMiddlewareChain(t *testing.T) {
	s := newTestServer(rate.NewLimiter(100, 200))

	var requestID, version string
	handler := s.withMiddleware(func(w http.ResponseWriter, r *http.Request) {
		requestID = RequestID(r.Context())
		version = APIVersion(r.Context())
		w.WriteHeader(http.StatusAccepted)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/v1/help", nil))

	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusAccepted)
	}
	if requestID == "" {
		t.Error("expected request ID in context")
	}
	if version != DefaultAPIVersion {
		t.Errorf("version = %q, want %q", version, DefaultAPIVersion)
	}

	for _, header := range []string{
		"X-Request-Id",
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
		"X-RateLimit-Reset",
		"X-API-Version",
	} {
		if rec.Header().Get(header) == "" {
			t.Errorf("expected header %s to be set", header)
		}
	}
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusBadRequest)
	rw.WriteHeader(http.StatusOK)
	if _, err := rw.Write([]byte("x")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if rw.Status() != http.StatusBadRequest || rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d/%d, want %d", rw.Status(), rec.Code, http.StatusBadRequest)
	}
	if newResponseWriter(rw) != rw {
		t.Error("expected an existing wrapper to be reused")
	}
}
