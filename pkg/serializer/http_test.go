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

package serializer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type testData struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func TestRespondJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	data := testData{Message: "success", Code: 200}

	RespondJSON(w, http.StatusOK, data)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var result testData
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if result != data {
		t.Errorf("got %+v, want %+v", result, data)
	}
}

func TestRespondJSON_EncodingError(t *testing.T) {
	w := httptest.NewRecorder()

	RespondJSON(w, http.StatusOK, map[string]any{"bad": make(chan int)})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestRespondJSON_StatusCodes(t *testing.T) {
	for _, code := range []int{http.StatusOK, http.StatusBadRequest, http.StatusUnprocessableEntity} {
		w := httptest.NewRecorder()
		RespondJSON(w, code, testData{Code: code})
		if w.Code != code {
			t.Errorf("expected status %d, got %d", code, w.Code)
		}
	}
}

func TestNewHttpReader_Defaults(t *testing.T) {
	r := NewHttpReader()

	if r.UserAgent != HttpReaderUserAgent {
		t.Errorf("UserAgent = %q", r.UserAgent)
	}
	if r.MaxBytes != HttpReaderDefaultMaxBytes {
		t.Errorf("MaxBytes = %d", r.MaxBytes)
	}
	if r.Client == nil {
		t.Fatal("Client should not be nil")
	}
	if r.Client.Timeout != r.TotalTimeout {
		t.Errorf("Client.Timeout = %v, want %v", r.Client.Timeout, r.TotalTimeout)
	}
}

func TestNewHttpReader_WithOptions(t *testing.T) {
	custom := &http.Client{Timeout: time.Second}
	r := NewHttpReader(
		WithUserAgent("test-agent"),
		WithTotalTimeout(2*time.Second),
		WithMaxBytes(10),
		WithClient(custom),
	)

	if r.UserAgent != "test-agent" {
		t.Errorf("UserAgent = %q", r.UserAgent)
	}
	if r.Client != custom {
		t.Error("custom client should be used as-is")
	}
	if r.MaxBytes != 10 {
		t.Errorf("MaxBytes = %d", r.MaxBytes)
	}
}

func TestHttpReader_Read(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("name: copy"))
		case "/large":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	r := NewHttpReader(WithMaxBytes(32))

	data, err := r.Read(server.URL + "/ok")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(data) != "name: copy" {
		t.Errorf("Read() = %q", data)
	}
	if gotAgent != HttpReaderUserAgent {
		t.Errorf("User-Agent = %q", gotAgent)
	}

	if _, err := r.Read(server.URL + "/missing"); err == nil {
		t.Error("expected error for 404")
	}
	if _, err := r.Read(server.URL + "/large"); err == nil || !strings.Contains(err.Error(), "exceeds") {
		t.Errorf("expected size error, got %v", err)
	}
	if _, err := r.Read(""); err == nil {
		t.Error("expected error for empty url")
	}
}

func TestHttpReader_ReadWithContext_Canceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewHttpReader().ReadWithContext(ctx, server.URL); err == nil {
		t.Error("expected error for canceled context")
	}
}
