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
	"errors"
	"maps"
	"net/http"
	"time"

	"github.com/google/uuid"

	clerrors "github.com/NVIDIA/clspec/pkg/errors"
	"github.com/NVIDIA/clspec/pkg/serializer"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// WriteError writes an ErrorResponse with the given status.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code clerrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestID(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	serializer.RespondJSON(w, statusCode, ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// WriteErrorFromErr maps err to a status code through its error code and
// writes it. Structured context and the cause are merged into details.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error,
	fallbackMessage string, extraDetails map[string]any) {

	if err == nil {
		WriteError(w, r, http.StatusInternalServerError, clerrors.ErrCodeInternal,
			fallbackMessage, true, extraDetails)
		return
	}

	se := clerrors.AsStructured(err)
	message := se.Message
	if message == "" || !isStructured(err) {
		message = fallbackMessage
	}

	details := mergeDetails(se.Context, extraDetails)
	if se.Cause != nil {
		if details == nil {
			details = map[string]any{}
		}
		details["error"] = se.Cause.Error()
	}

	WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, message,
		retryableFromCode(se.Code), details)
}

// HTTPStatusFromCode maps an error code to an HTTP status.
func HTTPStatusFromCode(code clerrors.ErrorCode) int {
	switch code {
	case clerrors.ErrCodeInvalidRequest,
		clerrors.ErrCodeUnknownOption,
		clerrors.ErrCodeMissingRequired,
		clerrors.ErrCodeTooFewValues,
		clerrors.ErrCodeTooManyValues,
		clerrors.ErrCodeInvalidValue,
		clerrors.ErrCodeDuplicateOption,
		clerrors.ErrCodeUnexpectedFiles,
		clerrors.ErrCodeFileCount:
		return http.StatusBadRequest
	case clerrors.ErrCodeNotFound:
		return http.StatusNotFound
	case clerrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case clerrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case clerrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case clerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code clerrors.ErrorCode) bool {
	switch code {
	case clerrors.ErrCodeTimeout,
		clerrors.ErrCodeUnavailable,
		clerrors.ErrCodeRateLimitExceeded,
		clerrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

func isStructured(err error) bool {
	var s clerrors.Structurer
	var se *clerrors.StructuredError
	return errors.As(err, &s) || errors.As(err, &se)
}

func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	maps.Copy(out, a)
	maps.Copy(out, b)
	return out
}
