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


package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/clspec/pkg/defaults"
	clerrors "github.com/NVIDIA/clspec/pkg/errors"
	"github.com/NVIDIA/clspec/pkg/grammar"
	"github.com/NVIDIA/clspec/pkg/help"
	"github.com/NVIDIA/clspec/pkg/matcher"
	"github.com/NVIDIA/clspec/pkg/serializer"
	"github.com/NVIDIA/clspec/pkg/server"
)

// Handler serves one compiled grammar. The grammar is immutable, so a
// Handler is safe for concurrent use.
type Handler struct {
	grammar *grammar.Grammar
	version string
}

// Option configures a Handler.
type Option func(*Handler)

// WithVersion sets the version stamped into response headers.
func WithVersion(v string) Option {
	return func(h *Handler) {
		h.version = v
	}
}

// NewHandler returns a Handler for g.
func NewHandler(g *grammar.Grammar, opts ...Option) *Handler {
	h := &Handler{
		grammar: g,
		version: versionDefault,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the API routes keyed by path.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/match":   withTimeout(h.HandleMatch, defaults.MatchHandlerTimeout),
		"/v1/help":    withTimeout(h.HandleHelp, defaults.HelpHandlerTimeout),
		"/v1/grammar": withTimeout(h.HandleGrammar, defaults.HelpHandlerTimeout),
	}
}

func withTimeout(next http.HandlerFunc, d time.Duration) http.HandlerFunc {
	return http.TimeoutHandler(next, d, `{"code":"TIMEOUT","message":"request timed out","retryable":true}`).ServeHTTP
}

// MatchRequest is the body of POST /v1/match.
type MatchRequest struct {
	Args []string `json:"args" yaml:"args"`
}

// MatchResponse is the reply to a successful match. Help carries the
// rendered view when the arguments asked for help.
type MatchResponse struct {
	*matcher.Report `json:",inline" yaml:",inline"`

	Help string `json:"help,omitempty" yaml:"help,omitempty"`
}

// HelpResponse is the reply to GET /v1/help.
type HelpResponse struct {
	Command    string `json:"command" yaml:"command"`
	View       string `json:"view" yaml:"view"`
	ShowHidden bool   `json:"showHidden" yaml:"showHidden"`
	Text       string `json:"text" yaml:"text"`
}

// HandleMatch matches an argument list against the grammar. Validation
// failures are returned as 400 with the failure code and its context.
func (h *Handler) HandleMatch(w http.ResponseWriter, r *http.Request) {
	if !server.RequireMethod(w, r, http.MethodPost) {
		return
	}

	req, err := parseMatchRequest(w, r)
	if err != nil {
		matchOutcomes.WithLabelValues(string(clerrors.ErrCodeInvalidRequest)).Inc()
		server.WriteErrorFromErr(w, r, err, "Invalid match request", nil)
		return
	}

	cl, err := matcher.Match(h.grammar, req.Args)
	if err != nil {
		matchOutcomes.WithLabelValues(string(clerrors.CodeOf(err))).Inc()
		slog.Debug("match rejected",
			"requestID", server.RequestID(r.Context()),
			"error", err,
		)
		server.WriteErrorFromErr(w, r, err, "Command line rejected", nil)
		return
	}

	resp := MatchResponse{Report: cl.Report(h.version)}
	if cl.HelpRequested() {
		resp.Help = help.Render(h.grammar, cl.View(), cl.ShowHidden())
		matchOutcomes.WithLabelValues(outcomeHelp).Inc()
	} else {
		matchOutcomes.WithLabelValues(outcomeMatched).Inc()
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}

// parseMatchRequest decodes a JSON or YAML body, chosen by Content-Type.
// Unknown fields are rejected.
func parseMatchRequest(w http.ResponseWriter, r *http.Request) (*MatchRequest, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, clerrors.New(clerrors.ErrCodeInvalidRequest, "request body is empty")
	}
	body := http.MaxBytesReader(w, r.Body, defaults.MatchRequestMaxBytes)
	defer body.Close()

	reader, err := serializer.NewReader(bodyFormat(r.Header.Get("Content-Type")), body,
		serializer.WithStrict(true))
	if err != nil {
		return nil, clerrors.Wrap(clerrors.ErrCodeInvalidRequest, "unsupported request body", err)
	}

	var req MatchRequest
	if err := reader.Deserialize(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, clerrors.WrapWithContext(clerrors.ErrCodeInvalidRequest, "request body too large", err,
				map[string]any{"limit": tooLarge.Limit})
		}
		return nil, clerrors.Wrap(clerrors.ErrCodeInvalidRequest, "malformed request body", err)
	}
	if req.Args == nil {
		req.Args = []string{}
	}
	return &req, nil
}

func bodyFormat(contentType string) serializer.Format {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch ct {
	case "application/x-yaml", "application/yaml", "text/yaml":
		return serializer.FormatYAML
	default:
		return serializer.FormatJSON
	}
}

// HandleHelp renders help text. Query parameters: view (full, usage,
// topics) and hidden (bool).
func (h *Handler) HandleHelp(w http.ResponseWriter, r *http.Request) {
	if !server.RequireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	viewName := q.Get("view")
	view, err := help.ParseView(viewName)
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, clerrors.ErrCodeInvalidRequest,
			"Invalid help view", false, map[string]any{
				"view":      viewName,
				"supported": help.SupportedViews(),
			})
		return
	}

	showHidden := false
	if raw := q.Get("hidden"); raw != "" {
		if showHidden, err = strconv.ParseBool(raw); err != nil {
			server.WriteError(w, r, http.StatusBadRequest, clerrors.ErrCodeInvalidRequest,
				"Invalid hidden flag", false, map[string]any{"hidden": raw})
			return
		}
	}

	if viewName == "" {
		viewName = help.ViewFull
	}

	serializer.RespondJSON(w, http.StatusOK, HelpResponse{
		Command:    h.grammar.Name(),
		View:       strings.ToLower(viewName),
		ShowHidden: showHidden,
		Text:       help.Render(h.grammar, view, showHidden),
	})
}

// HandleGrammar returns the compiled grammar summary. The format query
// parameter selects json (default), yaml or table.
func (h *Handler) HandleGrammar(w http.ResponseWriter, r *http.Request) {
	if !server.RequireMethod(w, r, http.MethodGet) {
		return
	}

	summary := h.grammar.Summarize(h.version)

	raw := r.URL.Query().Get("format")
	format := serializer.FormatJSON
	if raw != "" {
		var err error
		if format, err = serializer.ParseFormat(raw); err != nil {
			server.WriteError(w, r, http.StatusBadRequest, clerrors.ErrCodeInvalidRequest,
				"Invalid output format", false, map[string]any{
					"format":    raw,
					"supported": serializer.SupportedFormats(),
				})
			return
		}
	}

	if format == serializer.FormatJSON {
		serializer.RespondJSON(w, http.StatusOK, summary)
		return
	}

	if err := respond(r.Context(), w, format, summary); err != nil {
		slog.Error("grammar serialization failed", "format", format, "error", err)
	}
}

func respond(ctx context.Context, w http.ResponseWriter, format serializer.Format, v any) error {
	switch format {
	case serializer.FormatYAML:
		w.Header().Set("Content-Type", "application/yaml")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	if err := serializer.NewWriter(format, w).Serialize(ctx, v); err != nil {
		return fmt.Errorf("serialize %s: %w", format, err)
	}
	return nil
}
