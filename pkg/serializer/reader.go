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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/NVIDIA/clspec/pkg/k8s/client"
	"gopkg.in/yaml.v3"
)

// Reader deserializes JSON or YAML from any io.Reader source.
// Close must be called when the Reader was created by NewFileReader.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
	strict bool
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithStrict returns a ReaderOption that rejects fields not present in the
// target type.
func WithStrict(strict bool) ReaderOption {
	return func(r *Reader) {
		r.strict = strict
	}
}

// NewReader creates a Reader for the given format. If input implements
// io.Closer it is closed by Reader.Close.
func NewReader(format Format, input io.Reader, opts ...ReaderOption) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}

	r := &Reader{
		format: format,
		input:  input,
	}
	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// NewFileReader creates a Reader over a local file.
func NewFileReader(format Format, filePath string, opts ...ReaderOption) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return nil, fmt.Errorf("table format does not support deserialization")
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return NewReader(format, file, opts...)
}

// Deserialize decodes the input into v, which must be a pointer.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		decoder := json.NewDecoder(r.input)
		if r.strict {
			decoder.DisallowUnknownFields()
		}
		if err := decoder.Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		return nil

	case FormatYAML:
		decoder := yaml.NewDecoder(r.input)
		decoder.KnownFields(r.strict)
		if err := decoder.Decode(v); err != nil {
			if err == io.EOF {
				return fmt.Errorf("failed to decode YAML: empty document")
			}
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
		return nil

	case FormatTable:
		return fmt.Errorf("table format is not supported for deserialization")

	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
}

// Close releases the underlying source. Safe to call multiple times and on
// a nil Reader.
func (r *Reader) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// Source locates a document: a local path, an http(s) URL, or a
// cm://namespace/name ConfigMap URI.
type Source struct {
	httpReader    *HttpReader
	clientFactory client.Factory
	kubeconfig    string
	dataKey       string
	strict        bool
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithHTTPReader returns a SourceOption that fetches URLs with r.
func WithHTTPReader(r *HttpReader) SourceOption {
	return func(s *Source) {
		s.httpReader = r
	}
}

// WithClientFactory returns a SourceOption that builds the Kubernetes client
// used for ConfigMap URIs.
func WithClientFactory(f client.Factory) SourceOption {
	return func(s *Source) {
		s.clientFactory = f
	}
}

// WithKubeconfig returns a SourceOption that sets the kubeconfig path used
// for ConfigMap URIs.
func WithKubeconfig(path string) SourceOption {
	return func(s *Source) {
		s.kubeconfig = path
	}
}

// WithDataKey returns a SourceOption that sets the ConfigMap data key stem.
// The reader looks for <stem>.yaml, <stem>.yml and <stem>.json.
func WithDataKey(stem string) SourceOption {
	return func(s *Source) {
		s.dataKey = stem
	}
}

// WithStrictSource returns a SourceOption that rejects unknown fields.
func WithStrictSource(strict bool) SourceOption {
	return func(s *Source) {
		s.strict = strict
	}
}

// NewSource creates a Source with the given options applied.
func NewSource(opts ...SourceOption) *Source {
	s := &Source{
		clientFactory: client.DefaultFactory,
		dataKey:       defaultDataKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.httpReader == nil {
		s.httpReader = NewHttpReader()
	}
	return s
}

// Open returns a Reader for the document at uri. The caller must Close it.
func (s *Source) Open(ctx context.Context, uri string) (*Reader, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, fmt.Errorf("source is empty")
	}

	switch {
	case strings.HasPrefix(uri, ConfigMapURIScheme):
		namespace, name, err := ParseConfigMapURI(uri)
		if err != nil {
			return nil, err
		}
		k8sClient, err := s.clientFactory(s.kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("failed to get kubernetes client: %w", err)
		}
		content, format, err := ReadConfigMap(ctx, k8sClient, namespace, name, s.dataKey)
		if err != nil {
			return nil, err
		}
		return NewReader(format, strings.NewReader(content), WithStrict(s.strict))

	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		data, err := s.httpReader.ReadWithContext(ctx, uri)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", uri, err)
		}
		return NewReader(formatFromURL(uri), bytes.NewReader(data), WithStrict(s.strict))

	default:
		return NewFileReader(FormatFromPath(uri), uri, WithStrict(s.strict))
	}
}

// formatFromURL ignores any query string when detecting the extension.
func formatFromURL(uri string) Format {
	if i := strings.IndexAny(uri, "?#"); i >= 0 {
		uri = uri[:i]
	}
	return FormatFromPath(uri)
}

// FromSource reads and deserializes the document at uri into a new T.
func FromSource[T any](ctx context.Context, uri string, opts ...SourceOption) (*T, error) {
	r, err := NewSource(opts...).Open(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", uri, err)
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil {
			slog.Warn("failed to close reader", "error", closeErr)
		}
	}()

	var v T
	if err := r.Deserialize(&v); err != nil {
		return nil, fmt.Errorf("failed to deserialize %q: %w", uri, err)
	}

	slog.Debug("loaded document", slog.String("source", uri), slog.String("format", string(r.format)))
	return &v, nil
}
