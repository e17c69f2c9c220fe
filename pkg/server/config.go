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
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/clspec/pkg/defaults"
)

const (
	defaultName      = "server"
	defaultVersion   = "undefined"
	defaultPort      = 8080
	defaultRateLimit = 100
	defaultBurst     = 200
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Handlers maps a route pattern to its handler. All handlers except the
	// system endpoints run behind the middleware chain.
	Handlers map[string]http.HandlerFunc

	// Server configuration
	Address string
	Port    int

	// Rate limiting configuration
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns a new Config with defaults and environment overrides applied.
func NewConfig() *Config {
	return parseConfig()
}

func parseConfig() *Config {
	cfg := &Config{
		Name:              defaultName,
		Version:           defaultVersion,
		Handlers:          map[string]http.HandlerFunc{},
		Port:              defaultPort,
		RateLimit:         defaultRateLimit,
		RateLimitBurst:    defaultBurst,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	if port, ok := envInt("PORT"); ok && port > 0 && port < 65536 {
		cfg.Port = port
	}

	if limit, ok := envInt("RATE_LIMIT"); ok && limit > 0 {
		cfg.RateLimit = rate.Limit(limit)
	}

	if burst, ok := envInt("RATE_LIMIT_BURST"); ok && burst > 0 {
		cfg.RateLimitBurst = burst
	}

	// Allow the shutdown window to track the pod termination grace period.
	if seconds, ok := envInt("SHUTDOWN_TIMEOUT_SECONDS"); ok && seconds > 0 {
		cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
	}

	return cfg
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
