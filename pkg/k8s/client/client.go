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

package client

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// Interface is an alias for kubernetes.Interface so callers can substitute
// fake.NewSimpleClientset() in tests.
type Interface = kubernetes.Interface

// EnvKubeconfig names the environment variable consulted during discovery.
const EnvKubeconfig = "KUBECONFIG"

// Factory builds a client for the given kubeconfig path. An empty path means
// automatic discovery.
type Factory func(kubeconfig string) (Interface, error)

var (
	clientOnce   sync.Once
	cachedClient *kubernetes.Clientset
	cachedConfig *rest.Config
	clientErr    error
)

// GetKubeClient returns a process-wide client using automatic discovery,
// creating it on first call.
func GetKubeClient() (Interface, *rest.Config, error) {
	clientOnce.Do(func() {
		cachedClient, cachedConfig, clientErr = BuildKubeClient("")
	})
	if clientErr != nil {
		return nil, nil, clientErr
	}
	return cachedClient, cachedConfig, nil
}

// BuildKubeClient creates a client from the given kubeconfig file, bypassing
// the shared instance. With an empty path the kubeconfig is discovered from
// KUBECONFIG, then ~/.kube/config, then the in-cluster service account.
func BuildKubeClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	kubeconfig = ResolveKubeconfig(kubeconfig)

	var config *rest.Config
	var err error

	// InClusterConfig directly avoids the "Neither --kubeconfig nor --master" warning.
	if kubeconfig == "" {
		config, err = rest.InClusterConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
	} else {
		config, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build kube config from %s: %w", kubeconfig, err)
		}
	}

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return client, config, nil
}

// ResolveKubeconfig returns the kubeconfig path discovery would use, or an
// empty string when only in-cluster configuration remains.
func ResolveKubeconfig(kubeconfig string) string {
	if kubeconfig != "" {
		return kubeconfig
	}
	if env := os.Getenv(EnvKubeconfig); env != "" {
		return env
	}
	home := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(home); err == nil {
		return home
	}
	return ""
}

// DefaultFactory is the Factory used when callers supply none. An empty
// kubeconfig reuses the shared client.
func DefaultFactory(kubeconfig string) (Interface, error) {
	if kubeconfig == "" {
		c, _, err := GetKubeClient()
		return c, err
	}
	c, _, err := BuildKubeClient(kubeconfig)
	if err != nil {
		return nil, err
	}
	return c, nil
}
