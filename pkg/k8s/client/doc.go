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

// Package client provides Kubernetes client construction for reading
// definitions stored in ConfigMaps.
//
// A process-wide client is created lazily with sync.Once so repeated
// definition loads share one connection pool:
//
//	clientset, _, err := client.GetKubeClient()
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
//
// Discovery order is the explicit path, then KUBECONFIG, then
// ~/.kube/config, then the in-cluster service account.
//
// Callers that need to substitute a fake client accept a Factory:
//
//	loader := definition.NewLoader(definition.WithClientFactory(
//	    func(string) (client.Interface, error) { return fake.NewSimpleClientset(cm), nil },
//	))
package client
