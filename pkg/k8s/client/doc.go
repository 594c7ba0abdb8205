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
// Package client builds Kubernetes clients for reading vehicle documents from
// ConfigMaps and writing diagnostic results back.
//
// Configuration is discovered in this order:
//
//  1. An explicit kubeconfig path (the --kubeconfig flag)
//  2. The KUBECONFIG environment variable
//  3. ~/.kube/config, when present
//  4. In-cluster service account configuration
//
// Most callers use GetKubeClientWithConfig, which reuses a cached client for
// the default discovery path:
//
//	c, cfg, err := client.GetKubeClientWithConfig(kubeconfig)
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
//	slog.Info("kubernetes client ready", "auth_method", client.AuthMethod(cfg))
//
// Interface is an alias of kubernetes.Interface, so tests can substitute
// k8s.io/client-go/kubernetes/fake clients.
package client
