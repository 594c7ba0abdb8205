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
	"fmt"
	"log/slog"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/NVIDIA/vehicle-diagnostics/pkg/defaults"
	"github.com/NVIDIA/vehicle-diagnostics/pkg/header"
	"github.com/NVIDIA/vehicle-diagnostics/pkg/k8s/client"
)

const (
	// ConfigMapURIScheme prefixes ConfigMap locations: cm://namespace/name.
	ConfigMapURIScheme = "cm://"

	// ConfigMapInputKey is the data key prefix vehicle documents are read from.
	ConfigMapInputKey = "vehicle"

	// ConfigMapOutputKey is the data key prefix diagnostic results are written to.
	ConfigMapOutputKey = "diagnostic"

	// ConfigMapFieldManager owns the fields written by Server-Side Apply.
	ConfigMapFieldManager = "cardiag"

	configMapFormatKey    = "format"
	configMapTimestampKey = "timestamp"
)

// dataKey returns the ConfigMap data key for prefix in format.
func dataKey(prefix string, format Format) string {
	ext := string(format)
	if format == FormatTable {
		ext = "txt"
	}
	return fmt.Sprintf("%s.%s", prefix, ext)
}

// ConfigMapOption configures a ConfigMapWriter.
type ConfigMapOption func(*ConfigMapWriter)

// WithConfigMapClient sets the Kubernetes client used for writes.
func WithConfigMapClient(c client.Interface) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.client = c
	}
}

// WithConfigMapKubeconfig sets the kubeconfig used to build a client when
// none was supplied with WithConfigMapClient.
func WithConfigMapKubeconfig(path string) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.kubeconfig = path
	}
}

// ConfigMapWriter writes serialized data to a Kubernetes ConfigMap.
// The ConfigMap is created if it doesn't exist, or updated if it does.
type ConfigMapWriter struct {
	namespace  string
	name       string
	format     Format
	client     client.Interface
	kubeconfig string
}

// NewConfigMapWriter creates a new ConfigMapWriter that writes to the specified
// namespace and ConfigMap name in the given format.
func NewConfigMapWriter(namespace, name string, format Format, opts ...ConfigMapOption) *ConfigMapWriter {
	w := &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    writableOrJSON(format),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *ConfigMapWriter) kubeClient() (client.Interface, string, error) {
	if w.client != nil {
		return w.client, "injected", nil
	}
	c, cfg, err := client.GetKubeClientWithConfig(w.kubeconfig)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get kubernetes client: %w", err)
	}
	return c, client.AuthMethod(cfg), nil
}

// Serialize writes data to the ConfigMap. The ConfigMap will have:
//   - data.diagnostic.{yaml|json|txt}: the serialized content
//   - data.format: the format used
//   - data.timestamp: RFC 3339 creation time
func (w *ConfigMapWriter) Serialize(ctx context.Context, data any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	k8sClient, authInfo, err := w.kubeClient()
	if err != nil {
		return err
	}

	slog.Info("configmap operation",
		"namespace", w.namespace,
		"name", w.name,
		"auth_method", authInfo,
		"format", w.format)

	content, err := encode(w.format, data)
	if err != nil {
		return fmt.Errorf("failed to serialize data: %w", err)
	}

	docVersion := "unknown"
	docKind := header.KindDiagnosticResult.String()
	docTimestamp := time.Now().UTC().Format(time.RFC3339)

	if headerData, ok := data.(interface {
		GetKind() header.Kind
		GetMetadata() map[string]string
	}); ok {
		if k := headerData.GetKind(); k != "" {
			docKind = k.String()
		}
		metadata := headerData.GetMetadata()
		if v := metadata[header.MetadataKeyVersion]; v != "" {
			docVersion = v
		}
		if ts := metadata[header.MetadataKeyTimestamp]; ts != "" {
			docTimestamp = ts
		}
	}

	configMap := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "cardiag",
			"app.kubernetes.io/component": docKind,
			"app.kubernetes.io/version":   labelSafe(docVersion),
		}).
		WithData(map[string]string{
			dataKey(ConfigMapOutputKey, w.format): string(content),
			configMapFormatKey:                    string(w.format),
			configMapTimestampKey:                 docTimestamp,
		})

	_, err = k8sClient.CoreV1().ConfigMaps(w.namespace).Apply(
		writeCtx,
		configMap,
		metav1.ApplyOptions{
			FieldManager: ConfigMapFieldManager,
			Force:        true,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}

	return nil
}

// labelSafe trims characters that are invalid in label values, such as the
// "+" in build metadata.
func labelSafe(v string) string {
	v = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, v)
	if len(v) > 63 {
		v = v[:63]
	}
	return strings.Trim(v, "-_.")
}

// Close is a no-op for ConfigMapWriter as there are no resources to release.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// parseConfigMapURI parses a ConfigMap URI in the format cm://namespace/name
// and returns the namespace and name components.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	path := strings.TrimPrefix(uri, ConfigMapURIScheme)

	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])

	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}

	return namespace, name, nil
}
