package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/NVIDIA/vehicle-diagnostics/pkg/defaults"
	"github.com/NVIDIA/vehicle-diagnostics/pkg/errors"
	"github.com/NVIDIA/vehicle-diagnostics/pkg/k8s/client"
)

// FormatFromPath determines the format based on file extension.
// Supported extensions:
//   - .json → FormatJSON
//   - .yaml, .yml → FormatYAML
//   - .xml → FormatXML
//   - .table, .txt → FormatTable
//
// Returns FormatJSON as default for unknown extensions.
// Extension matching is case-insensitive.
func FormatFromPath(filePath string) Format {
	lowerPath := strings.ToLower(filePath)
	switch {
	case strings.HasSuffix(lowerPath, ".json"):
		return FormatJSON
	case strings.HasSuffix(lowerPath, ".yaml"), strings.HasSuffix(lowerPath, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lowerPath, ".xml"):
		return FormatXML
	case strings.HasSuffix(lowerPath, ".table"), strings.HasSuffix(lowerPath, ".txt"):
		return FormatTable
	default:
		slog.Warn("unknown file extension, defaulting to JSON", "filePath", filePath)
		return FormatJSON
	}
}

// FormatFromContentType maps an HTTP Content-Type to a readable format.
// Parameters such as charset are ignored. Empty or unrecognized types map to JSON.
func FormatFromContentType(contentType string) Format {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}
	switch {
	case mediaType == "application/xml", mediaType == "text/xml", strings.HasSuffix(mediaType, "+xml"):
		return FormatXML
	case mediaType == "application/yaml", mediaType == "application/x-yaml",
		mediaType == "text/yaml", mediaType == "text/x-yaml", strings.HasSuffix(mediaType, "+yaml"):
		return FormatYAML
	default:
		return FormatJSON
	}
}

// validator is implemented by decoded types that check themselves after
// unmarshaling, such as vehicle.Vehicle.
type validator interface {
	Validate() error
}

// Reader handles deserialization of vehicle documents and other structured
// data from JSON, YAML or XML.
//
// Close must be called to release resources when using NewFileReader.
// It is safe to call Close multiple times.
type Reader struct {
	format Format
	input  *limitedReader
	closer io.Closer
}

// NewReader creates a new Reader for deserializing data from input.
// If input implements io.Closer it is closed by Reader.Close. Input longer
// than defaults.MaxVehicleDocumentBytes fails with ErrCodePayloadTooLarge.
// Returns an error when format cannot be read.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	if !format.CanRead() {
		return nil, fmt.Errorf("%s format does not support deserialization", format)
	}

	r := &Reader{format: format}
	if input != nil {
		r.input = newLimitedReader(input, defaults.MaxVehicleDocumentBytes)
	}

	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}

	return r, nil
}

// NewFileReader creates a new Reader for a local file path or an HTTP/HTTPS URL.
// Remote documents are fetched into memory. A local file that does not exist
// is reported with ErrCodeNotFound.
func NewFileReader(format Format, filePath string) (*Reader, error) {
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	if !format.CanRead() {
		return nil, fmt.Errorf("%s format does not support deserialization", format)
	}

	if strings.HasPrefix(filePath, "http://") || strings.HasPrefix(filePath, "https://") {
		data, err := NewHttpReader().Read(filePath)
		if err != nil {
			if errors.IsCode(err, errors.ErrCodePayloadTooLarge) {
				return nil, err
			}
			return nil, errors.Wrap(errors.ErrCodeUnavailable, "failed to fetch remote document", err)
		}
		return NewReader(format, bytes.NewReader(data))
	}

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "input file not found", err,
				map[string]any{"path": filePath})
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return NewReader(format, file)
}

// Deserialize reads data from the input source and unmarshals it into v,
// which must be a pointer. When v has a Validate method it is called after a
// successful decode.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}

	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	if err := r.decode(v); err != nil {
		if r.input.exceeded {
			return r.input.tooLarge()
		}
		return err
	}

	if val, ok := v.(validator); ok {
		return val.Validate()
	}
	return nil
}

func (r *Reader) decode(v any) error {
	switch r.format {
	case FormatJSON:
		decoder := json.NewDecoder(r.input)
		if err := decoder.Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		return nil

	case FormatYAML:
		decoder := yaml.NewDecoder(r.input)
		if err := decoder.Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
		return nil

	case FormatXML:
		decoder := xml.NewDecoder(r.input)
		if err := decoder.Decode(v); err != nil {
			return fmt.Errorf("failed to decode XML: %w", err)
		}
		return nil

	case FormatTable:
		return fmt.Errorf("table format is not supported for deserialization")

	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
}

// Close releases any resources held by the Reader.
func (r *Reader) Close() error {
	if r == nil {
		return nil
	}

	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// FromFile reads and deserializes a document from a file path, URL, or
// ConfigMap URI (cm://namespace/name) into type T.
//
// Example:
//
//	car, err := FromFile[vehicle.Vehicle]("SampleCar.xml")
func FromFile[T any](path string) (*T, error) {
	return FromFileWithKubeconfig[T](path, "")
}

// FromFileWithKubeconfig is FromFile with an explicit kubeconfig used only
// for ConfigMap URIs. An empty kubeconfig uses default discovery.
func FromFileWithKubeconfig[T any](path, kubeconfig string) (*T, error) {
	if strings.HasPrefix(path, ConfigMapURIScheme) {
		namespace, name, err := parseConfigMapURI(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid ConfigMap URI", err)
		}
		k8sClient, _, err := client.GetKubeClientWithConfig(kubeconfig)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnavailable, "failed to get kubernetes client", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), defaults.ConfigMapReadTimeout)
		defer cancel()
		return FromConfigMap[T](ctx, k8sClient, namespace, name, ConfigMapInputKey)
	}

	fileFormat := FormatFromPath(path)
	slog.Debug("determined file format",
		slog.String("path", path),
		slog.String("format", string(fileFormat)),
	)

	ser, err := NewFileReader(fileFormat, path)
	if err != nil {
		return nil, err
	}

	defer func() {
		if closeErr := ser.Close(); closeErr != nil {
			slog.Warn("failed to close reader", "error", closeErr)
		}
	}()

	var r T
	if err := ser.Deserialize(&r); err != nil {
		if errors.IsCode(err, errors.ErrCodePayloadTooLarge) {
			return nil, err
		}
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to parse input", err,
			map[string]any{"path": path})
	}

	slog.Debug("successfully loaded object from file",
		slog.String("path", path),
	)

	return &r, nil
}

// FromConfigMap reads a document stored under keyPrefix.{ext} in a ConfigMap.
// The "format" data entry, when present, selects the extension tried first;
// otherwise yaml, json and xml are tried in that order.
func FromConfigMap[T any](ctx context.Context, k8sClient client.Interface, namespace, name, keyPrefix string) (*T, error) {
	if k8sClient == nil {
		return nil, errors.New(errors.ErrCodeInternal, "kubernetes client is nil")
	}

	cm, err := k8sClient.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "failed to get ConfigMap", err,
			map[string]any{"namespace": namespace, "name": name})
	}

	candidates := []Format{FormatYAML, FormatJSON, FormatXML}
	if f := Format(cm.Data[configMapFormatKey]); f.CanRead() {
		candidates = append([]Format{f}, candidates...)
	}

	var content string
	var format Format
	for _, f := range candidates {
		if data, ok := cm.Data[dataKey(keyPrefix, f)]; ok {
			content = data
			format = f
			break
		}
	}
	if format == "" {
		return nil, errors.NewWithContext(errors.ErrCodeNotFound,
			fmt.Sprintf("ConfigMap %s/%s has no %s data", namespace, name, keyPrefix),
			map[string]any{"namespace": namespace, "name": name})
	}

	slog.Debug("reading from ConfigMap",
		"namespace", namespace,
		"name", name,
		"format", format,
		"size", len(content))

	reader, err := NewReader(format, strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for ConfigMap data: %w", err)
	}

	var result T
	if err := reader.Deserialize(&result); err != nil {
		if errors.IsCode(err, errors.ErrCodePayloadTooLarge) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to deserialize ConfigMap data", err)
	}

	return &result, nil
}
