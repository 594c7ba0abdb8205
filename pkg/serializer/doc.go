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

// Package serializer reads vehicle documents and writes diagnostic results.
//
// # Formats
//
// JSON and YAML can be both read and written. XML is input only and carries
// the <car> vehicle document. Table is output only: a FIELD/VALUE listing
// with nested fields flattened into dotted keys.
//
// # Reading
//
// FromFile loads a document from a local path, an http(s) URL, or a
// cm://namespace/name ConfigMap URI. The format comes from the file
// extension (.json, .yaml, .yml, .xml) and defaults to JSON:
//
//	car, err := serializer.FromFile[vehicle.Vehicle]("SampleCar.xml")
//
// ConfigMaps hold the document under vehicle.{yaml|json|xml}.
// FromConfigMap accepts an explicit client so tests can pass a fake clientset.
//
// A missing local file is reported with ErrCodeNotFound and an unparseable
// document with ErrCodeInvalidRequest.
//
// HTTP handlers choose a reader format with FormatFromContentType.
//
// # Writing
//
// NewFileWriterOrStdout picks the destination from a path: empty for stdout,
// cm://namespace/name for a ConfigMap written with Server-Side Apply, and a
// local file otherwise. Results land under diagnostic.{json|yaml|txt} with
// format and timestamp entries alongside.
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, "cm://garage/last-run")
//	if err := w.Serialize(ctx, result); err != nil {
//		return err
//	}
//
// RespondJSON buffers the encoded body before writing headers so a failed
// encode never produces a partial response.
package serializer
