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

package vehicle

import (
	"encoding/xml"
	"fmt"

	"github.com/NVIDIA/vehicle-diagnostics/pkg/errors"
)

// Requirement is the minimum number of parts of one category.
type Requirement struct {
	Type  PartType `json:"type" yaml:"type"`
	Count int      `json:"count" yaml:"count"`
}

// MissingPart is the number of parts still needed for a category.
type MissingPart struct {
	Type  PartType `json:"type" yaml:"type"`
	Count int      `json:"count" yaml:"count"`
}

// requiredParts is ordered; MissingParts reports in this order.
var requiredParts = [...]Requirement{
	{Type: PartTypeEngine, Count: 1},
	{Type: PartTypeElectrical, Count: 1},
	{Type: PartTypeFuelFilter, Count: 1},
	{Type: PartTypeOilFilter, Count: 1},
	{Type: PartTypeTire, Count: 4},
}

// RequiredParts returns a copy of the minimum part counts every vehicle must meet.
func RequiredParts() []Requirement {
	out := make([]Requirement, len(requiredParts))
	copy(out, requiredParts[:])
	return out
}

// Part is a single component of a vehicle.
type Part struct {
	Type      PartType      `json:"type" yaml:"type" xml:"type,attr"`
	Condition ConditionType `json:"condition,omitempty" yaml:"condition,omitempty" xml:"condition,attr,omitempty"`
}

// String returns a compact representation of the part.
func (p Part) String() string {
	return fmt.Sprintf("Part{type=%s, condition=%s}", p.Type, p.Condition)
}

// Vehicle is the record under diagnosis. An empty string field is treated as absent.
type Vehicle struct {
	XMLName xml.Name `json:"-" yaml:"-" xml:"car"`

	Year  string `json:"year,omitempty" yaml:"year,omitempty" xml:"year,omitempty"`
	Make  string `json:"make,omitempty" yaml:"make,omitempty" xml:"make,omitempty"`
	Model string `json:"model,omitempty" yaml:"model,omitempty" xml:"model,omitempty"`

	Parts []Part `json:"parts,omitempty" yaml:"parts,omitempty" xml:"parts,omitempty"`
}

// String returns a compact representation of the vehicle.
func (v *Vehicle) String() string {
	if v == nil {
		return "Vehicle{}"
	}
	return fmt.Sprintf("Vehicle{year=%q, make=%q, model=%q, parts=%v}", v.Year, v.Make, v.Model, v.Parts)
}

// Validate reports a part without a known category. Decoders only check
// the type when one is present, so a part with no type key still needs this.
func (v *Vehicle) Validate() error {
	if v == nil {
		return errors.New(errors.ErrCodeInvalidRequest, "vehicle cannot be nil")
	}
	for i, p := range v.Parts {
		if p.Type.IsValid() {
			continue
		}
		msg := fmt.Sprintf("part %d has no type", i+1)
		if p.Type != "" {
			msg = fmt.Sprintf("part %d has unsupported type %q", i+1, p.Type)
		}
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, msg, map[string]any{
			"index":     i,
			"supported": SupportedPartTypes(),
		})
	}
	return nil
}

// PartCount returns the number of parts of type t. A nil vehicle or parts
// list counts as zero.
func (v *Vehicle) PartCount(t PartType) int {
	if v == nil {
		return 0
	}
	n := 0
	for _, p := range v.Parts {
		if p.Type == t {
			n++
		}
	}
	return n
}

// MissingParts returns the shortfall for every required category that is
// under-supplied. It is recomputed from Parts on each call.
func (v *Vehicle) MissingParts() []MissingPart {
	var missing []MissingPart
	for _, req := range requiredParts {
		if short := req.Count - v.PartCount(req.Type); short > 0 {
			missing = append(missing, MissingPart{Type: req.Type, Count: short})
		}
	}
	return missing
}
