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
	"fmt"
	"strings"

	"github.com/NVIDIA/vehicle-diagnostics/pkg/errors"
)

// PartType is the category of a vehicle part.
type PartType string

const (
	// PartTypeEngine is the engine block.
	PartTypeEngine PartType = "ENGINE"
	// PartTypeElectrical is the electrical system.
	PartTypeElectrical PartType = "ELECTRICAL"
	// PartTypeFuelFilter is the fuel filter.
	PartTypeFuelFilter PartType = "FUEL_FILTER"
	// PartTypeOilFilter is the oil filter.
	PartTypeOilFilter PartType = "OIL_FILTER"
	// PartTypeTire is a single tire.
	PartTypeTire PartType = "TIRE"
)

// String returns the string representation of the part type.
func (t PartType) String() string {
	return string(t)
}

// IsValid reports whether t is one of the known part categories.
func (t PartType) IsValid() bool {
	switch t {
	case PartTypeEngine, PartTypeElectrical, PartTypeFuelFilter, PartTypeOilFilter, PartTypeTire:
		return true
	default:
		return false
	}
}

// ParsePartType converts s into a PartType. Matching is case-insensitive
// and ignores surrounding whitespace.
func ParsePartType(s string) (PartType, error) {
	t := PartType(strings.ToUpper(strings.TrimSpace(s)))
	if t == "" {
		return "", errors.New(errors.ErrCodeInvalidRequest, "part type is required")
	}
	if !t.IsValid() {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported part type %q", s),
			map[string]any{"supported": SupportedPartTypes()})
	}
	return t, nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It is used by the JSON,
// YAML and XML decoders, so an unknown category fails the whole document.
func (t *PartType) UnmarshalText(text []byte) error {
	parsed, err := ParsePartType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// SupportedPartTypes returns the known part categories in required-parts order.
func SupportedPartTypes() []string {
	return []string{
		string(PartTypeEngine),
		string(PartTypeElectrical),
		string(PartTypeFuelFilter),
		string(PartTypeOilFilter),
		string(PartTypeTire),
	}
}

// ConditionType is the reported state of a part.
// The empty value means the condition was not set.
type ConditionType string

const (
	// ConditionNew is a new part.
	ConditionNew ConditionType = "NEW"
	// ConditionGood is a used part in good shape.
	ConditionGood ConditionType = "GOOD"
	// ConditionWorn is a worn but serviceable part.
	ConditionWorn ConditionType = "WORN"
	// ConditionDamaged is a damaged part.
	ConditionDamaged ConditionType = "DAMAGED"
	// ConditionBroken is a broken part.
	ConditionBroken ConditionType = "BROKEN"
)

// absentCondition is how an unset condition is rendered.
const absentCondition = "null"

// String returns the condition name, or "null" when the condition is unset.
func (c ConditionType) String() string {
	if c == "" {
		return absentCondition
	}
	return string(c)
}

// IsSet reports whether a condition was provided.
func (c ConditionType) IsSet() bool {
	return c != ""
}

// acceptableConditions is read-only; AcceptableConditions hands out copies.
var acceptableConditions = [...]ConditionType{ConditionNew, ConditionGood, ConditionWorn}

// IsAcceptable reports whether the part can stay in service.
// Only NEW, GOOD and WORN are acceptable; unset and unrecognized values are not.
func (c ConditionType) IsAcceptable() bool {
	for _, ok := range acceptableConditions {
		if c == ok {
			return true
		}
	}
	return false
}

// UnmarshalText implements encoding.TextUnmarshaler. Values are normalized
// to upper case but otherwise kept as read.
func (c *ConditionType) UnmarshalText(text []byte) error {
	*c = ConditionType(strings.ToUpper(strings.TrimSpace(string(text))))
	return nil
}

// AcceptableConditions returns the conditions that pass inspection.
func AcceptableConditions() []ConditionType {
	out := make([]ConditionType, len(acceptableConditions))
	copy(out, acceptableConditions[:])
	return out
}
