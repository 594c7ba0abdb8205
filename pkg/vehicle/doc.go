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

// Package vehicle defines the vehicle record checked by the diagnostics engine.
//
// # Overview
//
// A Vehicle carries three identifying fields (year, make, model) and an
// ordered list of parts. Each Part has a category (PartType) and a condition
// (ConditionType). Both are closed string enums:
//
//	PartType:      ENGINE, ELECTRICAL, FUEL_FILTER, OIL_FILTER, TIRE
//	ConditionType: NEW, GOOD, WORN are acceptable; anything else is damage
//
// Unknown part types are rejected while decoding. Unknown conditions are kept
// verbatim so they can be reported as damage.
//
// # Required Parts
//
// Every vehicle needs one ENGINE, ELECTRICAL, FUEL_FILTER and OIL_FILTER and
// four TIREs. MissingParts computes the shortfall from the current parts list
// on every call:
//
//	v := &vehicle.Vehicle{Year: "1990", Make: "Honda", Model: "Civic"}
//	for _, m := range v.MissingParts() {
//	    fmt.Printf("%s short by %d\n", m.Type, m.Count)
//	}
//
// # Document Formats
//
// Vehicles decode from JSON, YAML and XML. The XML form follows the car
// document layout with one <parts> element per part:
//
//	<car>
//	  <year>1990</year>
//	  <make>Honda</make>
//	  <model>Civic</model>
//	  <parts type="ENGINE" condition="NEW"/>
//	</car>
package vehicle
