// Copyright 2020-2021 Dolthub, Inc.
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

package normalize

import "strings"

// Classification is the result of classifying an Oracle type reference by
// owner + name (spec §4.2).
type Classification int

const (
	BuiltIn Classification = iota
	XML
	SystemOpaque
	UserComposite
)

func (c Classification) String() string {
	switch c {
	case XML:
		return "XML"
	case SystemOpaque:
		return "SYSTEM_OPAQUE"
	case UserComposite:
		return "USER_COMPOSITE"
	default:
		return "BUILT_IN"
	}
}

// systemOpaqueNames is the documented set of system-owned types serialized
// as PostgreSQL jsonb.
var systemOpaqueNames = map[string]bool{
	"anydata":      true,
	"anytype":      true,
	"sdo_geometry": true,
	"aq$_jms_text_message": true,
}

func isAQType(name string) bool { return strings.HasPrefix(name, "aq$_") }

// ClassifyOracleType implements spec §4.2: owner sys/public with a listed
// name -> SYSTEM_OPAQUE; sys.xmltype/public.xmltype -> XML; any other owner
// -> USER_COMPOSITE; no owner -> BUILT_IN.
func ClassifyOracleType(owner, name string) Classification {
	owner = strings.ToLower(strings.TrimSpace(owner))
	name = strings.ToLower(strings.TrimSpace(name))

	if owner == "" {
		return BuiltIn
	}
	if owner == "sys" || owner == "public" {
		if name == "xmltype" {
			return XML
		}
		if systemOpaqueNames[name] || isAQType(name) {
			return SystemOpaque
		}
	}
	return UserComposite
}
