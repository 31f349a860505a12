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

package types

import "strings"

// funcClass tags how a built-in function's result type is derived from its
// arguments, per spec §4.4's table.
type funcClass int

const (
	fixedResult funcClass = iota
	dateOrNumeric
	propagateFirstArg
	highestPrecedenceArgs
)

type funcRule struct {
	class  funcClass
	result Type // used when class == fixedResult
}

// builtinFunctions is the ~50-entry table of spec §4.4.
var builtinFunctions = map[string]funcRule{
	// polymorphic: DATE argument -> DATE, else NUMERIC
	"round": {class: dateOrNumeric},
	"trunc": {class: dateOrNumeric},

	// propagate the (single, typed) argument
	"min":    {class: propagateFirstArg},
	"max":    {class: propagateFirstArg},
	"nullif": {class: propagateFirstArg},

	// highest precedence among typed candidate arguments
	"nvl":      {class: highestPrecedenceArgs},
	"coalesce": {class: highestPrecedenceArgs},
	"decode":   {class: highestPrecedenceArgs},
	"nvl2":     {class: highestPrecedenceArgs},
	"least":    {class: highestPrecedenceArgs},
	"greatest": {class: highestPrecedenceArgs},

	// aggregates
	"count": {class: fixedResult, result: Numeric},
	"sum":   {class: propagateFirstArg},
	"avg":   {class: fixedResult, result: Numeric},

	// string functions
	"upper":       {class: fixedResult, result: Text},
	"lower":       {class: fixedResult, result: Text},
	"initcap":     {class: fixedResult, result: Text},
	"substr":      {class: fixedResult, result: Text},
	"substring":   {class: fixedResult, result: Text},
	"trim":        {class: fixedResult, result: Text},
	"ltrim":       {class: fixedResult, result: Text},
	"rtrim":       {class: fixedResult, result: Text},
	"concat":      {class: fixedResult, result: Text},
	"replace":     {class: fixedResult, result: Text},
	"lpad":        {class: fixedResult, result: Text},
	"rpad":        {class: fixedResult, result: Text},
	"rawtohex":    {class: fixedResult, result: Text},
	"to_char":     {class: fixedResult, result: Text},
	"sys_connect_by_path": {class: fixedResult, result: Text},

	// numeric functions
	"abs":   {class: fixedResult, result: Numeric},
	"sqrt":  {class: fixedResult, result: Numeric},
	"ceil":  {class: fixedResult, result: Numeric},
	"floor": {class: fixedResult, result: Numeric},
	"power": {class: fixedResult, result: Numeric},
	"mod":   {class: fixedResult, result: Numeric},
	"sign":  {class: fixedResult, result: Numeric},
	"length": {class: fixedResult, result: Numeric},
	"instr":  {class: fixedResult, result: Numeric},
	"extract": {class: fixedResult, result: Numeric},

	// conversions
	"to_number":    {class: fixedResult, result: Numeric},
	"to_date":      {class: fixedResult, result: Date},
	"to_timestamp": {class: fixedResult, result: Timestamp},

	// misc: CONNECT_BY_ISLEAF yields 0 or 1
	"connect_by_isleaf": {class: fixedResult, result: Numeric},
}

// ResolveFunction implements the function resolver of spec §4.4. name is
// matched case-insensitively.
func ResolveFunction(name string, args []Type) Type {
	rule, ok := builtinFunctions[strings.ToLower(name)]
	if !ok {
		return Unknown
	}
	switch rule.class {
	case fixedResult:
		return rule.result
	case dateOrNumeric:
		if len(args) > 0 && (args[0].Category == CategoryDate || args[0].Category == CategoryTimestamp) {
			return args[0]
		}
		return Numeric
	case propagateFirstArg:
		if len(args) == 0 {
			return Unknown
		}
		return args[0]
	case highestPrecedenceArgs:
		return HighestPrecedence(args...)
	}
	return Unknown
}

// IsKnownFunction reports whether name is in the built-in table, used by the
// type-analysis pass to decide whether a call resolves through ResolveFunction.
func IsKnownFunction(name string) bool {
	_, ok := builtinFunctions[strings.ToLower(name)]
	return ok
}
