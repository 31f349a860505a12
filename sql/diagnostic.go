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

package sql

// Severity classifies a Diagnostic. Debug diagnostics are the resolver-level
// "I could not type this node" notes of spec §4.5/§7; Warning diagnostics
// are surfaced to callers via TransformationResult.Diagnostics.
type Severity int

const (
	// SeverityDebug marks a diagnostic that does not affect success and is
	// mainly useful while developing the transformation rules themselves.
	SeverityDebug Severity = iota
	// SeverityWarning marks a diagnostic a caller should look at: a
	// defaulted name, a defensive cast, a synonym chain that gave up.
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	default:
		return "debug"
	}
}

// Diagnostic is a single soft note recorded by either pass. It never causes
// a transformation to fail; TransformationError (see ErrUnsupportedConstruct
// and ErrParse) is used for that instead.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	// RunID correlates every diagnostic emitted by one transformation, so
	// a caller running many transformations concurrently (spec §5) can
	// attribute log lines to the right one.
	RunID string
}

func NewDiagnostic(sev Severity, code, message, runID string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Message: message, RunID: runID}
}
