// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package reasonerrors defines the error types the reasoner's
// host-facing API surfaces. Most of the diagnostics a caller needs —
// a rejected axiom, a detected inconsistency — are reported as events
// rather than errors (see infer.Event), because loading continues past
// them; this package covers the handful of conditions that really are
// terminal for the call that triggered them.
package reasonerrors

import "fmt"

// InvalidQuery reports a structural problem with a query the planner
// refuses to run at all, as opposed to one that simply returns no rows:
// a variable used only in a MINUS clause's head select list, and similar
// shapes that can't be assigned a sound execution plan.
type InvalidQuery struct {
	Reason string
}

func (e *InvalidQuery) Error() string {
	return fmt.Sprintf("invalid query: %s", e.Reason)
}

// LiteralTypeError reports a builtin call given operands whose literal
// types can't be meaningfully compared or combined (e.g. ge(?a, "foo")
// where ?a is bound to an integer). It is never returned to a caller —
// a builtin hitting this drops the token silently, the way a SPARQL
// FILTER failing with a type error excludes the binding rather than
// aborting the query — but the type exists so callers composing their
// own BuiltinFunc can report it with errors.As for diagnostic purposes.
type LiteralTypeError struct {
	Builtin string
}

func (e *LiteralTypeError) Error() string {
	return fmt.Sprintf("builtin %q received an incomparable literal type", e.Builtin)
}
