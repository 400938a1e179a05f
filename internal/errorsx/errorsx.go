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

// Package errorsx is a thin layer over github.com/pkg/errors: it exists
// so call sites at a package boundary (the host-facing reasoner API) can
// attach a stack trace to an otherwise plain internal
// error without every such call site importing pkg/errors directly.
package errorsx

import "github.com/pkg/errors"

// Wrapf annotates err with a message and a stack trace, the way every
// exported boundary in this repo reports an internal failure to its
// caller. Returns nil if err is nil, as pkg/errors.Wrapf does.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}

// Cause unwraps err to the innermost error pkg/errors recorded a stack
// trace against, for callers that want to compare against a sentinel
// underneath several layers of Wrapf.
func Cause(err error) error {
	return errors.Cause(err)
}
