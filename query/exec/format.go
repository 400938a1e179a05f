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

package exec

import (
	"github.com/reter-go/reter/term"
	bytesutil "github.com/reter-go/reter/util/bytes"
)

// WriteTo renders t as a simple tab-separated table against w, resolving
// every term.ID through store rather than printing raw ids — the format
// Describe/debugging output uses. w accepts any of bytes.Buffer,
// bufio.Writer or strings.Builder, matching every other call site in this
// repo that writes incrementally built text.
func (t *Table) WriteTo(w bytesutil.StringWriter, store *term.Store) {
	for i, v := range t.Vars {
		if i > 0 {
			w.WriteByte('\t')
		}
		w.WriteString(string(v))
	}
	w.WriteByte('\n')

	for _, row := range t.Rows {
		for i, id := range row {
			if i > 0 {
				w.WriteByte('\t')
			}
			w.WriteString(termText(store, id))
		}
		w.WriteByte('\n')
	}
}

func termText(store *term.Store, id term.ID) string {
	tm, ok := store.TryLookup(id)
	if !ok {
		return "?"
	}
	return tm.String()
}
