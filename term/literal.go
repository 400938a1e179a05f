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

package term

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DatatypeTag classifies a Literal's ParsedValue so Compare and the RETE
// builtin nodes know how to treat it. Unknown datatypes fall back to
// DatatypeOpaque: two opaque literals compare Equal when their lexical
// forms match and Incomparable otherwise.
type DatatypeTag int

const (
	// DatatypeOpaque is used for datatypes this reasoner doesn't recognize;
	// the literal is treated as an uninterpreted string.
	DatatypeOpaque DatatypeTag = iota
	DatatypeString
	DatatypeBoolean
	// DatatypeInteger and DatatypeDecimal are both numeric; they compare by
	// magnitude against each other via ParsedValue's float64/decimal form.
	DatatypeInteger
	DatatypeDecimal
	DatatypeDateTime
	DatatypeDuration
)

// wellKnownDatatypes maps the xsd: local names the parser is expected to
// hand us onto a DatatypeTag. Anything else is DatatypeOpaque.
var wellKnownDatatypes = map[string]DatatypeTag{
	"string":   DatatypeString,
	"boolean":  DatatypeBoolean,
	"integer":  DatatypeInteger,
	"int":      DatatypeInteger,
	"long":     DatatypeInteger,
	"decimal":  DatatypeDecimal,
	"double":   DatatypeDecimal,
	"float":    DatatypeDecimal,
	"dateTime": DatatypeDateTime,
	"date":     DatatypeDateTime,
	"duration": DatatypeDuration,
}

// TagForDatatype resolves the DatatypeTag for a datatype name. The name may
// be a bare xsd local name ("integer"), a prefixed name ("xsd:integer") or
// a full IRI ("http://www.w3.org/2001/XMLSchema#integer"); only the local
// name is consulted.
func TagForDatatype(datatype string) DatatypeTag {
	local := datatype
	if i := strings.LastIndexAny(datatype, "#/:"); i >= 0 {
		local = datatype[i+1:]
	}
	if tag, ok := wellKnownDatatypes[local]; ok {
		return tag
	}
	return DatatypeOpaque
}

// Literal carries a typed literal's lexical form, its datatype, and a
// normalised parsed value used for comparison. Two literals with
// byte-equal lexical forms and datatypes are always equal; two literals
// whose lexical forms normalise to the same parsed value under the same
// tag are also treated as equal (e.g. "1.0" and "1.00" as xsd:decimal).
type Literal struct {
	Lexical  string
	Datatype string
	Tag      DatatypeTag
	// ParsedValue holds the normalised value: bool, float64 (Integer and
	// Decimal both normalise to float64 for magnitude comparison),
	// time.Time (DateTime), time.Duration (Duration), or string (String,
	// Opaque).
	ParsedValue interface{}
}

// NewLiteral parses lex under datatype and returns the normalised Literal.
// Parsing failures don't error; they fall back to treating the literal as
// an opaque string, matching the "Unknown datatype ⇒ treated as opaque
// string" rule in the Term Store contract.
func NewLiteral(lex, datatype string) Literal {
	tag := TagForDatatype(datatype)
	l := Literal{Lexical: lex, Datatype: datatype, Tag: tag}
	switch tag {
	case DatatypeBoolean:
		if b, err := strconv.ParseBool(lex); err == nil {
			l.ParsedValue = b
			return l
		}
	case DatatypeInteger, DatatypeDecimal:
		if f, err := strconv.ParseFloat(lex, 64); err == nil {
			l.ParsedValue = f
			return l
		}
	case DatatypeDateTime:
		for _, layout := range dateTimeLayouts {
			if t, err := time.Parse(layout, lex); err == nil {
				l.ParsedValue = t.UTC()
				return l
			}
		}
	case DatatypeDuration:
		if d, err := time.ParseDuration(lex); err == nil {
			l.ParsedValue = d
			return l
		}
	}
	// String, Opaque, or a parse failure: fall back to the lexical form
	// itself and mark it opaque so callers don't mistakenly treat it as
	// the original numeric/temporal tag.
	l.Tag = pickFallbackTag(tag)
	l.ParsedValue = lex
	return l
}

func pickFallbackTag(tag DatatypeTag) DatatypeTag {
	if tag == DatatypeString {
		return DatatypeString
	}
	return DatatypeOpaque
}

var dateTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
}

func (l Literal) String() string {
	if l.Datatype == "" {
		return fmt.Sprintf("%q", l.Lexical)
	}
	return fmt.Sprintf("%q^^%s", l.Lexical, l.Datatype)
}

// Key returns a value suitable for use as a map key that collapses
// normalisation-equivalent literals ("1.0" and "1.00") to the same key,
// per the Term Store's determinism contract.
func (l Literal) Key() interface{} {
	switch v := l.ParsedValue.(type) {
	case float64, bool, time.Time, time.Duration, string:
		return [2]interface{}{l.Tag, v}
	default:
		return [2]interface{}{l.Tag, l.Lexical}
	}
}
