// Copyright (c) 2025 COREGX. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package core

import "strconv"

// literalKind tags the closed set of value variants the builder knows how to
// render as SQL literal text.
type literalKind int

const (
	literalText literalKind = iota
	literalNumber
	literalBoolean
	// literalInvalid marks values outside the supported scalar set. Such
	// values render as empty text rather than an error.
	literalInvalid
)

// literal is a SQL literal captured in its rendered textual form.
// Conversion happens once, when the value enters the builder; the raw value
// is not retained.
type literal struct {
	kind literalKind
	text string
}

// newLiteral converts a scalar value into its SQL literal form:
// strings are single-quoted (no escaping, see package doc), booleans become
// 1/0, and numbers use their canonical decimal text.
func newLiteral(value interface{}) literal {
	switch v := value.(type) {
	case string:
		return literal{kind: literalText, text: "'" + v + "'"}
	case bool:
		if v {
			return literal{kind: literalBoolean, text: "1"}
		}
		return literal{kind: literalBoolean, text: "0"}
	case int:
		return literal{kind: literalNumber, text: strconv.FormatInt(int64(v), 10)}
	case int8:
		return literal{kind: literalNumber, text: strconv.FormatInt(int64(v), 10)}
	case int16:
		return literal{kind: literalNumber, text: strconv.FormatInt(int64(v), 10)}
	case int32:
		return literal{kind: literalNumber, text: strconv.FormatInt(int64(v), 10)}
	case int64:
		return literal{kind: literalNumber, text: strconv.FormatInt(v, 10)}
	case uint:
		return literal{kind: literalNumber, text: strconv.FormatUint(uint64(v), 10)}
	case uint8:
		return literal{kind: literalNumber, text: strconv.FormatUint(uint64(v), 10)}
	case uint16:
		return literal{kind: literalNumber, text: strconv.FormatUint(uint64(v), 10)}
	case uint32:
		return literal{kind: literalNumber, text: strconv.FormatUint(uint64(v), 10)}
	case uint64:
		return literal{kind: literalNumber, text: strconv.FormatUint(v, 10)}
	case float32:
		return literal{kind: literalNumber, text: strconv.FormatFloat(float64(v), 'g', -1, 32)}
	case float64:
		return literal{kind: literalNumber, text: strconv.FormatFloat(v, 'g', -1, 64)}
	default:
		return literal{kind: literalInvalid}
	}
}
