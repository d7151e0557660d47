package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
)

type pseudoKind uint8

const (
	pseudoUint pseudoKind = iota
	pseudoNegInt
	pseudoText
)

// PseudoID is a candidate identifier as received from an external caller:
// an integer (possibly negative) or a string.
//
// Non-negative integers always use the same representation regardless of the
// constructor used, so PseudoInt(5) == PseudoUint(5).
type PseudoID struct {
	kind pseudoKind
	num  uint64
	neg  int64
	text string
}

// PseudoUint returns an integer PseudoID.
func PseudoUint(n uint64) PseudoID {
	return PseudoID{kind: pseudoUint, num: n}
}

// PseudoInt returns an integer PseudoID.
func PseudoInt(n int64) PseudoID {
	if n >= 0 {
		return PseudoUint(uint64(n))
	}
	return PseudoID{kind: pseudoNegInt, neg: n}
}

// PseudoText returns a text PseudoID.
func PseudoText(s string) PseudoID {
	return PseudoID{kind: pseudoText, text: s}
}

// PseudoFromPointID converts a canonical id back into the external domain.
// Integers stay integers, UUIDs become their canonical text form.
func PseudoFromPointID(p PointID) PseudoID {
	if u, ok := p.UUID(); ok {
		return PseudoText(u.String())
	}
	n, _ := p.Num()
	return PseudoUint(n)
}

// ParsePseudoID converts a loosely-typed value, as decoded from a request
// payload, into a PseudoID.
func ParsePseudoID(v any) (PseudoID, error) {
	switch x := v.(type) {
	case PseudoID:
		return x, nil
	case string:
		return PseudoText(x), nil
	case int:
		return PseudoInt(int64(x)), nil
	case int8:
		return PseudoInt(int64(x)), nil
	case int16:
		return PseudoInt(int64(x)), nil
	case int32:
		return PseudoInt(int64(x)), nil
	case int64:
		return PseudoInt(x), nil
	case uint:
		return PseudoUint(uint64(x)), nil
	case uint8:
		return PseudoUint(uint64(x)), nil
	case uint16:
		return PseudoUint(uint64(x)), nil
	case uint32:
		return PseudoUint(uint64(x)), nil
	case uint64:
		return PseudoUint(x), nil
	case float64:
		return parseFloat(x)
	case json.Number:
		return parseNumber(string(x))
	default:
		return PseudoID{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidPointID, v)
	}
}

// parseNumber accepts any JSON number with an integral value, so 1000, 1e3
// and 1000.0 are the same id.
func parseNumber(s string) (PseudoID, error) {
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return PseudoUint(n), nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return PseudoInt(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return PseudoID{}, fmt.Errorf("%w: number %s", ErrInvalidPointID, s)
	}
	return parseFloat(f)
}

func parseFloat(x float64) (PseudoID, error) {
	if x != math.Trunc(x) || x < math.MinInt64 || x >= math.MaxUint64 {
		return PseudoID{}, fmt.Errorf("%w: non-integral number %v", ErrInvalidPointID, x)
	}
	if x < 0 {
		return PseudoInt(int64(x)), nil
	}
	return PseudoUint(uint64(x)), nil
}

// IsInteger reports whether the id was supplied as an integer.
func (p PseudoID) IsInteger() bool { return p.kind != pseudoText }

// Text returns the text value and true if the id was supplied as a string.
func (p PseudoID) Text() (string, bool) {
	return p.text, p.kind == pseudoText
}

// PointID converts the pseudo id into a canonical id.
//
// Integers convert iff non-negative, text converts iff it parses as a UUID.
func (p PseudoID) PointID() (PointID, error) {
	switch p.kind {
	case pseudoUint:
		return NumID(p.num), nil
	case pseudoText:
		u, err := uuid.Parse(p.text)
		if err != nil {
			return PointID{}, fmt.Errorf("%w: %q is not a uuid", ErrInvalidPointID, p.text)
		}
		return UUIDID(u), nil
	default:
		return PointID{}, fmt.Errorf("%w: negative integer %d", ErrInvalidPointID, p.neg)
	}
}

// String returns the integer in decimal or the text verbatim.
func (p PseudoID) String() string {
	switch p.kind {
	case pseudoUint:
		return strconv.FormatUint(p.num, 10)
	case pseudoNegInt:
		return strconv.FormatInt(p.neg, 10)
	default:
		return p.text
	}
}

// MarshalJSON encodes integers as numbers and text as strings.
func (p PseudoID) MarshalJSON() ([]byte, error) {
	if p.kind == pseudoText {
		return json.Marshal(p.text)
	}
	return []byte(p.String()), nil
}

// UnmarshalJSON accepts a JSON string or any integral JSON number.
func (p *PseudoID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PseudoText(s)
		return nil
	}
	v, err := parseNumber(string(data))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
