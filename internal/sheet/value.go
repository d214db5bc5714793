package sheet

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which member of the Value union is populated.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindString
	KindNumber
)

// Value is a single worksheet cell: a string, a number, or nothing.
type Value struct {
	kind Kind
	str  string
	num  float64
}

func String(s string) Value { return Value{kind: KindString, str: s} }
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Str returns the string member and whether the value holds a string.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Num returns the numeric member and whether the value holds a number.
func (v Value) Num() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Text renders the value the way a browser would stringify it.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Truthy mirrors the loose truthiness checks the page templates rely on:
// absent, empty string and zero are all false.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindString:
		return v.str != ""
	case KindNumber:
		return v.num != 0
	default:
		return false
	}
}

// LooselyEquals compares the value to a request identifier. Strings must
// match exactly. Numbers match a decimal string of the same value, so 7
// equals "7", "07", "7.0" and "7e0"; hex forms, infinities and NaN never match.
func (v Value) LooselyEquals(s string) bool {
	switch v.kind {
	case KindString:
		return v.str == s
	case KindNumber:
		n, ok := parseDecimal(s)
		return ok && n == v.num
	default:
		return false
	}
}

func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case string:
		*v = String(t)
	case float64:
		*v = Number(t)
	case bool:
		*v = String(boolText(t))
	case nil:
		*v = Value{}
	default:
		*v = String(strings.TrimSpace(string(data)))
	}
	return nil
}

func boolText(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
