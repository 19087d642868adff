package fwire

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"time"
)

// FromJSON converts a generic decoded-JSON value (and the common native
// Go kinds) into an Expr. Numbers classify by trying integer-exact, then
// unsigned-exact, then falling back to floating point; json.Number
// preserves the lexical distinction exactly, so prefer decoding with
// UseNumber. Arrays and maps convert recursively; a generic map has no
// defined order, so its keys convert in sorted order to keep the wire
// form deterministic.
//
// time.Time is deliberately not accepted: it is ambiguous between Date
// and Timestamp, and callers must pick a constructor.
func FromJSON(v any) (Expr, error) {
	switch v := v.(type) {
	case nil:
		return Null(), nil
	case Expr:
		return v, nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case json.Number:
		return numberExpr(v)
	case int:
		return Int(v), nil
	case int8:
		return Int(v), nil
	case int16:
		return Int(v), nil
	case int32:
		return Int(v), nil
	case int64:
		return Int(v), nil
	case uint:
		return UInt(v), nil
	case uint8:
		return UInt(v), nil
	case uint16:
		return UInt(v), nil
	case uint32:
		return UInt(v), nil
	case uint64:
		return UInt(v), nil
	case float64:
		return floatExpr(v), nil
	case float32:
		if isExactInt(float64(v)) {
			return floatExpr(float64(v)), nil
		}
		return Float(v), nil
	case []byte:
		return Bytes(v), nil
	case []any:
		elems := make([]Expr, len(v))
		for i, el := range v {
			e, err := FromJSON(el)
			if err != nil {
				return Expr{}, err
			}
			elems[i] = e
		}
		return Arr(elems...), nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			e, err := FromJSON(v[k])
			if err != nil {
				return Expr{}, err
			}
			obj.Insert(k, e)
		}
		return obj.Expr(), nil
	case *Object:
		return v.Expr(), nil
	case Ref:
		return v.Expr(), nil
	case *Ref:
		return v.Expr(), nil
	case Set:
		return v.Expr(), nil
	case time.Time:
		return Expr{}, &UnsupportedValueError{Value: v}
	default:
		return Expr{}, &UnsupportedValueError{Value: v}
	}
}

// MustFromJSON is FromJSON for callers that treat unconvertible input as
// a programming error.
func MustFromJSON(v any) Expr {
	e, err := FromJSON(v)
	if err != nil {
		panic(err)
	}
	return e
}

func numberExpr(num json.Number) (Expr, error) {
	if i, err := strconv.ParseInt(string(num), 10, 64); err == nil {
		return Int(i), nil
	}
	if u, err := strconv.ParseUint(string(num), 10, 64); err == nil {
		return UInt(u), nil
	}
	f, err := num.Float64()
	if err != nil {
		return Expr{}, &UnsupportedValueError{Value: num}
	}
	return Double(f), nil
}

// floatExpr classifies a float the way the number path does: a decoder
// that does not preserve tokens hands us 4 and 4.0 identically, so
// integer-exact floats become integers.
func floatExpr(f float64) Expr {
	if isExactInt(f) {
		if f >= 0 && f >= float64(math.MaxInt64) {
			return UInt(uint64(f))
		}
		return Int(int64(f))
	}
	return Double(f)
}

func isExactInt(f float64) bool {
	return f == math.Trunc(f) && f >= -(1<<63) && f < (1<<64)
}
