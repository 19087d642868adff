package fwire

import (
	"time"
)

// Kind identifies the variant held by an Expr. The set is closed; the
// encoder and converters switch over it exhaustively.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindDouble
	KindFloat
	KindInt
	KindUInt
	KindBoolean
	KindBytes
	KindDate
	KindTimestamp
	KindRef
	KindObject
	KindArray
	KindSet
)

var kindNames = []string{
	KindNull:      "null",
	KindString:    "string",
	KindDouble:    "double",
	KindFloat:     "float",
	KindInt:       "int",
	KindUInt:      "uint",
	KindBoolean:   "boolean",
	KindBytes:     "bytes",
	KindDate:      "date",
	KindTimestamp: "timestamp",
	KindRef:       "ref",
	KindObject:    "object",
	KindArray:     "array",
	KindSet:       "set",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// Expr is a single wire-representable value. The zero value is Null.
// An Expr tree is built bottom-up via the constructors below, handed to
// the encoder once, and never mutated afterwards.
type Expr struct {
	kind Kind
	str  string
	i    int64
	u    uint64
	f    float64
	b    bool
	data []byte
	t    time.Time
	obj  *Object
	arr  []Expr
	ref  *Ref
	set  *Set
}

func (e Expr) Kind() Kind {
	return e.kind
}

// String returns the wire form, for logs and tests.
func (e Expr) String() string {
	return string(AppendWire(nil, e))
}

func Null() Expr {
	return Expr{}
}

func String(s string) Expr {
	return Expr{kind: KindString, str: s}
}

func Double(f float64) Expr {
	return Expr{kind: KindDouble, f: f}
}

func Float(f float32) Expr {
	return Expr{kind: KindFloat, f: float64(f)}
}

func Int[T ~int | ~int8 | ~int16 | ~int32 | ~int64](v T) Expr {
	return Expr{kind: KindInt, i: int64(v)}
}

func UInt[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](v T) Expr {
	return Expr{kind: KindUInt, u: uint64(v)}
}

func Bool(b bool) Expr {
	return Expr{kind: KindBoolean, b: b}
}

// Bytes aliases the caller's slice without copying. The slice must stay
// unmodified until the tree has been encoded; use BytesCopy otherwise.
func Bytes(b []byte) Expr {
	return Expr{kind: KindBytes, data: b}
}

// BytesCopy takes a private copy of b.
func BytesCopy(b []byte) Expr {
	data := make([]byte, len(b))
	copy(data, b)
	return Expr{kind: KindBytes, data: data}
}

// Date keeps only the calendar date of t, in t's location.
func Date(t time.Time) Expr {
	y, m, d := t.Date()
	return DateYMD(y, m, d)
}

func DateYMD(year int, month time.Month, day int) Expr {
	return Expr{kind: KindDate, t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Timestamp normalizes t to UTC.
func Timestamp(t time.Time) Expr {
	return Expr{kind: KindTimestamp, t: t.UTC()}
}

func Arr(elems ...Expr) Expr {
	return Expr{kind: KindArray, arr: elems}
}

func (o *Object) Expr() Expr {
	return Expr{kind: KindObject, obj: o}
}

func (r Ref) Expr() Expr {
	return Expr{kind: KindRef, ref: &r}
}

func (s Set) Expr() Expr {
	return Expr{kind: KindSet, set: &s}
}
