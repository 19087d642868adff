package fwire

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestFromJSONScalars(t *testing.T) {
	tests := []struct {
		input    any
		wantKind Kind
		want     string
	}{
		{nil, KindNull, "null"},
		{true, KindBoolean, "true"},
		{"cat", KindString, `"cat"`},
		{int(4), KindInt, "4"},
		{int8(-4), KindInt, "-4"},
		{uint16(4), KindUInt, "4"},
		{uint64(18446744073709551615), KindUInt, "18446744073709551615"},
		{json.Number("4"), KindInt, "4"},
		{json.Number("-4"), KindInt, "-4"},
		{json.Number("18446744073709551615"), KindUInt, "18446744073709551615"},
		{json.Number("4.12"), KindDouble, "4.12"},
		{json.Number("1e3"), KindDouble, "1000"},
		{float64(4.12), KindDouble, "4.12"},
		{float64(4), KindInt, "4"},
		{float64(-4), KindInt, "-4"},
		{float64(1 << 63), KindUInt, "9223372036854775808"},
		{float32(4.5), KindFloat, "4.5"},
		{float32(4), KindInt, "4"},
		{[]byte{0x1, 0x2, 0x3, 0x4}, KindBytes, `{"@bytes":"AQIDBA=="}`},
	}
	for _, test := range tests {
		e, err := FromJSON(test.input)
		if err != nil {
			t.Errorf("** FromJSON(%T %v) failed: %v", test.input, test.input, err)
			continue
		}
		if e.Kind() != test.wantKind {
			t.Errorf("** FromJSON(%T %v).Kind() = %v, wanted %v", test.input, test.input, e.Kind(), test.wantKind)
		}
		wire(t, e, test.want)
	}
}

func TestFromJSONComposite(t *testing.T) {
	e := must(FromJSON([]any{json.Number("1"), "test", nil}))
	wire(t, e, `[1,"test",null]`)

	// generic maps have no defined order; keys convert sorted
	e = must(FromJSON(map[string]any{
		"lol": false,
		"foo": "bar",
	}))
	wire(t, e, `{"object":{"foo":"bar","lol":false}}`)

	e = must(FromJSON(map[string]any{
		"cats": []any{
			map[string]any{"name": "purr", "age": json.Number("8")},
		},
	}))
	wire(t, e, `{"object":{"cats":[{"object":{"age":8,"name":"purr"}}]}}`)
}

func TestFromJSONDecoded(t *testing.T) {
	const doc = `{"name":"purr","age":8,"tags":["cat",null],"weight":4.2}`
	dec := json.NewDecoder(strings.NewReader(doc))
	dec.UseNumber()
	var v any
	ensure(dec.Decode(&v))

	e := must(FromJSON(v))
	wire(t, e, `{"object":{"age":8,"name":"purr","tags":["cat",null],"weight":4.2}}`)

	// determinism holds for generic input too
	deepEqual(t, string(MarshalWire(must(FromJSON(v)))), e.String())
}

func TestFromJSONPassthrough(t *testing.T) {
	wire(t, must(FromJSON(Int(42))), "42")
	wire(t, must(FromJSON(ClassRef("test"))), `{"@ref":"classes/test"}`)
	wire(t, must(FromJSON(Matching(IndexRef("cats_age"), Int(8)))), `{"@set":{"match":{"@ref":"indexes/cats_age"},"terms":8}}`)

	obj := NewObject()
	obj.Insert("foo", String("bar"))
	wire(t, must(FromJSON(obj)), `{"object":{"foo":"bar"}}`)
}

func TestFromJSONUnsupported(t *testing.T) {
	type opaque struct{ X int }

	_, err := FromJSON(opaque{1})
	var uve *UnsupportedValueError
	if !errors.As(err, &uve) {
		t.Fatalf("** FromJSON(struct) = %v, wanted UnsupportedValueError", err)
	}

	// ambiguous between Date and Timestamp
	_, err = FromJSON(time.Now())
	if !errors.As(err, &uve) {
		t.Errorf("** FromJSON(time.Time) = %v, wanted UnsupportedValueError", err)
	}
}

func TestMustFromJSONPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("** MustFromJSON did not panic on unsupported input")
		}
	}()
	MustFromJSON(make(chan int))
}
