package fwire

import "testing"

func TestObjectInsertionOrder(t *testing.T) {
	obj := NewObject()
	obj.Insert("c", Int(1))
	obj.Insert("a", Int(2))
	obj.Insert("b", Int(3))
	deepEqual(t, obj.Keys(), []string{"c", "a", "b"})
	wire(t, obj.Expr(), `{"object":{"c":1,"a":2,"b":3}}`)
}

func TestObjectOverwrite(t *testing.T) {
	obj := NewObject()
	obj.Insert("foo", String("bar"))
	obj.Insert("lol", Bool(false))
	obj.Insert("foo", String("baz"))

	deepEqual(t, obj.Len(), 2)
	deepEqual(t, obj.Keys(), []string{"foo", "lol"})
	v, ok := obj.Get("foo")
	deepEqual(t, ok, true)
	wire(t, v, `"baz"`)

	// overwritten key keeps its original position on the wire
	wire(t, obj.Expr(), `{"object":{"foo":"baz","lol":false}}`)
}

func TestObjectInsertValue(t *testing.T) {
	obj := NewObject()
	ensure(obj.InsertValue("name", "purr"))
	ensure(obj.InsertValue("age", 8))
	wire(t, obj.Expr(), `{"object":{"name":"purr","age":8}}`)

	if err := obj.InsertValue("bad", make(chan int)); err == nil {
		t.Errorf("** InsertValue(chan) succeeded, wanted error")
	}
	deepEqual(t, obj.Len(), 2)
}

func TestObjectGetMissing(t *testing.T) {
	obj := NewObject()
	_, ok := obj.Get("nope")
	deepEqual(t, ok, false)
	deepEqual(t, obj.Len(), 0)
}

func TestObjectKeysIsACopy(t *testing.T) {
	obj := NewObject()
	obj.Insert("foo", Int(1))
	keys := obj.Keys()
	keys[0] = "mutated"
	deepEqual(t, obj.Keys(), []string{"foo"})
}
