package fwire

// Object is a string-keyed map of values that remembers insertion order.
// Keys are unique: inserting an existing key overwrites the value but
// keeps the key's original position.
type Object struct {
	keys []string
	m    map[string]Expr
}

func NewObject() *Object {
	return &Object{}
}

// Insert adds or overwrites a key. Returns the Object for chaining.
func (o *Object) Insert(key string, value Expr) *Object {
	if o.m == nil {
		o.m = make(map[string]Expr)
	}
	if _, exists := o.m[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.m[key] = value
	return o
}

// InsertValue converts value via FromJSON and inserts it.
func (o *Object) InsertValue(key string, value any) error {
	e, err := FromJSON(value)
	if err != nil {
		return err
	}
	o.Insert(key, e)
	return nil
}

func (o *Object) Get(key string) (Expr, bool) {
	v, ok := o.m[key]
	return v, ok
}

func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the keys in insertion order. The slice is a copy.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}
