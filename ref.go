package fwire

// Ref addresses a document, collection, index, database or function by a
// path into the database's namespace. A Ref is a name plus an optional
// parent; the chain renders as a "/"-joined path from root to leaf.
type Ref struct {
	Name   string
	Parent *Ref
}

// NewRef makes a reference nested under parent, typically a named
// document within a collection: NewRef("foo", ClassRef("test")).
func NewRef(name string, parent Ref) Ref {
	return Ref{Name: name, Parent: &parent}
}

// RootRef makes a top-level reference with no parent.
func RootRef(name string) Ref {
	return Ref{Name: name}
}

// ClassRef references the collection (class) with the given name.
func ClassRef(name string) Ref {
	return NewRef(name, RootRef("classes"))
}

// IndexRef references the index with the given name.
func IndexRef(name string) Ref {
	return NewRef(name, RootRef("indexes"))
}

// DatabaseRef references the database with the given name.
func DatabaseRef(name string) Ref {
	return NewRef(name, RootRef("databases"))
}

// FunctionRef references the stored function with the given name.
func FunctionRef(name string) Ref {
	return NewRef(name, RootRef("functions"))
}

// Path renders the "/"-joined chain from the outermost parent to this Ref.
func (r Ref) Path() string {
	if r.Parent == nil {
		return r.Name
	}
	return r.Parent.Path() + "/" + r.Name
}
