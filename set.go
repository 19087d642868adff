package fwire

// Set is a match predicate as a value: the documents of Match whose
// indexed terms equal Terms. It is opaque structured data to the encoder,
// not a live cursor; the database evaluates it server-side.
type Set struct {
	Match Ref
	Terms Expr
}

// Matching builds a Set over the given index (or collection) and terms.
// Terms may be any Expr, including nested Objects and Arrays; depth is
// the caller's responsibility.
func Matching(match Ref, terms Expr) Set {
	return Set{Match: match, Terms: terms}
}
