/*
Package fwire implements the in-memory value model of a document database
client and its deterministic encoding into the database's extended-JSON
wire format.

We implement:

1. Expr, a closed tagged union over every wire-representable kind: JSON
scalars, ordered maps and arrays, and the database's tagged forms (byte
blobs, calendar dates, timestamps, references and match sets).

2. Typed constructors for building Expr trees from native Go values,
plus a conversion from generic decoded JSON.

3. The wire encoder, a pure recursive traversal producing the exact JSON
bytes the database expects.

4. A query store, a small bbolt-backed catalog of named pre-encoded wire
documents.

# Technical Details

**Reserved tag keys.**
The wire format distinguishes the database's special forms from plain JSON
with single-key wrapper objects: “@bytes”, “@date”, “@ts”, “@ref” and
“@set”. A user-authored map is itself always wrapped under the “object”
key, so a user key can never collide with a tag. This wrapping is the sole
escaping mechanism and is applied to every map unconditionally.

**Ordering.**
Object preserves insertion order; re-inserting an existing key overwrites
the value but keeps the key's original position. Wire output follows that
order exactly, so encoding the same tree twice yields identical bytes.

**References.**
A Ref is a name plus an optional parent Ref; its wire form is the
“/”-joined path from root to leaf (e.g. “classes/test/foo”).

## Query store record encoding

**Record**: record header, then encoded metadata, then the wire document.

**Record header**:
1. Flags (uvarint): format version bits, compression bit.
2. Mod count (uvarint).
3. Metadata size (uvarint).
4. Body size (uvarint).

**Metadata**: msgpack of the record's queryMeta.

**Body**: the wire JSON document, snappy-compressed when the flags say so.
*/
package fwire
