package fwire

import (
	"encoding/base64"
	"io"
	"math"
	"strconv"
	"unicode/utf8"
)

const (
	dateLayout = "2006-01-02"
	// RFC 3339 with a numeric zone offset; UTC renders as +00:00, and
	// fractional seconds appear only when present.
	timestampLayout = "2006-01-02T15:04:05.999999999-07:00"
)

// AppendWire appends the wire form of e to buf and returns the extended
// buffer. It is total: every well-formed Expr has a wire form, and the
// same tree always produces the same bytes.
func AppendWire(buf []byte, e Expr) []byte {
	switch e.kind {
	case KindNull:
		return append(buf, "null"...)
	case KindString:
		return appendJSONString(buf, e.str)
	case KindDouble:
		return appendFloat(buf, e.f, 64)
	case KindFloat:
		return appendFloat(buf, e.f, 32)
	case KindInt:
		return strconv.AppendInt(buf, e.i, 10)
	case KindUInt:
		return strconv.AppendUint(buf, e.u, 10)
	case KindBoolean:
		return strconv.AppendBool(buf, e.b)
	case KindBytes:
		buf = append(buf, `{"@bytes":"`...)
		n := base64.StdEncoding.EncodedLen(len(e.data))
		buf = append(buf, make([]byte, n)...)
		base64.StdEncoding.Encode(buf[len(buf)-n:], e.data)
		return append(buf, `"}`...)
	case KindDate:
		buf = append(buf, `{"@date":"`...)
		buf = e.t.AppendFormat(buf, dateLayout)
		return append(buf, `"}`...)
	case KindTimestamp:
		buf = append(buf, `{"@ts":"`...)
		buf = e.t.AppendFormat(buf, timestampLayout)
		return append(buf, `"}`...)
	case KindRef:
		buf = append(buf, `{"@ref":`...)
		buf = appendJSONString(buf, e.ref.Path())
		return append(buf, '}')
	case KindArray:
		buf = append(buf, '[')
		for i, el := range e.arr {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = AppendWire(buf, el)
		}
		return append(buf, ']')
	case KindObject:
		// The "object" wrapper is what keeps a user map distinguishable
		// from the tagged forms; it is applied to every map, always.
		buf = append(buf, `{"object":{`...)
		for i, key := range e.obj.keys {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendJSONString(buf, key)
			buf = append(buf, ':')
			buf = AppendWire(buf, e.obj.m[key])
		}
		return append(buf, `}}`...)
	case KindSet:
		buf = append(buf, `{"@set":{"match":`...)
		buf = AppendWire(buf, e.set.Match.Expr())
		buf = append(buf, `,"terms":`...)
		buf = AppendWire(buf, e.set.Terms)
		return append(buf, `}}`...)
	default:
		panic("fwire: invalid Expr kind " + strconv.Itoa(int(e.kind)))
	}
}

// MarshalWire returns the wire form of e.
func MarshalWire(e Expr) []byte {
	return AppendWire(nil, e)
}

// MarshalJSON implements json.Marshaler; the wire form is valid JSON.
func (e Expr) MarshalJSON() ([]byte, error) {
	return AppendWire(nil, e), nil
}

// WriteWire encodes e and writes it to w in a single call. The only
// possible errors are the sink's, passed through unchanged.
func WriteWire(w io.Writer, e Expr) error {
	_, err := w.Write(AppendWire(nil, e))
	return err
}

// appendFloat matches encoding/json's canonical float formatting: the
// shortest representation that round-trips, switching to exponent form
// outside [1e-6, 1e21). NaN and infinities have no JSON form and encode
// as null.
func appendFloat(buf []byte, f float64, bits int) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(buf, "null"...)
	}
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) ||
			bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			format = 'e'
		}
	}
	buf = strconv.AppendFloat(buf, f, format, -1, bits)
	if format == 'e' {
		// clean up e-09 to e-9
		n := len(buf)
		if n >= 4 && buf[n-4] == 'e' && buf[n-3] == '-' && buf[n-2] == '0' {
			buf[n-2] = buf[n-1]
			buf = buf[:n-1]
		}
	}
	return buf
}

const hexdigits = "0123456789abcdef"

// appendJSONString escapes like encoding/json minus HTML escaping:
// quotes, backslashes and control characters, invalid UTF-8 as U+FFFD,
// U+2028/U+2029 escaped for embedding in scripts.
func appendJSONString(buf []byte, s string) []byte {
	buf = append(buf, '"')
	start := 0
	for i := 0; i < len(s); {
		if b := s[i]; b < utf8.RuneSelf {
			if b >= 0x20 && b != '"' && b != '\\' {
				i++
				continue
			}
			buf = append(buf, s[start:i]...)
			switch b {
			case '\\', '"':
				buf = append(buf, '\\', b)
			case '\n':
				buf = append(buf, '\\', 'n')
			case '\r':
				buf = append(buf, '\\', 'r')
			case '\t':
				buf = append(buf, '\\', 't')
			default:
				buf = append(buf, '\\', 'u', '0', '0', hexdigits[b>>4], hexdigits[b&0xF])
			}
			i++
			start = i
			continue
		}
		c, size := utf8.DecodeRuneInString(s[i:])
		if c == utf8.RuneError && size == 1 {
			buf = append(buf, s[start:i]...)
			buf = append(buf, `\ufffd`...)
			i += size
			start = i
			continue
		}
		if c == '\u2028' || c == '\u2029' {
			buf = append(buf, s[start:i]...)
			buf = append(buf, '\\', 'u', '2', '0', '2', hexdigits[c&0xF])
			i += size
			start = i
			continue
		}
		i += size
	}
	buf = append(buf, s[start:]...)
	return append(buf, '"')
}
