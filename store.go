package fwire

import (
	"time"

	"github.com/golang/snappy"
	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"
)

const (
	queryFormatVer1      = 1
	queryFormatVerLatest = queryFormatVer1

	// Bodies shorter than this never win from snappy.
	compressThreshold = 128
)

type queryFlags uint64

const (
	qfVerBit0 = queryFlags(1 << iota)
	qfVerBit1
	qfVerBit2
	qfVerBit3
	qfCompressionBit0

	qfVerMask       = (qfVerBit0 | qfVerBit1 | qfVerBit2 | qfVerBit3)
	qfVer1          = qfVerBit0
	qfSnappy        = qfCompressionBit0
	qfSupportedMask = (qfVer1 | qfSnappy)
	qfDefault       = qfVer1
)

// QueryMeta describes a stored wire document.
type QueryMeta struct {
	SavedAt  time.Time
	RawSize  int
	ModCount uint64
}

type queryMeta struct {
	SavedAtMicros int64 `msgpack:"sa"`
	RawSize       int   `msgpack:"rs"`
}

// QueryStore is a persistent catalog of named, pre-encoded wire
// documents, e.g. the queries an application saves for reuse.
type QueryStore struct {
	bdb *bbolt.DB
}

var queriesBucket = []byte("queries")

// StoreOptions configure OpenQueryStore.
type StoreOptions struct {
	IsTesting bool // skips fsync, allowed to lose the file on crash
}

func OpenQueryStore(path string, opt StoreOptions) (*QueryStore, error) {
	bopt := &bbolt.Options{
		Timeout: 10 * time.Second,
	}
	if opt.IsTesting {
		bopt.NoSync = true
	}
	bdb, err := bbolt.Open(path, 0o666, bopt)
	if err != nil {
		return nil, err
	}
	err = bdb.Update(func(btx *bbolt.Tx) error {
		_, err := btx.CreateBucketIfNotExists(queriesBucket)
		return err
	})
	if err != nil {
		bdb.Close()
		return nil, err
	}
	return &QueryStore{bdb: bdb}, nil
}

func (qs *QueryStore) Close() error {
	return qs.bdb.Close()
}

// Put encodes e and stores it under name, overwriting any previous
// version and bumping its mod count.
func (qs *QueryStore) Put(name string, e Expr) error {
	return qs.PutWire(name, MarshalWire(e))
}

// PutWire stores an already-encoded wire document under name.
func (qs *QueryStore) PutWire(name string, wire []byte) error {
	return qs.bdb.Update(func(btx *bbolt.Tx) error {
		b := btx.Bucket(queriesBucket)
		var modCount uint64
		if prev := b.Get([]byte(name)); prev != nil {
			_, meta, err := decodeQueryRecord(prev)
			if err == nil {
				modCount = meta.ModCount
			}
			// a corrupt previous record restarts the count
		}
		return b.Put([]byte(name), encodeQueryRecord(wire, modCount+1))
	})
}

// Get returns the wire document stored under name. The returned slice is
// private to the caller.
func (qs *QueryStore) Get(name string) ([]byte, QueryMeta, error) {
	var wire []byte
	var meta QueryMeta
	err := qs.bdb.View(func(btx *bbolt.Tx) error {
		data := btx.Bucket(queriesBucket).Get([]byte(name))
		if data == nil {
			return ErrQueryNotFound
		}
		var err error
		wire, meta, err = decodeQueryRecord(data)
		return err
	})
	if err != nil {
		return nil, QueryMeta{}, err
	}
	return wire, meta, nil
}

// Names lists stored query names in lexicographic order.
func (qs *QueryStore) Names() ([]string, error) {
	var names []string
	err := qs.bdb.View(func(btx *bbolt.Tx) error {
		return btx.Bucket(queriesBucket).ForEach(func(k, v []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Delete removes name. Deleting a missing name is not an error.
func (qs *QueryStore) Delete(name string) error {
	return qs.bdb.Update(func(btx *bbolt.Tx) error {
		return btx.Bucket(queriesBucket).Delete([]byte(name))
	})
}

func encodeQueryRecord(wire []byte, modCount uint64) []byte {
	var mb bytesBuilder
	enc := msgpack.GetEncoder()
	enc.Reset(&mb)
	err := enc.Encode(queryMeta{
		SavedAtMicros: time.Now().UnixMicro(),
		RawSize:       len(wire),
	})
	msgpack.PutEncoder(enc)
	if err != nil {
		panic(err) // queryMeta always encodes
	}

	flags := qfDefault
	body := wire
	if len(wire) >= compressThreshold {
		if c := snappy.Encode(nil, wire); len(c) < len(wire) {
			flags |= qfSnappy
			body = c
		}
	}

	buf := appendUvarint(nil, uint64(flags))
	buf = appendUvarint(buf, modCount)
	buf = appendUvarint(buf, uint64(len(mb.Buf)))
	buf = appendUvarint(buf, uint64(len(body)))
	buf = appendRaw(buf, mb.Buf)
	buf = appendRaw(buf, body)
	return buf
}

func decodeQueryRecord(data []byte) ([]byte, QueryMeta, error) {
	d := makeByteDecoder(data)

	v, err := d.Uvarint()
	if err != nil {
		return nil, QueryMeta{}, dataErrf(data, d.Off(), err, "invalid record: bad flags")
	}
	flags := queryFlags(v)
	if (flags &^ qfSupportedMask) != 0 {
		return nil, QueryMeta{}, dataErrf(data, d.Off(), nil, "invalid record: unsupported flags %x", v)
	}
	if flags&qfVerMask != qfVer1 {
		return nil, QueryMeta{}, dataErrf(data, d.Off(), nil, "invalid record: unsupported format version")
	}

	modCount, err := d.Uvarint()
	if err != nil {
		return nil, QueryMeta{}, dataErrf(data, d.Off(), err, "invalid record: bad mod count")
	}
	metaSize, err := d.Uvarinti()
	if err != nil {
		return nil, QueryMeta{}, dataErrf(data, d.Off(), err, "invalid record: bad meta size")
	}
	bodySize, err := d.Uvarinti()
	if err != nil {
		return nil, QueryMeta{}, dataErrf(data, d.Off(), err, "invalid record: bad body size")
	}

	metaBytes, err := d.Raw(metaSize)
	if err != nil {
		return nil, QueryMeta{}, err
	}
	var qm queryMeta
	if err := msgpack.Unmarshal(metaBytes, &qm); err != nil {
		return nil, QueryMeta{}, dataErrf(data, d.Off(), err, "invalid record: bad meta")
	}

	body, err := d.Raw(bodySize)
	if err != nil {
		return nil, QueryMeta{}, err
	}
	if len(d.Buf) != 0 {
		return nil, QueryMeta{}, dataErrf(data, d.Off(), nil, "invalid record: %d trailing bytes", len(d.Buf))
	}

	var wire []byte
	if flags&qfSnappy != 0 {
		wire, err = snappy.Decode(nil, body)
		if err != nil {
			return nil, QueryMeta{}, dataErrf(data, d.Off(), err, "invalid record: bad compressed body")
		}
	} else {
		wire = make([]byte, len(body))
		copy(wire, body)
	}
	if len(wire) != qm.RawSize {
		return nil, QueryMeta{}, dataErrf(data, d.Off(), nil, "invalid record: got %d body bytes, meta says %d", len(wire), qm.RawSize)
	}

	meta := QueryMeta{
		SavedAt:  time.UnixMicro(qm.SavedAtMicros).UTC(),
		RawSize:  qm.RawSize,
		ModCount: modCount,
	}
	return wire, meta, nil
}
