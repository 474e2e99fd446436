package datamover

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/nspcc-dev/neofs-dataset/pkg/core/kv"
	"github.com/zeebo/blake3"
	"go.uber.org/zap"
)

// ErrCorruptedArchive is returned by Deserialize when the archive is
// malformed or its trailer does not match the records.
var ErrCorruptedArchive = errors.New("corrupted archive")

// Magic starts each archive.
const Magic = "NFSDSET1"

// FlagZstd marks zstd-compressed archive body.
const FlagZstd = 1 << 0

const headerSize = len(Magic) + 1

// item is a unit of the archive body: either a record or the trailer.
type item struct {
	Record  *kv.Record `cbor:"1,keyasint,omitempty"`
	Trailer *trailer   `cbor:"2,keyasint,omitempty"`
}

type trailer struct {
	Count  uint64 `cbor:"1,keyasint"`
	Digest []byte `cbor:"2,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	// same records are always encoded to the same bytes, so archives of
	// equal containers have equal digests
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("datamover: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("datamover: CBOR decoder initialization failed: " + err.Error())
	}
}

// Serialize writes all records of the src container to w. Returns number of
// written records.
func Serialize(src kv.ContainerOpener, w io.Writer, opts ...Option) (n int, err error) {
	c := newCfg(opts)

	d, err := openDumper(src)
	if err != nil {
		return 0, err
	}
	defer closeContainer(d, &err)

	var flags byte
	if c.compress {
		flags |= FlagZstd
	}

	if _, err = w.Write(append([]byte(Magic), flags)); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	var (
		body  io.Writer
		zw    *zstd.Encoder
		bw    = bufio.NewWriter(w)
		hash  = blake3.New()
		count uint64
	)

	body = bw
	if c.compress {
		zw, err = zstd.NewWriter(bw)
		if err != nil {
			return 0, fmt.Errorf("init zstd encoder: %w", err)
		}
		body = zw
	}

	err = d.Iterate(func(rec kv.Record) error {
		b, err := encMode.Marshal(item{Record: &rec})
		if err != nil {
			return fmt.Errorf("encode record: %w", err)
		}

		_, _ = hash.Write(b)
		if _, err := body.Write(b); err != nil {
			return fmt.Errorf("write record: %w", err)
		}

		count++
		c.progress(int(count))

		return nil
	})
	if err == nil {
		err = encMode.NewEncoder(body).Encode(item{Trailer: &trailer{Count: count, Digest: hash.Sum(nil)}})
		if err != nil {
			err = fmt.Errorf("write trailer: %w", err)
		}
	}

	if zw != nil {
		if cErr := zw.Close(); err == nil && cErr != nil {
			err = fmt.Errorf("finish zstd stream: %w", cErr)
		}
	}

	if err == nil {
		if err = bw.Flush(); err != nil {
			err = fmt.Errorf("flush archive: %w", err)
		}
	}

	if err != nil {
		c.log.Error("container serialization failed", zap.Uint64("records", count), zap.Error(err))
		return int(count), err
	}

	c.log.Info("container serialized",
		zap.Uint64("records", count),
		zap.Bool("compressed", c.compress),
	)

	return int(count), nil
}

func corrupted(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptedArchive, fmt.Sprintf(format, args...))
}

// Deserialize restores records read from r to the dst container. Returns
// number of restored records.
//
// Records are restored while being read, so the container may hold part of
// the records when ErrCorruptedArchive is returned.
func Deserialize(r io.Reader, dst kv.ContainerOpener, opts ...Option) (n int, err error) {
	c := newCfg(opts)

	br := bufio.NewReader(r)

	hdr := make([]byte, headerSize)
	if _, err = io.ReadFull(br, hdr); err != nil {
		return 0, corrupted("read header: %v", err)
	}

	if !bytes.Equal(hdr[:len(Magic)], []byte(Magic)) {
		return 0, corrupted("invalid magic %q", hdr[:len(Magic)])
	}

	flags := hdr[len(Magic)]
	if flags&^FlagZstd != 0 {
		return 0, corrupted("unknown flags %#x", flags)
	}

	rs, err := openRestorer(dst)
	if err != nil {
		return 0, err
	}
	defer closeContainer(rs, &err)

	var body io.Reader = br
	if flags&FlagZstd != 0 {
		zr, err := zstd.NewReader(br)
		if err != nil {
			return 0, fmt.Errorf("init zstd decoder: %w", err)
		}
		defer zr.Close()

		body = zr
	}

	var (
		dec  = decMode.NewDecoder(body)
		hash = blake3.New()
		tr   *trailer
	)

	for tr == nil {
		var raw cbor.RawMessage

		if err = dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return n, corrupted("missing trailer after %d records", n)
			}
			return n, corrupted("decode item #%d: %v", n, err)
		}

		var it item
		if err = decMode.Unmarshal(raw, &it); err != nil {
			return n, corrupted("decode item #%d: %v", n, err)
		}

		switch {
		case it.Record != nil && it.Trailer == nil:
			_, _ = hash.Write(raw)

			if err = rs.Restore(*it.Record); err != nil {
				return n, fmt.Errorf("restore record #%d: %w", n, err)
			}

			n++
			c.progress(n)
		case it.Trailer != nil && it.Record == nil:
			tr = it.Trailer
		default:
			return n, corrupted("invalid item #%d", n)
		}
	}

	if tr.Count != uint64(n) {
		return n, corrupted("trailer count %d, read %d records", tr.Count, n)
	}

	if !bytes.Equal(tr.Digest, hash.Sum(nil)) {
		return n, corrupted("digest mismatch")
	}

	var extra cbor.RawMessage
	if err = dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return n, corrupted("data after trailer")
	}

	c.log.Info("container deserialized", zap.Int("records", n))

	return n, nil
}
