// Package shortvec implements the compact-u16 length prefix used by
// the Solana transaction wire format.
package shortvec

import (
	"fmt"
	"io"
	"math"
)

// EncodeLen writes val to w as a compact-u16. Values larger than
// math.MaxUint16 are rejected.
func EncodeLen(w io.Writer, val int) (int, error) {
	if val > math.MaxUint16 {
		return 0, fmt.Errorf("value %d does not fit in a compact-u16", val)
	}

	var buf [3]byte
	n := 0
	for {
		b := byte(val & 0x7f)
		val >>= 7
		if val != 0 {
			b |= 0x80
		}

		buf[n] = b
		n++

		if val == 0 {
			return w.Write(buf[:n])
		}
	}
}

// DecodeLen reads a compact-u16 from r.
func DecodeLen(r io.Reader) (int, error) {
	var (
		val int
		b   [1]byte
	)
	for shift := 0; ; shift += 7 {
		if shift > 14 {
			return 0, fmt.Errorf("compact-u16 is longer than 3 bytes")
		}

		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}

		val |= int(b[0]&0x7f) << shift
		if b[0]&0x80 == 0 {
			return val, nil
		}
	}
}
