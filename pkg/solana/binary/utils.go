// Package binary has helpers for reading and writing the fixed layout
// account structures used by on chain programs. Each helper advances
// the caller's offset by the number of bytes it consumed.
package binary

import (
	"crypto/ed25519"
	"encoding/binary"
)

func PutKey32(dst []byte, src []byte, offset *int) {
	copy(dst[:ed25519.PublicKeySize], src)
	*offset += ed25519.PublicKeySize
}

func GetKey32(src []byte, dst *ed25519.PublicKey, offset *int) {
	*dst = append(ed25519.PublicKey(nil), src[:ed25519.PublicKeySize]...)
	*offset += ed25519.PublicKeySize
}

// PutOptionalKey32 writes a COption<Pubkey>, spending optionSize bytes
// on the discriminant. A nil key encodes as None.
func PutOptionalKey32(dst []byte, src []byte, offset *int, optionSize int) {
	if len(src) != 0 {
		dst[0] = 1
		copy(dst[optionSize:], src)
	}
	*offset += optionSize + ed25519.PublicKeySize
}

func GetOptionalKey32(src []byte, dst *ed25519.PublicKey, offset *int, optionSize int) {
	if src[0] != 0 {
		*dst = append(ed25519.PublicKey(nil), src[optionSize:optionSize+ed25519.PublicKeySize]...)
	}
	*offset += optionSize + ed25519.PublicKeySize
}

func PutUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst, v)
	*offset += 8
}

func GetUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.LittleEndian.Uint64(src)
	*offset += 8
}

func PutOptionalUint64(dst []byte, v *uint64, offset *int, optionSize int) {
	if v != nil {
		dst[0] = 1
		binary.LittleEndian.PutUint64(dst[optionSize:], *v)
	}
	*offset += optionSize + 8
}

func GetOptionalUint64(src []byte, dst **uint64, offset *int, optionSize int) {
	if src[0] != 0 {
		v := binary.LittleEndian.Uint64(src[optionSize:])
		*dst = &v
	}
	*offset += optionSize + 8
}
