package shortvec

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortVec_RoundTrip(t *testing.T) {
	for val := 0; val <= math.MaxUint16; val++ {
		buf := &bytes.Buffer{}
		_, err := EncodeLen(buf, val)
		require.NoError(t, err)

		decoded, err := DecodeLen(buf)
		require.NoError(t, err)
		require.Equal(t, val, decoded)
	}
}

func TestShortVec_CrossImpl(t *testing.T) {
	for _, tc := range []struct {
		val     int
		encoded []byte
	}{
		{0x0, []byte{0x0}},
		{0x7f, []byte{0x7f}},
		{0x80, []byte{0x80, 0x01}},
		{0xff, []byte{0xff, 0x01}},
		{0x100, []byte{0x80, 0x02}},
		{0x7fff, []byte{0xff, 0xff, 0x01}},
		{0xffff, []byte{0xff, 0xff, 0x03}},
	} {
		buf := &bytes.Buffer{}
		n, err := EncodeLen(buf, tc.val)
		require.NoError(t, err)
		assert.Equal(t, len(tc.encoded), n)
		assert.Equal(t, tc.encoded, buf.Bytes())

		decoded, err := DecodeLen(bytes.NewReader(tc.encoded))
		require.NoError(t, err)
		assert.Equal(t, tc.val, decoded)
	}
}

func TestShortVec_Invalid(t *testing.T) {
	_, err := EncodeLen(&bytes.Buffer{}, math.MaxUint16+1)
	require.Error(t, err)

	// Continuation bit set on the third byte.
	_, err = DecodeLen(bytes.NewReader([]byte{0xff, 0xff, 0xff, 0x03}))
	require.Error(t, err)

	// Truncated input.
	_, err = DecodeLen(bytes.NewReader([]byte{0x80}))
	require.Error(t, err)
}
