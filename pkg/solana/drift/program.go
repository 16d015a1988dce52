package drift

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("dRiftyHA39MWEi3m9aunc5MzRF1JYuBsbn6VPcn33UH")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

// DefaultSubAccountId is the venue sub-account used when an authority has
// only one position.
const DefaultSubAccountId uint16 = 0

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
