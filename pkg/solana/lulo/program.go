package lulo

import (
	"crypto/ed25519"
	"crypto/sha256"
	"errors"

	"github.com/mr-tron/base58"
)

var (
	ErrInvalidProgram         = errors.New("invalid program id")
	ErrInvalidAccountData     = errors.New("unexpected account data")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
)

var (
	// The Flexlend lending router.
	PROGRAM_ADDRESS = mustBase58Decode("FL3X2pRsQ9zHENpZSKDRREtccwJuei8yg9fwDu9UN69Q")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)

	// Promotion reserve account required by the protocol on deposit and
	// withdraw flows.
	PROMOTION_RESERVE_ADDRESS = mustBase58Decode("4NCKkwUCBRcu7TGxDaEZ6Uw6TvzdDbnvSuYbXLzrLnzv")
	PROMOTION_RESERVE_ID      = ed25519.PublicKey(PROMOTION_RESERVE_ADDRESS)
)

var (
	SYSTEM_PROGRAM_ID               = ed25519.PublicKey(mustBase58Decode("11111111111111111111111111111111"))
	SPL_TOKEN_PROGRAM_ID            = ed25519.PublicKey(mustBase58Decode("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"))
	SPL_ASSOCIATED_TOKEN_PROGRAM_ID = ed25519.PublicKey(mustBase58Decode("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"))

	SYSVAR_RENT_PUBKEY = ed25519.PublicKey(mustBase58Decode("SysvarRent111111111111111111111111111111111"))
)

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}

// instructionDiscriminator computes the 8-byte Anchor discriminator for a
// global instruction name.
func instructionDiscriminator(name string) []byte {
	h := sha256.Sum256([]byte("global:" + name))
	return h[:8]
}

// accountDiscriminator computes the 8-byte Anchor discriminator for an
// account type name.
func accountDiscriminator(name string) []byte {
	h := sha256.Sum256([]byte("account:" + name))
	return h[:8]
}
