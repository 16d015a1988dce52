package lulo

import (
	"crypto/ed25519"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
)

var (
	UserAccountPrefix = []byte("flexlend")
)

type GetUserAccountAddressArgs struct {
	Owner ed25519.PublicKey
}

// GetUserAccountAddress derives the Flexlend user account for an owner. The
// owner is whichever authority deposits through the router, so for vault
// flows it is the vault address, not the end user.
func GetUserAccountAddress(args *GetUserAccountAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		UserAccountPrefix,
		args.Owner,
	)
}
