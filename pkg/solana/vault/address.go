package vault

import (
	"crypto/ed25519"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
	"github.com/gabrielkoerich/lulo-vault/pkg/solana/token"
)

var (
	VaultPrefix = []byte("vault")
)

type GetVaultAddressArgs struct {
	Mint  ed25519.PublicKey
	Owner ed25519.PublicKey
}

// GetVaultAddress derives the vault for an (owner, mint) pair. One vault
// exists per pair; the derivation is what enforces that.
func GetVaultAddress(args *GetVaultAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		VaultPrefix,
		args.Mint,
		args.Owner,
	)
}

// GetCustodyAddress derives the vault's custody token account, which is the
// vault's associated token account for its mint.
func GetCustodyAddress(args *GetVaultAddressArgs) (ed25519.PublicKey, error) {
	vaultAddress, _, err := GetVaultAddress(args)
	if err != nil {
		return nil, err
	}
	return token.GetAssociatedAccount(vaultAddress, args.Mint)
}
