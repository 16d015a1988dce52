package vault

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

const VaultAccountSize = (8 + // discriminator
	1 + // bump
	7 + // padding
	32 + // owner
	32) // mint

var VaultAccountDiscriminator = accountDiscriminator("Vault")

// VaultAccount is the per-(owner, mint) record created by InitVault. The
// vault address signs for the custody token account and for all outbound
// calls into the lending router, using the stored bump.
type VaultAccount struct {
	Bump  uint8
	Owner ed25519.PublicKey
	Mint  ed25519.PublicKey
}

// SignerSeeds returns the seed set the program signs with on behalf of the
// vault. Must match the derivation in GetVaultAddress.
func (obj *VaultAccount) SignerSeeds() [][]byte {
	return [][]byte{
		VaultPrefix,
		obj.Mint,
		obj.Owner,
		{obj.Bump},
	}
}

func (obj *VaultAccount) Marshal() []byte {
	data := make([]byte, VaultAccountSize)

	var offset int
	putDiscriminator(data, VaultAccountDiscriminator, &offset)
	putUint8(data, obj.Bump, &offset)
	offset += 7 // padding
	putKey(data, obj.Owner, &offset)
	putKey(data, obj.Mint, &offset)

	return data
}

func (obj *VaultAccount) Unmarshal(data []byte) error {
	if len(data) < VaultAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, VaultAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	getUint8(data, &obj.Bump, &offset)
	offset += 7 // padding
	getKey(data, &obj.Owner, &offset)
	getKey(data, &obj.Mint, &offset)

	return nil
}

func (obj *VaultAccount) String() string {
	return fmt.Sprintf(
		"Vault{bump=%d,owner=%s,mint=%s}",
		obj.Bump,
		base58.Encode(obj.Owner),
		base58.Encode(obj.Mint),
	)
}
