package vault

import (
	"crypto/ed25519"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
)

var InitVaultInstructionDiscriminator = instructionDiscriminator("init_vault")

type InitVaultInstructionAccounts struct {
	Owner ed25519.PublicKey
	Mint  ed25519.PublicKey
	Vault ed25519.PublicKey
}

// NewInitVaultInstruction creates the vault record for an (owner, mint)
// pair. The owner both signs and pays rent. Fails if the vault already
// exists; the derivation guarantees at most one per pair.
func NewInitVaultInstruction(
	accounts *InitVaultInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, len(InitVaultInstructionDiscriminator))
	putDiscriminator(data, InitVaultInstructionDiscriminator, &offset)

	return solana.Instruction{
		Program: PROGRAM_ID,

		Data: data,

		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Owner,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Mint,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Vault,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}
