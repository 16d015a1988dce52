package vault

import (
	"crypto/ed25519"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
)

var DepositVaultInstructionDiscriminator = instructionDiscriminator("deposit_vault")

const (
	DepositVaultInstructionArgsSize = 8 // amount
)

type DepositVaultInstructionArgs struct {
	Amount uint64
}

type DepositVaultInstructionAccounts struct {
	Owner             ed25519.PublicKey
	Vault             ed25519.PublicKey
	Mint              ed25519.PublicKey
	OwnerTokenAccount ed25519.PublicKey
	VaultTokenAccount ed25519.PublicKey
}

// NewDepositVaultInstruction moves amount from the owner's token account
// into the vault's custody account. The custody account is created on first
// deposit if missing.
func NewDepositVaultInstruction(
	accounts *DepositVaultInstructionAccounts,
	args *DepositVaultInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte,
		len(DepositVaultInstructionDiscriminator)+
			DepositVaultInstructionArgsSize)

	putDiscriminator(data, DepositVaultInstructionDiscriminator, &offset)
	putUint64(data, args.Amount, &offset)

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
				PublicKey:  accounts.Vault,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Mint,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.OwnerTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.VaultTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SPL_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SPL_ASSOCIATED_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}
