package vault

import (
	"crypto/ed25519"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
)

var WithdrawVaultInstructionDiscriminator = instructionDiscriminator("withdraw_vault")

const (
	WithdrawVaultInstructionArgsSize = 8 // amount
)

type WithdrawVaultInstructionArgs struct {
	Amount uint64
}

type WithdrawVaultInstructionAccounts struct {
	Owner             ed25519.PublicKey
	Vault             ed25519.PublicKey
	Mint              ed25519.PublicKey
	OwnerTokenAccount ed25519.PublicKey
	VaultTokenAccount ed25519.PublicKey
}

// NewWithdrawVaultInstruction moves amount from custody back to the owner's
// token account, with the vault signing through its seeds. Only liquid
// custody balance is withdrawable; funds parked externally must be recalled
// first.
func NewWithdrawVaultInstruction(
	accounts *WithdrawVaultInstructionAccounts,
	args *WithdrawVaultInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte,
		len(WithdrawVaultInstructionDiscriminator)+
			WithdrawVaultInstructionArgsSize)

	putDiscriminator(data, WithdrawVaultInstructionDiscriminator, &offset)
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
