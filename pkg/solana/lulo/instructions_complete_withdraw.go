package lulo

import (
	"crypto/ed25519"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
)

var CompleteWithdrawInstructionDiscriminator = instructionDiscriminator("complete_withdraw")

type CompleteWithdrawInstructionAccounts struct {
	Cranker           ed25519.PublicKey
	Owner             ed25519.PublicKey
	OwnerTokenAccount ed25519.PublicKey
	UserAccount       ed25519.PublicKey
	UserTokenAccount  ed25519.PublicKey
	Mint              ed25519.PublicKey
}

// NewCompleteWithdrawInstruction settles a previously requested withdrawal,
// moving the released funds from the router's position back into the owner's
// token account. Permissionless: any cranker can complete a matured request.
func NewCompleteWithdrawInstruction(
	accounts *CompleteWithdrawInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, len(CompleteWithdrawInstructionDiscriminator))
	putDiscriminator(data, CompleteWithdrawInstructionDiscriminator, &offset)

	return solana.Instruction{
		Program: PROGRAM_ID,

		Data: data,

		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Cranker,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Owner,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.OwnerTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.UserAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.UserTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Mint,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SPL_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}
