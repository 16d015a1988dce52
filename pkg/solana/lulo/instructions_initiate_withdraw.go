package lulo

import (
	"crypto/ed25519"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
)

var InitiateWithdrawInstructionDiscriminator = instructionDiscriminator("initiate_withdraw")

const (
	InitiateWithdrawInstructionArgsSize = (8 + // withdraw_amount
		1 + // withdraw_all
		1) // return_type: None
)

type InitiateWithdrawInstructionArgs struct {
	Amount      uint64
	WithdrawAll bool
}

type InitiateWithdrawInstructionAccounts struct {
	Owner             ed25519.PublicKey
	FeePayer          ed25519.PublicKey
	OwnerTokenAccount ed25519.PublicKey
	UserAccount       ed25519.PublicKey
	UserTokenAccount  ed25519.PublicKey
	Mint              ed25519.PublicKey
	PromotionReserve  ed25519.PublicKey
}

// NewInitiateWithdrawInstruction records a withdrawal request with the
// router. Settlement is asynchronous: the underlying protocols release funds
// on their own schedule, and a later crank completes the withdrawal into the
// owner's token account.
func NewInitiateWithdrawInstruction(
	accounts *InitiateWithdrawInstructionAccounts,
	args *InitiateWithdrawInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte,
		len(InitiateWithdrawInstructionDiscriminator)+
			InitiateWithdrawInstructionArgsSize)

	putDiscriminator(data, InitiateWithdrawInstructionDiscriminator, &offset)
	putUint64(data, args.Amount, &offset)
	putBool(data, args.WithdrawAll, &offset)
	putNone(data, &offset) // return_type

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
				PublicKey:  accounts.FeePayer,
				IsWritable: true,
				IsSigner:   true,
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
				PublicKey:  accounts.PromotionReserve,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SPL_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
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
