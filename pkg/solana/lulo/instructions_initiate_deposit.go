package lulo

import (
	"crypto/ed25519"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
)

var InitiateDepositInstructionDiscriminator = instructionDiscriminator("initiate_deposit")

const (
	InitiateDepositInstructionArgsSize = (8 + // amount
		1 + // allowed_protocols: None
		1 + // end_date: None
		1) // return_type: None
)

type InitiateDepositInstructionArgs struct {
	Amount uint64
}

type InitiateDepositInstructionAccounts struct {
	Owner             ed25519.PublicKey
	FeePayer          ed25519.PublicKey
	OwnerTokenAccount ed25519.PublicKey
	UserAccount       ed25519.PublicKey
	UserTokenAccount  ed25519.PublicKey
	Mint              ed25519.PublicKey
	PromotionReserve  ed25519.PublicKey
}

// NewInitiateDepositInstruction routes a deposit from the owner's token
// account into the router's position. The owner signs; for vault flows it is
// the vault PDA signing through the calling program.
func NewInitiateDepositInstruction(
	accounts *InitiateDepositInstructionAccounts,
	args *InitiateDepositInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte,
		len(InitiateDepositInstructionDiscriminator)+
			InitiateDepositInstructionArgsSize)

	putDiscriminator(data, InitiateDepositInstructionDiscriminator, &offset)
	putUint64(data, args.Amount, &offset)
	putNone(data, &offset) // allowed_protocols
	putNone(data, &offset) // end_date
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
