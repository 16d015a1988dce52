package vault

import (
	"crypto/ed25519"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
)

var LuloDepositInstructionDiscriminator = instructionDiscriminator("lulo_deposit")

const (
	LuloDepositInstructionArgsSize = 8 // amount
)

type LuloDepositInstructionArgs struct {
	Amount uint64
}

type LuloDepositInstructionAccounts struct {
	Owner                ed25519.PublicKey
	Vault                ed25519.PublicKey
	VaultTokenAccount    ed25519.PublicKey
	Mint                 ed25519.PublicKey
	LuloUserAccount      ed25519.PublicKey
	LuloUserTokenAccount ed25519.PublicKey
	LuloPromotionReserve ed25519.PublicKey
}

// NewLuloDepositInstruction allocates amount from custody into the lending
// aggregator. The vault is the aggregator-side owner and signs the inner call
// with its seeds; the end user's owner key only pays fees.
func NewLuloDepositInstruction(
	accounts *LuloDepositInstructionAccounts,
	args *LuloDepositInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte,
		len(LuloDepositInstructionDiscriminator)+
			LuloDepositInstructionArgsSize)

	putDiscriminator(data, LuloDepositInstructionDiscriminator, &offset)
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
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.VaultTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Mint,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.LuloUserAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.LuloUserTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.LuloPromotionReserve,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  LULO_PROGRAM_ID,
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
			{
				PublicKey:  SYSVAR_RENT_PUBKEY,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}
