package vault

import (
	"crypto/ed25519"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
)

var LuloWithdrawInstructionDiscriminator = instructionDiscriminator("lulo_withdraw")

const (
	LuloWithdrawInstructionArgsSize = 8 // amount
)

type LuloWithdrawInstructionArgs struct {
	Amount uint64
}

type LuloWithdrawInstructionAccounts struct {
	Owner                ed25519.PublicKey
	Vault                ed25519.PublicKey
	VaultTokenAccount    ed25519.PublicKey
	Mint                 ed25519.PublicKey
	LuloUserAccount      ed25519.PublicKey
	LuloUserTokenAccount ed25519.PublicKey
	LuloPromotionReserve ed25519.PublicKey
}

// NewLuloWithdrawInstruction requests amount back from the lending
// aggregator. Settlement is asynchronous; success here means the request was
// recorded, not that funds moved. A later aggregator crank lands them in the
// vault's aggregator-side token account.
func NewLuloWithdrawInstruction(
	accounts *LuloWithdrawInstructionAccounts,
	args *LuloWithdrawInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte,
		len(LuloWithdrawInstructionDiscriminator)+
			LuloWithdrawInstructionArgsSize)

	putDiscriminator(data, LuloWithdrawInstructionDiscriminator, &offset)
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
		},
	}
}
