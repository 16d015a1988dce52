package vault

import (
	"crypto/ed25519"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
)

var LuloDepositDriftInstructionDiscriminator = instructionDiscriminator("lulo_deposit_drift")

const (
	LuloDepositDriftInstructionArgsSize = 8 // amount
)

type LuloDepositDriftInstructionArgs struct {
	Amount uint64
}

type LuloDepositDriftInstructionAccounts struct {
	Owner                ed25519.PublicKey
	Vault                ed25519.PublicKey
	VaultTokenAccount    ed25519.PublicKey
	Mint                 ed25519.PublicKey
	LuloUserAccount      ed25519.PublicKey
	LuloUserTokenAccount ed25519.PublicKey
	LuloPromotionReserve ed25519.PublicKey

	// Appended after the fixed set, in this order.
	DriftUser       ed25519.PublicKey
	DriftUserStats  ed25519.PublicKey
	DriftState      ed25519.PublicKey
	SpotMarketVault ed25519.PublicKey
	SpotMarket      ed25519.PublicKey
	Oracle          ed25519.PublicKey
}

// NewLuloDepositDriftInstruction routes amount from the aggregator position
// straight into the Drift spot market. The venue user account is initialized
// on the fly when it does not exist yet, so first-time callers need no
// separate setup transaction.
func NewLuloDepositDriftInstruction(
	accounts *LuloDepositDriftInstructionAccounts,
	args *LuloDepositDriftInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte,
		len(LuloDepositDriftInstructionDiscriminator)+
			LuloDepositDriftInstructionArgsSize)

	putDiscriminator(data, LuloDepositDriftInstructionDiscriminator, &offset)
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
			{
				PublicKey:  accounts.DriftUser,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.DriftUserStats,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.DriftState,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.SpotMarketVault,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.SpotMarket,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Oracle,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  DRIFT_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}
