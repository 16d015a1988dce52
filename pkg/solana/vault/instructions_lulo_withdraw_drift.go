package vault

import (
	"crypto/ed25519"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
)

var LuloWithdrawDriftInstructionDiscriminator = instructionDiscriminator("lulo_withdraw_drift")

const (
	LuloWithdrawDriftInstructionArgsSize = 8 // amount
)

type LuloWithdrawDriftInstructionArgs struct {
	Amount uint64
}

type LuloWithdrawDriftInstructionAccounts struct {
	Owner                ed25519.PublicKey
	Vault                ed25519.PublicKey
	VaultTokenAccount    ed25519.PublicKey
	Mint                 ed25519.PublicKey
	LuloUserAccount      ed25519.PublicKey
	LuloUserTokenAccount ed25519.PublicKey
	LuloPromotionReserve ed25519.PublicKey

	// Appended after the fixed set, in this order, then oracles and spot
	// markets in matching order.
	DriftUser       ed25519.PublicKey
	DriftUserStats  ed25519.PublicKey
	DriftState      ed25519.PublicKey
	DriftSigner     ed25519.PublicKey
	SpotMarketVault ed25519.PublicKey

	Oracles     []ed25519.PublicKey
	SpotMarkets []ed25519.PublicKey
}

// NewLuloWithdrawDriftInstruction pulls amount out of the Drift spot market
// back into the aggregator position. The venue revalues the whole account on
// exit, so this path burns well past the default compute budget; callers
// should prepend a SetComputeUnitLimit instruction.
func NewLuloWithdrawDriftInstruction(
	accounts *LuloWithdrawDriftInstructionAccounts,
	args *LuloWithdrawDriftInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte,
		len(LuloWithdrawDriftInstructionDiscriminator)+
			LuloWithdrawDriftInstructionArgsSize)

	putDiscriminator(data, LuloWithdrawDriftInstructionDiscriminator, &offset)
	putUint64(data, args.Amount, &offset)

	metas := []solana.AccountMeta{
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
			PublicKey:  accounts.DriftSigner,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.SpotMarketVault,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  DRIFT_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
	}

	for _, oracle := range accounts.Oracles {
		metas = append(metas, solana.AccountMeta{
			PublicKey:  oracle,
			IsWritable: false,
			IsSigner:   false,
		})
	}
	for _, spotMarket := range accounts.SpotMarkets {
		metas = append(metas, solana.AccountMeta{
			PublicKey:  spotMarket,
			IsWritable: true,
			IsSigner:   false,
		})
	}

	return solana.Instruction{
		Program: PROGRAM_ID,

		Data: data,

		Accounts: metas,
	}
}
