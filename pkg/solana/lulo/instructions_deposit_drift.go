package lulo

import (
	"crypto/ed25519"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
)

var DepositDriftInstructionDiscriminator = instructionDiscriminator("deposit_drift")

const (
	DepositDriftInstructionArgsSize = (2 + // market_index
		8 + // amount
		1 + // reduce_only
		1) // user_initialized
)

type DepositDriftInstructionArgs struct {
	MarketIndex     uint16
	Amount          uint64
	ReduceOnly      bool
	UserInitialized bool
}

type DepositDriftInstructionAccounts struct {
	Signer           ed25519.PublicKey
	Owner            ed25519.PublicKey
	DriftUser        ed25519.PublicKey
	DriftUserStats   ed25519.PublicKey
	DriftState       ed25519.PublicKey
	SpotMarketVault  ed25519.PublicKey
	UserAccount      ed25519.PublicKey
	UserTokenAccount ed25519.PublicKey
	Mint             ed25519.PublicKey
	SpotMarket       ed25519.PublicKey
	Oracle           ed25519.PublicKey
	FeePayer         ed25519.PublicKey
	DriftProgram     ed25519.PublicKey
}

// NewDepositDriftInstruction routes funds from the router position straight
// into the Drift spot market, bypassing the router's own allocation logic.
func NewDepositDriftInstruction(
	accounts *DepositDriftInstructionAccounts,
	args *DepositDriftInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte,
		len(DepositDriftInstructionDiscriminator)+
			DepositDriftInstructionArgsSize)

	putDiscriminator(data, DepositDriftInstructionDiscriminator, &offset)
	putUint16(data, args.MarketIndex, &offset)
	putUint64(data, args.Amount, &offset)
	putBool(data, args.ReduceOnly, &offset)
	putBool(data, args.UserInitialized, &offset)

	return solana.Instruction{
		Program: PROGRAM_ID,

		Data: data,

		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Signer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Owner,
				IsWritable: true,
				IsSigner:   true,
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
				PublicKey:  accounts.FeePayer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.DriftProgram,
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
		},
	}
}
