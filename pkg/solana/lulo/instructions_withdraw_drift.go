package lulo

import (
	"crypto/ed25519"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
)

var WithdrawDriftInstructionDiscriminator = instructionDiscriminator("withdraw_drift")

const (
	WithdrawDriftInstructionArgsSize = (2 + // market_index
		8 + // amount
		1 + // reduce_only
		1) // withdraw_all
)

type WithdrawDriftInstructionArgs struct {
	MarketIndex uint16
	Amount      uint64
	ReduceOnly  bool
	WithdrawAll bool
}

type WithdrawDriftInstructionAccounts struct {
	Signer           ed25519.PublicKey
	Owner            ed25519.PublicKey
	DriftUser        ed25519.PublicKey
	DriftUserStats   ed25519.PublicKey
	DriftState       ed25519.PublicKey
	DriftSigner      ed25519.PublicKey
	SpotMarketVault  ed25519.PublicKey
	UserAccount      ed25519.PublicKey
	UserTokenAccount ed25519.PublicKey
	Mint             ed25519.PublicKey
	FeePayer         ed25519.PublicKey
	DriftProgram     ed25519.PublicKey

	// Oracles then spot markets, one pair per market the user has exposure
	// to. Drift re-values the whole account on withdraw, so every market must
	// be supplied.
	Oracles     []ed25519.PublicKey
	SpotMarkets []ed25519.PublicKey
}

// NewWithdrawDriftInstruction pulls funds out of the Drift spot market back
// into the router position's token account. Heavier than the deposit path:
// the venue revalues every supplied market against its oracle.
func NewWithdrawDriftInstruction(
	accounts *WithdrawDriftInstructionAccounts,
	args *WithdrawDriftInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte,
		len(WithdrawDriftInstructionDiscriminator)+
			WithdrawDriftInstructionArgsSize)

	putDiscriminator(data, WithdrawDriftInstructionDiscriminator, &offset)
	putUint16(data, args.MarketIndex, &offset)
	putUint64(data, args.Amount, &offset)
	putBool(data, args.ReduceOnly, &offset)
	putBool(data, args.WithdrawAll, &offset)

	metas := []solana.AccountMeta{
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
			PublicKey:  SPL_ASSOCIATED_TOKEN_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  SYSTEM_PROGRAM_ID,
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
