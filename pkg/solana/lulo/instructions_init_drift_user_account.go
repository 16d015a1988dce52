package lulo

import (
	"crypto/ed25519"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
)

var InitDriftUserAccountInstructionDiscriminator = instructionDiscriminator("init_drift_user_account")

type InitDriftUserAccountInstructionAccounts struct {
	Signer           ed25519.PublicKey
	Owner            ed25519.PublicKey
	DriftUser        ed25519.PublicKey
	DriftUserStats   ed25519.PublicKey
	DriftState       ed25519.PublicKey
	UserAccount      ed25519.PublicKey
	PromotionReserve ed25519.PublicKey
	FeePayer         ed25519.PublicKey
	DriftProgram     ed25519.PublicKey
}

// NewInitDriftUserAccountInstruction opens the venue-side user and user-stats
// accounts for a router owner that has not routed to Drift before.
func NewInitDriftUserAccountInstruction(
	accounts *InitDriftUserAccountInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, len(InitDriftUserAccountInstructionDiscriminator))
	putDiscriminator(data, InitDriftUserAccountInstructionDiscriminator, &offset)

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
				PublicKey:  accounts.UserAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.PromotionReserve,
				IsWritable: true,
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
				PublicKey:  SYSVAR_RENT_PUBKEY,
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
