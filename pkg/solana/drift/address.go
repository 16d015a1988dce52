package drift

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
)

var (
	statePrefix           = []byte("drift_state")
	signerPrefix          = []byte("drift_signer")
	userPrefix            = []byte("user")
	userStatsPrefix       = []byte("user_stats")
	spotMarketPrefix      = []byte("spot_market")
	spotMarketVaultPrefix = []byte("spot_market_vault")
)

// GetStateAddress derives the venue's global state account.
func GetStateAddress() (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		statePrefix,
	)
}

// GetSignerAddress derives the venue's own signing authority, which owns the
// spot market vaults.
func GetSignerAddress() (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		signerPrefix,
	)
}

type GetUserAddressArgs struct {
	Authority    ed25519.PublicKey
	SubAccountId uint16
}

// GetUserAddress derives the per-authority user account holding venue
// positions for one sub-account.
func GetUserAddress(args *GetUserAddressArgs) (ed25519.PublicKey, uint8, error) {
	subAccountId := make([]byte, 2)
	binary.LittleEndian.PutUint16(subAccountId, args.SubAccountId)

	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		userPrefix,
		args.Authority,
		subAccountId,
	)
}

type GetUserStatsAddressArgs struct {
	Authority ed25519.PublicKey
}

// GetUserStatsAddress derives the per-authority stats account, shared by all
// of the authority's sub-accounts.
func GetUserStatsAddress(args *GetUserStatsAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		userStatsPrefix,
		args.Authority,
	)
}

type GetSpotMarketAddressArgs struct {
	MarketIndex uint16
}

// GetSpotMarketAddress derives a spot market's metadata account.
func GetSpotMarketAddress(args *GetSpotMarketAddressArgs) (ed25519.PublicKey, uint8, error) {
	marketIndex := make([]byte, 2)
	binary.LittleEndian.PutUint16(marketIndex, args.MarketIndex)

	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		spotMarketPrefix,
		marketIndex,
	)
}

type GetSpotMarketVaultAddressArgs struct {
	MarketIndex uint16
}

// GetSpotMarketVaultAddress derives the token vault backing a spot market.
func GetSpotMarketVaultAddress(args *GetSpotMarketVaultAddressArgs) (ed25519.PublicKey, uint8, error) {
	marketIndex := make([]byte, 2)
	binary.LittleEndian.PutUint16(marketIndex, args.MarketIndex)

	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		spotMarketVaultPrefix,
		marketIndex,
	)
}
