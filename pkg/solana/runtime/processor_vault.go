package runtime

import (
	"bytes"
	"crypto/ed25519"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
	"github.com/gabrielkoerich/lulo-vault/pkg/solana/lulo"
	"github.com/gabrielkoerich/lulo-vault/pkg/solana/token"
	"github.com/gabrielkoerich/lulo-vault/pkg/solana/vault"
)

func processVault(ctx *instructionCtx) error {
	if len(ctx.data) < 8 {
		return keyError(solana.InstructionErrorInvalidInstructionData)
	}

	discriminator := ctx.data[:8]
	switch {
	case bytes.Equal(discriminator, vault.InitVaultInstructionDiscriminator):
		return processVaultInit(ctx)
	case bytes.Equal(discriminator, vault.DepositVaultInstructionDiscriminator):
		return processVaultDeposit(ctx)
	case bytes.Equal(discriminator, vault.WithdrawVaultInstructionDiscriminator):
		return processVaultWithdraw(ctx)
	case bytes.Equal(discriminator, vault.LuloDepositInstructionDiscriminator):
		return processVaultLuloDeposit(ctx)
	case bytes.Equal(discriminator, vault.LuloWithdrawInstructionDiscriminator):
		return processVaultLuloWithdraw(ctx)
	case bytes.Equal(discriminator, vault.LuloDepositDriftInstructionDiscriminator):
		return processVaultLuloDepositDrift(ctx)
	case bytes.Equal(discriminator, vault.LuloWithdrawDriftInstructionDiscriminator):
		return processVaultLuloWithdrawDrift(ctx)
	default:
		return keyError(solana.InstructionErrorInvalidInstructionData)
	}
}

func processVaultInit(ctx *instructionCtx) error {
	if ctx.numAccounts() < 4 {
		return keyError(solana.InstructionErrorNotEnoughAccountKeys)
	}
	if !ctx.signed(0) {
		return keyError(solana.InstructionErrorMissingRequiredSignature)
	}

	owner := ctx.key(0)
	mint := ctx.key(1)

	if !ctx.account(2).IsEmpty() {
		return solana.CustomError(vault.ErrAlreadyInitialized)
	}

	expected, bump, err := vault.GetVaultAddress(&vault.GetVaultAddressArgs{
		Mint:  mint,
		Owner: owner,
	})
	if err != nil || !bytes.Equal(expected, ctx.key(2)) {
		return solana.CustomError(vault.ErrAccountMismatch)
	}

	state := &vault.VaultAccount{
		Bump:  bump,
		Owner: owner,
		Mint:  mint,
	}

	ctx.env.setAccount(ctx.key(2), &Account{
		Lamports: rentExemptReserve,
		Owner:    vault.PROGRAM_ID,
		Data:     state.Marshal(),
	})

	return nil
}

// loadVault unmarshals and validates the vault account: the key must match
// its derivation under the stored bump, and the signing owner must be the
// recorded one.
func loadVault(ctx *instructionCtx, index int, owner, mint ed25519.PublicKey) (*vault.VaultAccount, error) {
	a := ctx.account(index)
	if a.IsEmpty() || !bytes.Equal(a.Owner, vault.PROGRAM_ID) {
		return nil, solana.CustomError(vault.ErrAccountMismatch)
	}

	var state vault.VaultAccount
	if err := state.Unmarshal(a.Data); err != nil {
		return nil, solana.CustomError(vault.ErrAccountMismatch)
	}

	derived, err := solana.CreateProgramAddress(vault.PROGRAM_ID, state.SignerSeeds()...)
	if err != nil || !bytes.Equal(derived, ctx.key(index)) {
		return nil, solana.CustomError(vault.ErrAccountMismatch)
	}

	if !bytes.Equal(state.Owner, owner) {
		return nil, solana.CustomError(vault.ErrOwnerMismatch)
	}
	if !bytes.Equal(state.Mint, mint) {
		return nil, solana.CustomError(vault.ErrAccountMismatch)
	}

	return &state, nil
}

// custodyAddress validates that the supplied custody key is the vault's
// associated token account.
func custodyAddress(vaultKey, mint, supplied ed25519.PublicKey) error {
	expected, err := token.GetAssociatedAccount(vaultKey, mint)
	if err != nil || !bytes.Equal(expected, supplied) {
		return solana.CustomError(vault.ErrAccountMismatch)
	}
	return nil
}

// externalCallError propagates program errors from the aggregator verbatim
// and folds everything else into ExternalCallFailed. Compute exhaustion keeps
// its own identity so it surfaces as a budget failure.
func externalCallError(err error) error {
	if err == nil {
		return nil
	}

	var custom solana.CustomError
	if errors.As(err, &custom) {
		return err
	}
	if errors.Is(err, errComputeBudgetExceeded) {
		return err
	}

	return solana.CustomError(vault.ErrExternalCallFailed)
}

func processVaultDeposit(ctx *instructionCtx) error {
	if ctx.numAccounts() < 8 {
		return keyError(solana.InstructionErrorNotEnoughAccountKeys)
	}
	if len(ctx.data) != 8+vault.DepositVaultInstructionArgsSize {
		return keyError(solana.InstructionErrorInvalidInstructionData)
	}
	if !ctx.signed(0) {
		return keyError(solana.InstructionErrorMissingRequiredSignature)
	}

	amount := binary.LittleEndian.Uint64(ctx.data[8:])

	owner := ctx.key(0)
	mint := ctx.key(2)

	if _, err := loadVault(ctx, 1, owner, mint); err != nil {
		return err
	}
	if err := custodyAddress(ctx.key(1), mint, ctx.key(4)); err != nil {
		return err
	}

	source, err := loadTokenAccount(ctx.account(3))
	if err != nil || !bytes.Equal(source.Owner, owner) {
		return solana.CustomError(vault.ErrAccountMismatch)
	}

	// Custody is created on first use.
	if ctx.account(4).IsEmpty() {
		create, _, err := token.CreateAssociatedTokenAccountIdempotent(owner, ctx.key(1), mint)
		if err != nil {
			return solana.CustomError(vault.ErrAccountMismatch)
		}
		if err := ctx.invoke(create); err != nil {
			return err
		}
	}

	return ctx.invoke(token.Transfer(ctx.key(3), ctx.key(4), owner, amount))
}

func processVaultWithdraw(ctx *instructionCtx) error {
	if ctx.numAccounts() < 8 {
		return keyError(solana.InstructionErrorNotEnoughAccountKeys)
	}
	if len(ctx.data) != 8+vault.WithdrawVaultInstructionArgsSize {
		return keyError(solana.InstructionErrorInvalidInstructionData)
	}
	if !ctx.signed(0) {
		return keyError(solana.InstructionErrorMissingRequiredSignature)
	}

	amount := binary.LittleEndian.Uint64(ctx.data[8:])

	owner := ctx.key(0)
	mint := ctx.key(2)

	state, err := loadVault(ctx, 1, owner, mint)
	if err != nil {
		return err
	}
	if err := custodyAddress(ctx.key(1), mint, ctx.key(4)); err != nil {
		return err
	}

	// Funds only leave custody towards a token account the owner controls.
	destination, err := loadTokenAccount(ctx.account(3))
	if err != nil || !bytes.Equal(destination.Owner, owner) {
		return solana.CustomError(vault.ErrAccountMismatch)
	}

	custody, err := loadTokenAccount(ctx.account(4))
	if err != nil {
		return solana.CustomError(vault.ErrAccountMismatch)
	}

	// Only the liquid custody balance is movable. Funds parked with the
	// aggregator are not recalled implicitly.
	if custody.Amount < amount {
		return solana.CustomError(vault.ErrInsufficientVaultFunds)
	}

	transfer := token.Transfer(ctx.key(4), ctx.key(3), ctx.key(1), amount)
	return ctx.invoke(transfer, state.SignerSeeds())
}

// loadAllocationAccounts validates the aggregator-facing fixed account set
// shared by the allocation instructions: custody, the vault's aggregator
// user account, its token account, and the promotion reserve.
func loadAllocationAccounts(ctx *instructionCtx) (*vault.VaultAccount, error) {
	if !ctx.signed(0) {
		return nil, keyError(solana.InstructionErrorMissingRequiredSignature)
	}

	owner := ctx.key(0)
	mint := ctx.key(3)

	state, err := loadVault(ctx, 1, owner, mint)
	if err != nil {
		return nil, err
	}
	if err := custodyAddress(ctx.key(1), mint, ctx.key(2)); err != nil {
		return nil, err
	}

	luloUser, _, err := lulo.GetUserAccountAddress(&lulo.GetUserAccountAddressArgs{Owner: ctx.key(1)})
	if err != nil || !bytes.Equal(luloUser, ctx.key(4)) {
		return nil, solana.CustomError(vault.ErrAccountMismatch)
	}

	luloUserTokenAccount, err := token.GetAssociatedAccount(ctx.key(4), mint)
	if err != nil || !bytes.Equal(luloUserTokenAccount, ctx.key(5)) {
		return nil, solana.CustomError(vault.ErrAccountMismatch)
	}

	if !bytes.Equal(ctx.key(6), lulo.PROMOTION_RESERVE_ID) {
		return nil, solana.CustomError(vault.ErrAccountMismatch)
	}
	if !bytes.Equal(ctx.key(7), lulo.PROGRAM_ID) {
		return nil, solana.CustomError(vault.ErrAccountMismatch)
	}

	return state, nil
}

func processVaultLuloDeposit(ctx *instructionCtx) error {
	if ctx.numAccounts() < 12 {
		return keyError(solana.InstructionErrorNotEnoughAccountKeys)
	}
	if len(ctx.data) != 8+vault.LuloDepositInstructionArgsSize {
		return keyError(solana.InstructionErrorInvalidInstructionData)
	}

	amount := binary.LittleEndian.Uint64(ctx.data[8:])

	state, err := loadAllocationAccounts(ctx)
	if err != nil {
		return err
	}

	custody, err := loadTokenAccount(ctx.account(2))
	if err != nil {
		return solana.CustomError(vault.ErrAccountMismatch)
	}
	if custody.Amount < amount {
		return solana.CustomError(vault.ErrInsufficientVaultFunds)
	}

	deposit := lulo.NewInitiateDepositInstruction(
		&lulo.InitiateDepositInstructionAccounts{
			Owner:             ctx.key(1),
			FeePayer:          ctx.key(0),
			OwnerTokenAccount: ctx.key(2),
			UserAccount:       ctx.key(4),
			UserTokenAccount:  ctx.key(5),
			Mint:              ctx.key(3),
			PromotionReserve:  ctx.key(6),
		},
		&lulo.InitiateDepositInstructionArgs{
			Amount: amount,
		},
	)

	return externalCallError(ctx.invoke(deposit, state.SignerSeeds()))
}

func processVaultLuloWithdraw(ctx *instructionCtx) error {
	if ctx.numAccounts() < 11 {
		return keyError(solana.InstructionErrorNotEnoughAccountKeys)
	}
	if len(ctx.data) != 8+vault.LuloWithdrawInstructionArgsSize {
		return keyError(solana.InstructionErrorInvalidInstructionData)
	}

	amount := binary.LittleEndian.Uint64(ctx.data[8:])

	state, err := loadAllocationAccounts(ctx)
	if err != nil {
		return err
	}

	withdraw := lulo.NewInitiateWithdrawInstruction(
		&lulo.InitiateWithdrawInstructionAccounts{
			Owner:             ctx.key(1),
			FeePayer:          ctx.key(0),
			OwnerTokenAccount: ctx.key(2),
			UserAccount:       ctx.key(4),
			UserTokenAccount:  ctx.key(5),
			Mint:              ctx.key(3),
			PromotionReserve:  ctx.key(6),
		},
		&lulo.InitiateWithdrawInstructionArgs{
			Amount: amount,
		},
	)

	return externalCallError(ctx.invoke(withdraw, state.SignerSeeds()))
}

// The direct venue routes use market index 1 of the venue, matching how the
// aggregator deploys this mint.
const driftMarketIndex uint16 = 1

func processVaultLuloDepositDrift(ctx *instructionCtx) error {
	// Fixed aggregator set plus user, user stats, state, spot market vault,
	// spot market, oracle, and the venue program.
	if ctx.numAccounts() < 12+7 {
		return keyError(solana.InstructionErrorNotEnoughAccountKeys)
	}
	if len(ctx.data) != 8+vault.LuloDepositDriftInstructionArgsSize {
		return keyError(solana.InstructionErrorInvalidInstructionData)
	}

	amount := binary.LittleEndian.Uint64(ctx.data[8:])

	state, err := loadAllocationAccounts(ctx)
	if err != nil {
		return err
	}

	userInitialized := !ctx.account(12).IsEmpty()
	if !userInitialized {
		initUser := lulo.NewInitDriftUserAccountInstruction(
			&lulo.InitDriftUserAccountInstructionAccounts{
				Signer:           ctx.key(1),
				Owner:            ctx.key(1),
				DriftUser:        ctx.key(12),
				DriftUserStats:   ctx.key(13),
				DriftState:       ctx.key(14),
				UserAccount:      ctx.key(4),
				PromotionReserve: ctx.key(6),
				FeePayer:         ctx.key(0),
				DriftProgram:     ctx.key(18),
			},
		)
		if err := externalCallError(ctx.invoke(initUser, state.SignerSeeds())); err != nil {
			return err
		}
	}

	deposit := lulo.NewDepositDriftInstruction(
		&lulo.DepositDriftInstructionAccounts{
			Signer:           ctx.key(1),
			Owner:            ctx.key(1),
			DriftUser:        ctx.key(12),
			DriftUserStats:   ctx.key(13),
			DriftState:       ctx.key(14),
			SpotMarketVault:  ctx.key(15),
			UserAccount:      ctx.key(4),
			UserTokenAccount: ctx.key(5),
			Mint:             ctx.key(3),
			SpotMarket:       ctx.key(16),
			Oracle:           ctx.key(17),
			FeePayer:         ctx.key(0),
			DriftProgram:     ctx.key(18),
		},
		&lulo.DepositDriftInstructionArgs{
			MarketIndex:     driftMarketIndex,
			Amount:          amount,
			UserInitialized: userInitialized,
		},
	)

	return externalCallError(ctx.invoke(deposit, state.SignerSeeds()))
}

func processVaultLuloWithdrawDrift(ctx *instructionCtx) error {
	// Fixed aggregator set plus user, user stats, state, venue signer, spot
	// market vault, the venue program, and an oracle and spot market per
	// supplied market.
	if ctx.numAccounts() < 11+6+4 {
		return keyError(solana.InstructionErrorNotEnoughAccountKeys)
	}
	if len(ctx.data) != 8+vault.LuloWithdrawDriftInstructionArgsSize {
		return keyError(solana.InstructionErrorInvalidInstructionData)
	}

	amount := binary.LittleEndian.Uint64(ctx.data[8:])

	state, err := loadAllocationAccounts(ctx)
	if err != nil {
		return err
	}

	tail := ctx.numAccounts() - 17
	pairs := tail / 2

	oracles := make([]ed25519.PublicKey, 0, pairs)
	spotMarkets := make([]ed25519.PublicKey, 0, pairs)
	for i := 0; i < pairs; i++ {
		oracles = append(oracles, ctx.key(17+i))
		spotMarkets = append(spotMarkets, ctx.key(17+pairs+i))
	}

	withdraw := lulo.NewWithdrawDriftInstruction(
		&lulo.WithdrawDriftInstructionAccounts{
			Signer:           ctx.key(1),
			Owner:            ctx.key(1),
			DriftUser:        ctx.key(11),
			DriftUserStats:   ctx.key(12),
			DriftState:       ctx.key(13),
			DriftSigner:      ctx.key(14),
			SpotMarketVault:  ctx.key(15),
			UserAccount:      ctx.key(4),
			UserTokenAccount: ctx.key(5),
			Mint:             ctx.key(3),
			FeePayer:         ctx.key(0),
			DriftProgram:     ctx.key(16),
			Oracles:          oracles,
			SpotMarkets:      spotMarkets,
		},
		&lulo.WithdrawDriftInstructionArgs{
			MarketIndex: driftMarketIndex,
			Amount:      amount,
			ReduceOnly:  true,
		},
	)

	return externalCallError(ctx.invoke(withdraw, state.SignerSeeds()))
}
