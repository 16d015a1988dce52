package runtime

import (
	"bytes"
	"encoding/binary"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
	"github.com/gabrielkoerich/lulo-vault/pkg/solana/system"
	"github.com/gabrielkoerich/lulo-vault/pkg/solana/token"
)

const (
	// Rent-exempt minimum for a 165 byte token account.
	rentExemptReserve = 2_039_280

	mintSize = 82
)

func processToken(ctx *instructionCtx) error {
	if len(ctx.data) == 0 {
		return keyError(solana.InstructionErrorInvalidInstructionData)
	}

	switch token.Command(ctx.data[0]) {
	case token.CommandInitializeAccount:
		return processTokenInitializeAccount(ctx)
	case token.CommandTransfer:
		return processTokenTransfer(ctx)
	case token.CommandSyncNative:
		return processTokenSyncNative(ctx)
	default:
		return keyError(solana.InstructionErrorInvalidInstructionData)
	}
}

func processTokenInitializeAccount(ctx *instructionCtx) error {
	if ctx.numAccounts() < 4 {
		return keyError(solana.InstructionErrorNotEnoughAccountKeys)
	}

	a := ctx.account(0)
	if a == nil || len(a.Data) != token.AccountSize || !bytes.Equal(a.Owner, token.ProgramKey) {
		return keyError(solana.InstructionErrorInvalidAccountData)
	}

	var state token.Account
	if state.Unmarshal(a.Data) && state.State != token.AccountStateUninitialized {
		return token.ErrorAlreadyInUse
	}

	mint := ctx.account(1)
	if mint == nil || !bytes.Equal(mint.Owner, token.ProgramKey) {
		return keyError(solana.InstructionErrorInvalidAccountData)
	}

	state = token.Account{
		Mint:  ctx.key(1),
		Owner: ctx.key(2),
		State: token.AccountStateInitialized,
	}

	if bytes.Equal(ctx.key(1), token.NativeMint) {
		reserve := uint64(rentExemptReserve)
		state.IsNative = &reserve
		if a.Lamports >= reserve {
			state.Amount = a.Lamports - reserve
		}
	}

	copy(a.Data, state.Marshal())
	return nil
}

func processTokenTransfer(ctx *instructionCtx) error {
	if ctx.numAccounts() < 3 {
		return keyError(solana.InstructionErrorNotEnoughAccountKeys)
	}
	if len(ctx.data) != 9 {
		return keyError(solana.InstructionErrorInvalidInstructionData)
	}

	amount := binary.LittleEndian.Uint64(ctx.data[1:])

	source, err := loadTokenAccount(ctx.account(0))
	if err != nil {
		return err
	}
	dest, err := loadTokenAccount(ctx.account(1))
	if err != nil {
		return err
	}

	if !bytes.Equal(source.Owner, ctx.key(2)) {
		return token.ErrorOwnerMismatch
	}
	if !ctx.signed(2) {
		return keyError(solana.InstructionErrorMissingRequiredSignature)
	}
	if !bytes.Equal(source.Mint, dest.Mint) {
		return token.ErrorMintMismatch
	}
	if source.Amount < amount {
		return token.ErrorInsufficientFunds
	}

	source.Amount -= amount
	dest.Amount += amount

	// Wrapped SOL moves the backing lamports with the token amount.
	if source.IsNative != nil {
		ctx.account(0).Lamports -= amount
		ctx.account(1).Lamports += amount
	}

	copy(ctx.account(0).Data, source.Marshal())
	copy(ctx.account(1).Data, dest.Marshal())
	return nil
}

func processTokenSyncNative(ctx *instructionCtx) error {
	if ctx.numAccounts() < 1 {
		return keyError(solana.InstructionErrorNotEnoughAccountKeys)
	}

	a := ctx.account(0)
	state, err := loadTokenAccount(a)
	if err != nil {
		return err
	}
	if state.IsNative == nil {
		return keyError(solana.InstructionErrorInvalidAccountData)
	}

	state.Amount = a.Lamports - *state.IsNative
	copy(a.Data, state.Marshal())
	return nil
}

func loadTokenAccount(a *Account) (*token.Account, error) {
	if a == nil || !bytes.Equal(a.Owner, token.ProgramKey) {
		return nil, keyError(solana.InstructionErrorInvalidAccountData)
	}

	var state token.Account
	if !state.Unmarshal(a.Data) || state.State == token.AccountStateUninitialized {
		return nil, keyError(solana.InstructionErrorInvalidAccountData)
	}

	return &state, nil
}

func processAssociatedToken(ctx *instructionCtx) error {
	if ctx.numAccounts() < 7 {
		return keyError(solana.InstructionErrorNotEnoughAccountKeys)
	}

	idempotent := bytes.Equal(ctx.data, []byte{1})
	if len(ctx.data) != 0 && !idempotent {
		return keyError(solana.InstructionErrorInvalidInstructionData)
	}

	funder := ctx.key(0)
	address := ctx.key(1)
	wallet := ctx.key(2)
	mint := ctx.key(3)

	expected, bump, err := solana.FindProgramAddressAndBump(
		token.AssociatedTokenAccountProgramKey,
		wallet,
		token.ProgramKey,
		mint,
	)
	if err != nil || !bytes.Equal(expected, address) {
		return keyError(solana.InstructionErrorInvalidSeeds)
	}

	if a := ctx.account(1); !a.IsEmpty() {
		if idempotent {
			return nil
		}
		return token.ErrorAlreadyInUse
	}

	seeds := [][]byte{wallet, token.ProgramKey, mint, {bump}}

	create := system.CreateAccount(funder, address, token.ProgramKey, rentExemptReserve, token.AccountSize)
	if err := ctx.invoke(create, seeds); err != nil {
		return err
	}

	return ctx.invoke(token.InitializeAccount(address, mint, wallet), seeds)
}
