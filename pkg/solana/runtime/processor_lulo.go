package runtime

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/binary"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
	"github.com/gabrielkoerich/lulo-vault/pkg/solana/drift"
	"github.com/gabrielkoerich/lulo-vault/pkg/solana/lulo"
	"github.com/gabrielkoerich/lulo-vault/pkg/solana/token"
)

// Aggregator custom error codes. The router is modeled as a black box; these
// cover the failures the vault flows can provoke.
const (
	luloErrUninitializedUserAccount solana.CustomError = iota + 0x1770
	luloErrWithdrawalInProgress
	luloErrNoPendingWithdrawal
	luloErrInsufficientPosition
	luloErrDriftUserNotInitialized
)

// Venue user model: 8 byte discriminator followed by the deposited amount.
var driftUserDiscriminator = anchorAccountDiscriminator("User")

const driftUserSize = 8 + 8

func anchorAccountDiscriminator(name string) []byte {
	h := sha256.Sum256([]byte("account:" + name))
	return h[:8]
}

func processLulo(ctx *instructionCtx) error {
	if len(ctx.data) < 8 {
		return keyError(solana.InstructionErrorInvalidInstructionData)
	}

	discriminator := ctx.data[:8]
	switch {
	case bytes.Equal(discriminator, lulo.InitiateDepositInstructionDiscriminator):
		return processLuloInitiateDeposit(ctx)
	case bytes.Equal(discriminator, lulo.InitiateWithdrawInstructionDiscriminator):
		return processLuloInitiateWithdraw(ctx)
	case bytes.Equal(discriminator, lulo.CompleteWithdrawInstructionDiscriminator):
		return processLuloCompleteWithdraw(ctx)
	case bytes.Equal(discriminator, lulo.InitDriftUserAccountInstructionDiscriminator):
		return processLuloInitDriftUserAccount(ctx)
	case bytes.Equal(discriminator, lulo.DepositDriftInstructionDiscriminator):
		return processLuloDepositDrift(ctx)
	case bytes.Equal(discriminator, lulo.WithdrawDriftInstructionDiscriminator):
		return processLuloWithdrawDrift(ctx)
	default:
		return keyError(solana.InstructionErrorInvalidInstructionData)
	}
}

// loadLuloUser verifies the user account key against its derivation and
// unmarshals its state.
func loadLuloUser(ctx *instructionCtx, index int, owner ed25519.PublicKey) (*lulo.UserAccount, error) {
	expected, _, err := lulo.GetUserAccountAddress(&lulo.GetUserAccountAddressArgs{Owner: owner})
	if err != nil || !bytes.Equal(expected, ctx.key(index)) {
		return nil, keyError(solana.InstructionErrorInvalidSeeds)
	}

	a := ctx.account(index)
	if a.IsEmpty() {
		return nil, luloErrUninitializedUserAccount
	}

	var user lulo.UserAccount
	if err := user.Unmarshal(a.Data); err != nil {
		return nil, keyError(solana.InstructionErrorInvalidAccountData)
	}

	return &user, nil
}

func writeLuloUser(ctx *instructionCtx, index int, user *lulo.UserAccount) {
	a := ctx.account(index)
	if a == nil {
		a = &Account{
			Lamports: rentExemptReserve,
			Owner:    lulo.PROGRAM_ID,
		}
		ctx.env.setAccount(ctx.key(index), a)
	}
	a.Owner = lulo.PROGRAM_ID
	a.Data = user.Marshal()
}

func processLuloInitiateDeposit(ctx *instructionCtx) error {
	if ctx.numAccounts() < 11 {
		return keyError(solana.InstructionErrorNotEnoughAccountKeys)
	}
	if len(ctx.data) != 8+lulo.InitiateDepositInstructionArgsSize {
		return keyError(solana.InstructionErrorInvalidInstructionData)
	}

	amount := binary.LittleEndian.Uint64(ctx.data[8:])

	owner := ctx.key(0)
	feePayer := ctx.key(1)
	mint := ctx.key(5)

	expected, bump, err := lulo.GetUserAccountAddress(&lulo.GetUserAccountAddressArgs{Owner: owner})
	if err != nil || !bytes.Equal(expected, ctx.key(3)) {
		return keyError(solana.InstructionErrorInvalidSeeds)
	}

	if ctx.account(3).IsEmpty() {
		writeLuloUser(ctx, 3, &lulo.UserAccount{
			Bump:  bump,
			Owner: owner,
		})
	}

	createUserTokenAccount, userTokenAccount, err := token.CreateAssociatedTokenAccountIdempotent(feePayer, ctx.key(3), mint)
	if err != nil || !bytes.Equal(userTokenAccount, ctx.key(4)) {
		return keyError(solana.InstructionErrorInvalidSeeds)
	}
	if err := ctx.invoke(createUserTokenAccount); err != nil {
		return err
	}

	return ctx.invoke(token.Transfer(ctx.key(2), ctx.key(4), owner, amount))
}

func processLuloInitiateWithdraw(ctx *instructionCtx) error {
	if ctx.numAccounts() < 11 {
		return keyError(solana.InstructionErrorNotEnoughAccountKeys)
	}
	if len(ctx.data) != 8+lulo.InitiateWithdrawInstructionArgsSize {
		return keyError(solana.InstructionErrorInvalidInstructionData)
	}

	amount := binary.LittleEndian.Uint64(ctx.data[8:])

	user, err := loadLuloUser(ctx, 3, ctx.key(0))
	if err != nil {
		return err
	}
	if user.WithdrawalState == lulo.WithdrawalStateRequested {
		return luloErrWithdrawalInProgress
	}

	position, err := loadTokenAccount(ctx.account(4))
	if err != nil {
		return err
	}
	if position.Amount < amount {
		return luloErrInsufficientPosition
	}

	// Request only. Funds stay deployed until a crank settles the request.
	user.PendingWithdrawal = amount
	user.WithdrawalState = lulo.WithdrawalStateRequested
	writeLuloUser(ctx, 3, user)

	return nil
}

func processLuloCompleteWithdraw(ctx *instructionCtx) error {
	if ctx.numAccounts() < 7 {
		return keyError(solana.InstructionErrorNotEnoughAccountKeys)
	}

	owner := ctx.key(1)

	user, err := loadLuloUser(ctx, 3, owner)
	if err != nil {
		return err
	}
	if user.WithdrawalState != lulo.WithdrawalStateRequested {
		return luloErrNoPendingWithdrawal
	}

	seeds := [][]byte{lulo.UserAccountPrefix, owner, {user.Bump}}
	transfer := token.Transfer(ctx.key(4), ctx.key(2), ctx.key(3), user.PendingWithdrawal)
	if err := ctx.invoke(transfer, seeds); err != nil {
		return err
	}

	user.PendingWithdrawal = 0
	user.WithdrawalState = lulo.WithdrawalStateSettled
	writeLuloUser(ctx, 3, user)

	return nil
}

func processLuloInitDriftUserAccount(ctx *instructionCtx) error {
	if ctx.numAccounts() < 11 {
		return keyError(solana.InstructionErrorNotEnoughAccountKeys)
	}

	if _, err := loadLuloUser(ctx, 5, ctx.key(1)); err != nil {
		return err
	}

	if !ctx.account(2).IsEmpty() {
		return keyError(solana.InstructionErrorAccountAlreadyInitialized)
	}

	data := make([]byte, driftUserSize)
	copy(data, driftUserDiscriminator)
	ctx.env.setAccount(ctx.key(2), &Account{
		Lamports: rentExemptReserve,
		Owner:    drift.PROGRAM_ID,
		Data:     data,
	})

	if ctx.account(3).IsEmpty() {
		ctx.env.setAccount(ctx.key(3), &Account{
			Lamports: rentExemptReserve,
			Owner:    drift.PROGRAM_ID,
		})
	}

	return nil
}

func processLuloDepositDrift(ctx *instructionCtx) error {
	if ctx.numAccounts() < 15 {
		return keyError(solana.InstructionErrorNotEnoughAccountKeys)
	}
	if len(ctx.data) != 8+lulo.DepositDriftInstructionArgsSize {
		return keyError(solana.InstructionErrorInvalidInstructionData)
	}

	amount := binary.LittleEndian.Uint64(ctx.data[8+2:])

	user, err := loadLuloUser(ctx, 6, ctx.key(1))
	if err != nil {
		return err
	}

	driftUser := ctx.account(2)
	if driftUser.IsEmpty() {
		return luloErrDriftUserNotInitialized
	}

	seeds := [][]byte{lulo.UserAccountPrefix, ctx.key(1), {user.Bump}}
	transfer := token.Transfer(ctx.key(7), ctx.key(5), ctx.key(6), amount)
	if err := ctx.invoke(transfer, seeds); err != nil {
		return err
	}

	setDriftUserBalance(driftUser, driftUserBalance(driftUser)+amount)
	return nil
}

func processLuloWithdrawDrift(ctx *instructionCtx) error {
	// Exit revalues every supplied market against its oracle, which is what
	// pushes this path past the default compute budget.
	if err := ctx.consume(170_000); err != nil {
		return err
	}

	if ctx.numAccounts() < 15+2 {
		return keyError(solana.InstructionErrorNotEnoughAccountKeys)
	}
	if len(ctx.data) != 8+lulo.WithdrawDriftInstructionArgsSize {
		return keyError(solana.InstructionErrorInvalidInstructionData)
	}

	amount := binary.LittleEndian.Uint64(ctx.data[8+2:])

	if _, err := loadLuloUser(ctx, 7, ctx.key(1)); err != nil {
		return err
	}

	driftUser := ctx.account(2)
	if driftUser.IsEmpty() {
		return luloErrDriftUserNotInitialized
	}
	if driftUserBalance(driftUser) < amount {
		return luloErrInsufficientPosition
	}

	// The venue signs for its own vault internally; modeled as a direct move
	// from the spot market vault to the router's token account.
	if err := moveTokens(ctx, 6, 8, amount); err != nil {
		return err
	}

	setDriftUserBalance(driftUser, driftUserBalance(driftUser)-amount)
	return nil
}

func driftUserBalance(a *Account) uint64 {
	if len(a.Data) < driftUserSize {
		return 0
	}
	return binary.LittleEndian.Uint64(a.Data[8:])
}

func setDriftUserBalance(a *Account, balance uint64) {
	binary.LittleEndian.PutUint64(a.Data[8:], balance)
}

func moveTokens(ctx *instructionCtx, fromIndex, toIndex int, amount uint64) error {
	from, err := loadTokenAccount(ctx.account(fromIndex))
	if err != nil {
		return err
	}
	to, err := loadTokenAccount(ctx.account(toIndex))
	if err != nil {
		return err
	}

	if from.Amount < amount {
		return token.ErrorInsufficientFunds
	}

	from.Amount -= amount
	to.Amount += amount

	if from.IsNative != nil {
		ctx.account(fromIndex).Lamports -= amount
		ctx.account(toIndex).Lamports += amount
	}

	copy(ctx.account(fromIndex).Data, from.Marshal())
	copy(ctx.account(toIndex).Data, to.Marshal())
	return nil
}
