package runtime

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
	"github.com/gabrielkoerich/lulo-vault/pkg/solana/system"
)

// System program error codes.
//
// Source: https://github.com/solana-labs/solana/blob/master/sdk/program/src/system_instruction.rs#L20
const (
	systemErrAccountAlreadyInUse solana.CustomError = iota
	systemErrResultWithNegativeLamports
)

func processSystem(ctx *instructionCtx) error {
	if len(ctx.data) < 4 {
		return keyError(solana.InstructionErrorInvalidInstructionData)
	}

	switch binary.LittleEndian.Uint32(ctx.data) {
	case 0: // create account
		return processSystemCreateAccount(ctx)
	case 2: // transfer
		return processSystemTransfer(ctx)
	default:
		return keyError(solana.InstructionErrorInvalidInstructionData)
	}
}

func processSystemCreateAccount(ctx *instructionCtx) error {
	if ctx.numAccounts() < 2 {
		return keyError(solana.InstructionErrorNotEnoughAccountKeys)
	}
	if len(ctx.data) != 4+2*8+32 {
		return keyError(solana.InstructionErrorInvalidInstructionData)
	}

	if !ctx.signed(0) || !ctx.signed(1) {
		return keyError(solana.InstructionErrorMissingRequiredSignature)
	}

	lamports := binary.LittleEndian.Uint64(ctx.data[4:])
	size := binary.LittleEndian.Uint64(ctx.data[4+8:])
	owner := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(owner, ctx.data[4+2*8:])

	funder := ctx.account(0)
	if funder == nil || funder.Lamports < lamports {
		return systemErrResultWithNegativeLamports
	}

	created := ctx.account(1)
	if !created.IsEmpty() {
		return systemErrAccountAlreadyInUse
	}

	funder.Lamports -= lamports

	ctx.env.setAccount(ctx.key(1), &Account{
		Lamports: lamports,
		Owner:    owner,
		Data:     make([]byte, size),
	})

	return nil
}

func processSystemTransfer(ctx *instructionCtx) error {
	if ctx.numAccounts() < 2 {
		return keyError(solana.InstructionErrorNotEnoughAccountKeys)
	}
	if len(ctx.data) != 4+8 {
		return keyError(solana.InstructionErrorInvalidInstructionData)
	}

	if !ctx.signed(0) {
		return keyError(solana.InstructionErrorMissingRequiredSignature)
	}

	lamports := binary.LittleEndian.Uint64(ctx.data[4:])

	from := ctx.account(0)
	if from == nil || from.Lamports < lamports {
		return systemErrResultWithNegativeLamports
	}

	to := ctx.account(1)
	if to == nil {
		to = &Account{Owner: system.SystemAccount}
		ctx.env.setAccount(ctx.key(1), to)
	}

	from.Lamports -= lamports
	to.Lamports += lamports

	return nil
}
