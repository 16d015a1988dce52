package runtime

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
)

const maxInvokeDepth = 4

var errComputeBudgetExceeded = errors.New(string(solana.InstructionErrorComputationalBudgetExceeded))

func keyError(key solana.InstructionErrorKey) error {
	return errors.New(string(key))
}

// env is the transaction-scoped view of the ledger. Accounts are cloned from
// the runtime on first touch; nothing is written back unless the whole
// transaction succeeds.
type env struct {
	runtime  *Runtime
	accounts map[string]*Account
	meter    *computeMeter
}

func (e *env) account(key ed25519.PublicKey) *Account {
	if a, ok := e.accounts[string(key)]; ok {
		return a
	}

	if a, ok := e.runtime.accounts[string(key)]; ok {
		cloned := a.clone()
		e.accounts[string(key)] = cloned
		return cloned
	}

	return nil
}

func (e *env) setAccount(key ed25519.PublicKey, a *Account) {
	e.accounts[string(key)] = a
}

func (e *env) commit() {
	for k, a := range e.accounts {
		e.runtime.accounts[k] = a
	}
}

func (e *env) dispatch(ixn solana.Instruction, signers map[string]struct{}, depth int) error {
	if depth > maxInvokeDepth {
		return keyError(solana.InstructionErrorCallDepth)
	}

	for _, meta := range ixn.Accounts {
		if !meta.IsSigner {
			continue
		}
		if _, ok := signers[string(meta.PublicKey)]; !ok {
			return keyError(solana.InstructionErrorMissingRequiredSignature)
		}
	}

	processor, ok := e.runtime.processors[string(ixn.Program)]
	if !ok {
		return keyError(solana.InstructionErrorUnsupportedProgramID)
	}

	if err := e.meter.consume(e.runtime.costs[string(ixn.Program)]); err != nil {
		return err
	}

	return processor(&instructionCtx{
		env:      e,
		program:  ixn.Program,
		accounts: ixn.Accounts,
		data:     ixn.Data,
		signers:  signers,
		depth:    depth,
	})
}

// instructionCtx is the per-instruction execution context handed to program
// processors.
type instructionCtx struct {
	env      *env
	program  ed25519.PublicKey
	accounts []solana.AccountMeta
	data     []byte
	signers  map[string]struct{}
	depth    int
}

func (c *instructionCtx) numAccounts() int {
	return len(c.accounts)
}

func (c *instructionCtx) key(index int) ed25519.PublicKey {
	return c.accounts[index].PublicKey
}

func (c *instructionCtx) account(index int) *Account {
	return c.env.account(c.accounts[index].PublicKey)
}

func (c *instructionCtx) isSigner(key ed25519.PublicKey) bool {
	_, ok := c.signers[string(key)]
	return ok
}

// signed reports whether the account at index carries the signer flag and is
// backed by a transaction signature or a derived program address. Processors
// use it wherever the on-chain program requires a signing account, since the
// flags come from the caller's message.
func (c *instructionCtx) signed(index int) bool {
	meta := c.accounts[index]
	return meta.IsSigner && c.isSigner(meta.PublicKey)
}

func (c *instructionCtx) consume(units uint64) error {
	return c.env.meter.consume(units)
}

// invoke executes an inner instruction. Each entry in signerSeeds derives a
// program address under the calling program; the derived keys may sign for
// the inner call, mirroring invoke_signed.
func (c *instructionCtx) invoke(ixn solana.Instruction, signerSeeds ...[][]byte) error {
	signers := make(map[string]struct{}, len(c.signers)+len(signerSeeds))
	for k := range c.signers {
		signers[k] = struct{}{}
	}

	for _, seeds := range signerSeeds {
		derived, err := solana.CreateProgramAddress(c.program, seeds...)
		if err != nil {
			return keyError(solana.InstructionErrorInvalidSeeds)
		}
		signers[string(derived)] = struct{}{}
	}

	return c.env.dispatch(ixn, signers, c.depth+1)
}
