package runtime

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
	compute_budget "github.com/gabrielkoerich/lulo-vault/pkg/solana/computebudget"
	"github.com/gabrielkoerich/lulo-vault/pkg/solana/lulo"
	"github.com/gabrielkoerich/lulo-vault/pkg/solana/system"
	"github.com/gabrielkoerich/lulo-vault/pkg/solana/token"
	"github.com/gabrielkoerich/lulo-vault/pkg/solana/vault"
)

type processorFunc func(ctx *instructionCtx) error

// Runtime executes transactions against an in-memory ledger with native
// implementations of the programs the vault flows touch. It enforces the
// transaction-level guarantees a validator would: signature verification,
// sequential instruction execution, per-transaction compute budget, and
// all-or-nothing state changes.
type Runtime struct {
	log        *logrus.Entry
	accounts   map[string]*Account
	processors map[string]processorFunc
	costs      map[string]uint64
}

func New() *Runtime {
	r := &Runtime{
		log:        logrus.StandardLogger().WithField("type", "solana/runtime"),
		accounts:   make(map[string]*Account),
		processors: make(map[string]processorFunc),
		costs:      make(map[string]uint64),
	}

	r.register(system.SystemAccount, processSystem, 150)
	r.register(token.ProgramKey, processToken, 4_700)
	r.register(token.AssociatedTokenAccountProgramKey, processAssociatedToken, 20_000)
	r.register(compute_budget.ProgramKey, processComputeBudget, 150)
	r.register(lulo.PROGRAM_ID, processLulo, 30_000)
	r.register(vault.PROGRAM_ID, processVault, 25_000)

	return r
}

func (r *Runtime) register(program ed25519.PublicKey, processor processorFunc, baseCost uint64) {
	r.processors[string(program)] = processor
	r.costs[string(program)] = baseCost
}

// Execute verifies and runs a signed transaction. A nil TransactionError
// means every instruction succeeded and the state changes are committed; on
// failure no state changes survive.
func (r *Runtime) Execute(txn solana.Transaction) (*solana.TransactionError, error) {
	if len(txn.Signatures) == 0 || int(txn.Message.Header.NumSignatures) != len(txn.Signatures) {
		return solana.NewTransactionError(solana.TransactionErrorSanitizeFailure), nil
	}
	if len(txn.Message.Accounts) < len(txn.Signatures) {
		return solana.NewTransactionError(solana.TransactionErrorSanitizeFailure), nil
	}

	messageBytes := txn.Message.Marshal()
	signers := make(map[string]struct{}, len(txn.Signatures))
	for i, signature := range txn.Signatures {
		if !ed25519.Verify(txn.Message.Accounts[i], messageBytes, signature[:]) {
			return solana.NewTransactionError(solana.TransactionErrorSignatureFailure), nil
		}
		signers[string(txn.Message.Accounts[i])] = struct{}{}
	}

	e := &env{
		runtime:  r,
		accounts: make(map[string]*Account),
		meter:    newComputeMeter(r.computeUnitLimit(txn.Message)),
	}

	for i, compiled := range txn.Message.Instructions {
		ixn, err := decompile(txn.Message, compiled)
		if err != nil {
			return solana.NewTransactionError(solana.TransactionErrorSanitizeFailure), nil
		}

		if err := e.dispatch(ixn, signers, 0); err != nil {
			r.log.WithFields(logrus.Fields{
				"program":     base58.Encode(ixn.Program),
				"instruction": i,
			}).WithError(err).Debug("transaction failed")

			txErr, convErr := solana.TransactionErrorFromInstructionError(&solana.InstructionError{
				Index: i,
				Err:   err,
			})
			if convErr != nil {
				return nil, errors.Wrap(convErr, "failed to convert instruction error")
			}
			return txErr, nil
		}
	}

	e.commit()
	return nil, nil
}

// computeUnitLimit scans the message for a compute budget limit request, the
// way the runtime applies it before execution starts.
func (r *Runtime) computeUnitLimit(m solana.Message) uint64 {
	for _, compiled := range m.Instructions {
		if int(compiled.ProgramIndex) >= len(m.Accounts) {
			continue
		}
		if string(m.Accounts[compiled.ProgramIndex]) != string(compute_budget.ProgramKey) {
			continue
		}

		if limit, err := compute_budget.ParseSetComputeUnitLimitIxnData(compiled.Data); err == nil {
			return uint64(limit)
		}
	}

	return DefaultComputeUnitLimit
}

func decompile(m solana.Message, compiled solana.CompiledInstruction) (solana.Instruction, error) {
	if int(compiled.ProgramIndex) >= len(m.Accounts) {
		return solana.Instruction{}, errors.New("program index out of range")
	}

	ixn := solana.Instruction{
		Program: m.Accounts[compiled.ProgramIndex],
		Data:    compiled.Data,
	}

	for _, index := range compiled.Accounts {
		if int(index) >= len(m.Accounts) {
			return solana.Instruction{}, errors.New("account index out of range")
		}

		ixn.Accounts = append(ixn.Accounts, solana.AccountMeta{
			PublicKey:  m.Accounts[index],
			IsSigner:   isSignerIndex(m.Header, int(index)),
			IsWritable: isWritableIndex(m.Header, len(m.Accounts), int(index)),
		})
	}

	return ixn, nil
}

func isSignerIndex(h solana.Header, index int) bool {
	return index < int(h.NumSignatures)
}

func isWritableIndex(h solana.Header, numAccounts, index int) bool {
	if index < int(h.NumSignatures) {
		return index < int(h.NumSignatures)-int(h.NumReadonlySigned)
	}

	return index < numAccounts-int(h.NumReadOnly)
}

// GetAccount returns a copy of the ledger entry for key, if one exists.
func (r *Runtime) GetAccount(key ed25519.PublicKey) (*Account, bool) {
	a, ok := r.accounts[string(key)]
	if !ok {
		return nil, false
	}
	return a.clone(), true
}

// SetAccount overwrites a ledger entry directly. Test setup only; everything
// else goes through Execute.
func (r *Runtime) SetAccount(key ed25519.PublicKey, a *Account) {
	r.accounts[string(key)] = a.clone()
}

// Airdrop credits lamports to an account, creating a system-owned entry when
// none exists.
func (r *Runtime) Airdrop(key ed25519.PublicKey, lamports uint64) {
	a, ok := r.accounts[string(key)]
	if !ok {
		a = &Account{Owner: system.SystemAccount}
		r.accounts[string(key)] = a
	}
	a.Lamports += lamports
}

// CreateMint installs a mint account so token accounts for it can be
// initialized. The mint data itself is opaque to the vault flows.
func (r *Runtime) CreateMint(mint ed25519.PublicKey) {
	r.accounts[string(mint)] = &Account{
		Lamports: rentExemptReserve,
		Owner:    token.ProgramKey,
		Data:     make([]byte, mintSize),
	}
}

// CreateTokenAccount installs an initialized token account at an arbitrary
// address. Used to stand up accounts whose owning program is out of scope,
// like the venue's spot market vault.
func (r *Runtime) CreateTokenAccount(address, mint, owner ed25519.PublicKey) {
	state := token.Account{
		Mint:  mint,
		Owner: owner,
		State: token.AccountStateInitialized,
	}
	if string(mint) == string(token.NativeMint) {
		reserve := uint64(rentExemptReserve)
		state.IsNative = &reserve
	}

	r.accounts[string(address)] = &Account{
		Lamports: rentExemptReserve,
		Owner:    token.ProgramKey,
		Data:     state.Marshal(),
	}
}

// TokenBalance reads the token amount of an initialized token account.
func (r *Runtime) TokenBalance(key ed25519.PublicKey) (uint64, error) {
	a, ok := r.accounts[string(key)]
	if !ok {
		return 0, errors.Errorf("token account %s does not exist", base58.Encode(key))
	}

	var state token.Account
	if !state.Unmarshal(a.Data) {
		return 0, errors.Errorf("account %s is not a token account", base58.Encode(key))
	}

	return state.Amount, nil
}
