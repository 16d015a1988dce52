package runtime

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
	compute_budget "github.com/gabrielkoerich/lulo-vault/pkg/solana/computebudget"
	"github.com/gabrielkoerich/lulo-vault/pkg/solana/drift"
	"github.com/gabrielkoerich/lulo-vault/pkg/solana/lulo"
	"github.com/gabrielkoerich/lulo-vault/pkg/solana/system"
	"github.com/gabrielkoerich/lulo-vault/pkg/solana/token"
	"github.com/gabrielkoerich/lulo-vault/pkg/solana/vault"
)

const sol = 1_000_000_000

type testEnv struct {
	rt *Runtime

	owner    ed25519.PrivateKey
	ownerPub ed25519.PublicKey

	mint              ed25519.PublicKey
	vault             ed25519.PublicKey
	custody           ed25519.PublicKey
	ownerTokenAccount ed25519.PublicKey

	luloUserAccount      ed25519.PublicKey
	luloUserTokenAccount ed25519.PublicKey
}

func newTestEnv(t *testing.T) *testEnv {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	rt := New()
	rt.CreateMint(token.NativeMint)
	rt.Airdrop(pub, 100*sol)

	vaultKey, _, err := vault.GetVaultAddress(&vault.GetVaultAddressArgs{
		Mint:  token.NativeMint,
		Owner: pub,
	})
	require.NoError(t, err)

	custody, err := token.GetAssociatedAccount(vaultKey, token.NativeMint)
	require.NoError(t, err)

	ownerTokenAccount, err := token.GetAssociatedAccount(pub, token.NativeMint)
	require.NoError(t, err)

	luloUserAccount, _, err := lulo.GetUserAccountAddress(&lulo.GetUserAccountAddressArgs{
		Owner: vaultKey,
	})
	require.NoError(t, err)

	luloUserTokenAccount, err := token.GetAssociatedAccount(luloUserAccount, token.NativeMint)
	require.NoError(t, err)

	return &testEnv{
		rt:                   rt,
		owner:                priv,
		ownerPub:             pub,
		mint:                 token.NativeMint,
		vault:                vaultKey,
		custody:              custody,
		ownerTokenAccount:    ownerTokenAccount,
		luloUserAccount:      luloUserAccount,
		luloUserTokenAccount: luloUserTokenAccount,
	}
}

func (e *testEnv) execute(t *testing.T, signers []ed25519.PrivateKey, instructions ...solana.Instruction) *solana.TransactionError {
	payer := signers[0].Public().(ed25519.PublicKey)

	txn := solana.NewTransaction(payer, instructions...)

	var bh solana.Blockhash
	_, err := rand.Read(bh[:])
	require.NoError(t, err)
	txn.SetBlockhash(bh)

	require.NoError(t, txn.Sign(signers...))

	txErr, err := e.rt.Execute(txn)
	require.NoError(t, err)
	return txErr
}

func (e *testEnv) tokenBalance(t *testing.T, account ed25519.PublicKey) uint64 {
	balance, err := e.rt.TokenBalance(account)
	require.NoError(t, err)
	return balance
}

func (e *testEnv) initVault(t *testing.T) {
	txErr := e.execute(t, []ed25519.PrivateKey{e.owner},
		vault.NewInitVaultInstruction(&vault.InitVaultInstructionAccounts{
			Owner: e.ownerPub,
			Mint:  e.mint,
			Vault: e.vault,
		}),
	)
	require.Nil(t, txErr)
}

// fundOwner stands up the owner's wrapped SOL account the way the cluster
// flow does: create the associated account, transfer lamports, sync.
func (e *testEnv) fundOwner(t *testing.T, amount uint64) {
	create, _, err := token.CreateAssociatedTokenAccountIdempotent(e.ownerPub, e.ownerPub, e.mint)
	require.NoError(t, err)

	txErr := e.execute(t, []ed25519.PrivateKey{e.owner},
		create,
		system.Transfer(e.ownerPub, e.ownerTokenAccount, amount),
		token.SyncNative(e.ownerTokenAccount),
	)
	require.Nil(t, txErr)
}

func (e *testEnv) depositInstruction(amount uint64) solana.Instruction {
	return vault.NewDepositVaultInstruction(
		&vault.DepositVaultInstructionAccounts{
			Owner:             e.ownerPub,
			Vault:             e.vault,
			Mint:              e.mint,
			OwnerTokenAccount: e.ownerTokenAccount,
			VaultTokenAccount: e.custody,
		},
		&vault.DepositVaultInstructionArgs{Amount: amount},
	)
}

func (e *testEnv) withdrawInstruction(amount uint64) solana.Instruction {
	return vault.NewWithdrawVaultInstruction(
		&vault.WithdrawVaultInstructionAccounts{
			Owner:             e.ownerPub,
			Vault:             e.vault,
			Mint:              e.mint,
			OwnerTokenAccount: e.ownerTokenAccount,
			VaultTokenAccount: e.custody,
		},
		&vault.WithdrawVaultInstructionArgs{Amount: amount},
	)
}

func (e *testEnv) luloDepositInstruction(amount uint64) solana.Instruction {
	return vault.NewLuloDepositInstruction(
		&vault.LuloDepositInstructionAccounts{
			Owner:                e.ownerPub,
			Vault:                e.vault,
			VaultTokenAccount:    e.custody,
			Mint:                 e.mint,
			LuloUserAccount:      e.luloUserAccount,
			LuloUserTokenAccount: e.luloUserTokenAccount,
			LuloPromotionReserve: lulo.PROMOTION_RESERVE_ID,
		},
		&vault.LuloDepositInstructionArgs{Amount: amount},
	)
}

func assertCustomError(t *testing.T, txErr *solana.TransactionError, expected solana.CustomError) {
	require.NotNil(t, txErr)

	instructionErr := txErr.InstructionError()
	require.NotNil(t, instructionErr)
	require.NotNil(t, instructionErr.CustomError())
	assert.Equal(t, expected, *instructionErr.CustomError())
}

func assertErrorKey(t *testing.T, txErr *solana.TransactionError, expected solana.InstructionErrorKey) {
	require.NotNil(t, txErr)
	require.NotNil(t, txErr.InstructionError())
	assert.Equal(t, expected, txErr.InstructionError().ErrorKey())
}

func TestInitVault(t *testing.T) {
	env := newTestEnv(t)

	env.initVault(t)

	account, ok := env.rt.GetAccount(env.vault)
	require.True(t, ok)

	var state vault.VaultAccount
	require.NoError(t, state.Unmarshal(account.Data))
	assert.Equal(t, env.ownerPub, state.Owner)
	assert.Equal(t, env.mint, state.Mint)
}

func TestInitVault_AlreadyInitialized(t *testing.T) {
	env := newTestEnv(t)

	env.initVault(t)

	txErr := env.execute(t, []ed25519.PrivateKey{env.owner},
		vault.NewInitVaultInstruction(&vault.InitVaultInstructionAccounts{
			Owner: env.ownerPub,
			Mint:  env.mint,
			Vault: env.vault,
		}),
	)
	assertCustomError(t, txErr, solana.CustomError(vault.ErrAlreadyInitialized))
}

func TestDepositWithdraw(t *testing.T) {
	env := newTestEnv(t)

	env.initVault(t)
	env.fundOwner(t, 10*sol)

	txErr := env.execute(t, []ed25519.PrivateKey{env.owner}, env.depositInstruction(10*sol))
	require.Nil(t, txErr)

	assert.EqualValues(t, 10*sol, env.tokenBalance(t, env.custody))
	assert.EqualValues(t, 0, env.tokenBalance(t, env.ownerTokenAccount))

	txErr = env.execute(t, []ed25519.PrivateKey{env.owner}, env.withdrawInstruction(1*sol))
	require.Nil(t, txErr)

	assert.EqualValues(t, 9*sol, env.tokenBalance(t, env.custody))
	assert.EqualValues(t, 1*sol, env.tokenBalance(t, env.ownerTokenAccount))
}

func TestWithdraw_InsufficientFunds(t *testing.T) {
	env := newTestEnv(t)

	env.initVault(t)
	env.fundOwner(t, 10*sol)

	txErr := env.execute(t, []ed25519.PrivateKey{env.owner}, env.depositInstruction(10*sol))
	require.Nil(t, txErr)

	txErr = env.execute(t, []ed25519.PrivateKey{env.owner}, env.withdrawInstruction(20*sol))
	assertCustomError(t, txErr, solana.CustomError(vault.ErrInsufficientVaultFunds))

	// Nothing moved.
	assert.EqualValues(t, 10*sol, env.tokenBalance(t, env.custody))
	assert.EqualValues(t, 0, env.tokenBalance(t, env.ownerTokenAccount))
}

func TestWithdraw_ForgedAccounts(t *testing.T) {
	env := newTestEnv(t)

	env.initVault(t)
	env.fundOwner(t, 10*sol)

	txErr := env.execute(t, []ed25519.PrivateKey{env.owner}, env.depositInstruction(10*sol))
	require.Nil(t, txErr)

	// Wrong custody account.
	forged := env.withdrawInstruction(1 * sol)
	forged.Accounts[4].PublicKey = env.ownerTokenAccount
	txErr = env.execute(t, []ed25519.PrivateKey{env.owner}, forged)
	assertCustomError(t, txErr, solana.CustomError(vault.ErrAccountMismatch))

	// Wrong vault account.
	forgedVault, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	forged = env.withdrawInstruction(1 * sol)
	forged.Accounts[1].PublicKey = forgedVault
	txErr = env.execute(t, []ed25519.PrivateKey{env.owner}, forged)
	assertCustomError(t, txErr, solana.CustomError(vault.ErrAccountMismatch))

	assert.EqualValues(t, 10*sol, env.tokenBalance(t, env.custody))
}

func TestWithdraw_OwnerMismatch(t *testing.T) {
	env := newTestEnv(t)

	env.initVault(t)
	env.fundOwner(t, 10*sol)

	txErr := env.execute(t, []ed25519.PrivateKey{env.owner}, env.depositInstruction(10*sol))
	require.Nil(t, txErr)

	malloryPub, mallory, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	env.rt.Airdrop(malloryPub, 10*sol)

	malloryTokenAccount, err := token.GetAssociatedAccount(malloryPub, env.mint)
	require.NoError(t, err)
	env.rt.CreateTokenAccount(malloryTokenAccount, env.mint, malloryPub)

	// Mallory signs, but the vault records env.owner.
	forged := vault.NewWithdrawVaultInstruction(
		&vault.WithdrawVaultInstructionAccounts{
			Owner:             malloryPub,
			Vault:             env.vault,
			Mint:              env.mint,
			OwnerTokenAccount: malloryTokenAccount,
			VaultTokenAccount: env.custody,
		},
		&vault.WithdrawVaultInstructionArgs{Amount: 1 * sol},
	)
	txErr = env.execute(t, []ed25519.PrivateKey{mallory}, forged)
	assertCustomError(t, txErr, solana.CustomError(vault.ErrOwnerMismatch))

	assert.EqualValues(t, 10*sol, env.tokenBalance(t, env.custody))
}

func TestWithdraw_UnsignedOwner(t *testing.T) {
	env := newTestEnv(t)

	env.initVault(t)
	env.fundOwner(t, 10*sol)

	txErr := env.execute(t, []ed25519.PrivateKey{env.owner}, env.depositInstruction(10*sol))
	require.Nil(t, txErr)

	malloryPub, mallory, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	env.rt.Airdrop(malloryPub, 10*sol)

	malloryTokenAccount, err := token.GetAssociatedAccount(malloryPub, env.mint)
	require.NoError(t, err)
	env.rt.CreateTokenAccount(malloryTokenAccount, env.mint, malloryPub)

	// Mallory names the real owner but strips the signer flag, paying out to
	// her own token account. The owner's signature is still required.
	forged := vault.NewWithdrawVaultInstruction(
		&vault.WithdrawVaultInstructionAccounts{
			Owner:             env.ownerPub,
			Vault:             env.vault,
			Mint:              env.mint,
			OwnerTokenAccount: malloryTokenAccount,
			VaultTokenAccount: env.custody,
		},
		&vault.WithdrawVaultInstructionArgs{Amount: 10 * sol},
	)
	forged.Accounts[0].IsSigner = false

	txErr = env.execute(t, []ed25519.PrivateKey{mallory}, forged)
	assertErrorKey(t, txErr, solana.InstructionErrorMissingRequiredSignature)

	assert.EqualValues(t, 10*sol, env.tokenBalance(t, env.custody))
	assert.EqualValues(t, 0, env.tokenBalance(t, malloryTokenAccount))
}

func TestWithdraw_ForeignDestination(t *testing.T) {
	env := newTestEnv(t)

	env.initVault(t)
	env.fundOwner(t, 10*sol)

	txErr := env.execute(t, []ed25519.PrivateKey{env.owner}, env.depositInstruction(10*sol))
	require.Nil(t, txErr)

	malloryPub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	malloryTokenAccount, err := token.GetAssociatedAccount(malloryPub, env.mint)
	require.NoError(t, err)
	env.rt.CreateTokenAccount(malloryTokenAccount, env.mint, malloryPub)

	// The owner signs, but the destination token account belongs to someone
	// else.
	forged := env.withdrawInstruction(1 * sol)
	forged.Accounts[3].PublicKey = malloryTokenAccount
	txErr = env.execute(t, []ed25519.PrivateKey{env.owner}, forged)
	assertCustomError(t, txErr, solana.CustomError(vault.ErrAccountMismatch))

	assert.EqualValues(t, 10*sol, env.tokenBalance(t, env.custody))
	assert.EqualValues(t, 0, env.tokenBalance(t, malloryTokenAccount))
}

func TestTokenTransfer_UnsignedAuthority(t *testing.T) {
	env := newTestEnv(t)

	env.initVault(t)
	env.fundOwner(t, 10*sol)

	txErr := env.execute(t, []ed25519.PrivateKey{env.owner}, env.depositInstruction(10*sol))
	require.Nil(t, txErr)

	malloryPub, mallory, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	env.rt.Airdrop(malloryPub, 10*sol)

	malloryTokenAccount, err := token.GetAssociatedAccount(malloryPub, env.mint)
	require.NoError(t, err)
	env.rt.CreateTokenAccount(malloryTokenAccount, env.mint, malloryPub)

	// A raw transfer naming the custody authority without its signature must
	// not move funds.
	forged := token.Transfer(env.custody, malloryTokenAccount, env.vault, 10*sol)
	forged.Accounts[2].IsSigner = false

	txErr = env.execute(t, []ed25519.PrivateKey{mallory}, forged)
	assertErrorKey(t, txErr, solana.InstructionErrorMissingRequiredSignature)

	assert.EqualValues(t, 10*sol, env.tokenBalance(t, env.custody))
	assert.EqualValues(t, 0, env.tokenBalance(t, malloryTokenAccount))
}

func TestLuloDeposit(t *testing.T) {
	env := newTestEnv(t)

	env.initVault(t)
	env.fundOwner(t, 10*sol)

	txErr := env.execute(t, []ed25519.PrivateKey{env.owner}, env.depositInstruction(10*sol))
	require.Nil(t, txErr)

	txErr = env.execute(t, []ed25519.PrivateKey{env.owner}, env.luloDepositInstruction(1*sol))
	require.Nil(t, txErr)

	assert.EqualValues(t, 9*sol, env.tokenBalance(t, env.custody))
	assert.EqualValues(t, 1*sol, env.tokenBalance(t, env.luloUserTokenAccount))
}

func TestLuloDeposit_ExceedsCustody(t *testing.T) {
	env := newTestEnv(t)

	env.initVault(t)
	env.fundOwner(t, 10*sol)

	txErr := env.execute(t, []ed25519.PrivateKey{env.owner}, env.depositInstruction(10*sol))
	require.Nil(t, txErr)

	txErr = env.execute(t, []ed25519.PrivateKey{env.owner}, env.luloDepositInstruction(11*sol))
	assertCustomError(t, txErr, solana.CustomError(vault.ErrInsufficientVaultFunds))

	assert.EqualValues(t, 10*sol, env.tokenBalance(t, env.custody))
}

func TestLuloWithdraw_TwoPhase(t *testing.T) {
	env := newTestEnv(t)

	env.initVault(t)
	env.fundOwner(t, 10*sol)

	txErr := env.execute(t, []ed25519.PrivateKey{env.owner}, env.depositInstruction(10*sol))
	require.Nil(t, txErr)
	txErr = env.execute(t, []ed25519.PrivateKey{env.owner}, env.luloDepositInstruction(2*sol))
	require.Nil(t, txErr)

	withdraw := vault.NewLuloWithdrawInstruction(
		&vault.LuloWithdrawInstructionAccounts{
			Owner:                env.ownerPub,
			Vault:                env.vault,
			VaultTokenAccount:    env.custody,
			Mint:                 env.mint,
			LuloUserAccount:      env.luloUserAccount,
			LuloUserTokenAccount: env.luloUserTokenAccount,
			LuloPromotionReserve: lulo.PROMOTION_RESERVE_ID,
		},
		&vault.LuloWithdrawInstructionArgs{Amount: 1 * sol},
	)
	txErr = env.execute(t, []ed25519.PrivateKey{env.owner}, withdraw)
	require.Nil(t, txErr)

	// Request only: nothing moved, the request is recorded.
	assert.EqualValues(t, 8*sol, env.tokenBalance(t, env.custody))
	assert.EqualValues(t, 2*sol, env.tokenBalance(t, env.luloUserTokenAccount))

	account, ok := env.rt.GetAccount(env.luloUserAccount)
	require.True(t, ok)
	var user lulo.UserAccount
	require.NoError(t, user.Unmarshal(account.Data))
	assert.Equal(t, lulo.WithdrawalStateRequested, user.WithdrawalState)
	assert.EqualValues(t, 1*sol, user.PendingWithdrawal)

	// Any cranker settles the matured request back into custody.
	crankerPub, cranker, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	env.rt.Airdrop(crankerPub, 1*sol)

	crank := lulo.NewCompleteWithdrawInstruction(&lulo.CompleteWithdrawInstructionAccounts{
		Cranker:           crankerPub,
		Owner:             env.vault,
		OwnerTokenAccount: env.custody,
		UserAccount:       env.luloUserAccount,
		UserTokenAccount:  env.luloUserTokenAccount,
		Mint:              env.mint,
	})
	txErr = env.execute(t, []ed25519.PrivateKey{cranker}, crank)
	require.Nil(t, txErr)

	assert.EqualValues(t, 9*sol, env.tokenBalance(t, env.custody))
	assert.EqualValues(t, 1*sol, env.tokenBalance(t, env.luloUserTokenAccount))

	account, ok = env.rt.GetAccount(env.luloUserAccount)
	require.True(t, ok)
	require.NoError(t, user.Unmarshal(account.Data))
	assert.Equal(t, lulo.WithdrawalStateSettled, user.WithdrawalState)
	assert.EqualValues(t, 0, user.PendingWithdrawal)
}

type driftEnv struct {
	user            ed25519.PublicKey
	userStats       ed25519.PublicKey
	state           ed25519.PublicKey
	signer          ed25519.PublicKey
	spotMarketVault ed25519.PublicKey
	spotMarket      ed25519.PublicKey
	oracle          ed25519.PublicKey
}

func newDriftEnv(t *testing.T, env *testEnv) *driftEnv {
	user, _, err := drift.GetUserAddress(&drift.GetUserAddressArgs{
		Authority:    env.luloUserAccount,
		SubAccountId: drift.DefaultSubAccountId,
	})
	require.NoError(t, err)

	userStats, _, err := drift.GetUserStatsAddress(&drift.GetUserStatsAddressArgs{
		Authority: env.luloUserAccount,
	})
	require.NoError(t, err)

	state, _, err := drift.GetStateAddress()
	require.NoError(t, err)

	signer, _, err := drift.GetSignerAddress()
	require.NoError(t, err)

	spotMarketVault, _, err := drift.GetSpotMarketVaultAddress(&drift.GetSpotMarketVaultAddressArgs{
		MarketIndex: 1,
	})
	require.NoError(t, err)
	env.rt.CreateTokenAccount(spotMarketVault, env.mint, signer)

	spotMarket, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	oracle, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	return &driftEnv{
		user:            user,
		userStats:       userStats,
		state:           state,
		signer:          signer,
		spotMarketVault: spotMarketVault,
		spotMarket:      spotMarket,
		oracle:          oracle,
	}
}

func (d *driftEnv) depositInstruction(env *testEnv, amount uint64) solana.Instruction {
	return vault.NewLuloDepositDriftInstruction(
		&vault.LuloDepositDriftInstructionAccounts{
			Owner:                env.ownerPub,
			Vault:                env.vault,
			VaultTokenAccount:    env.custody,
			Mint:                 env.mint,
			LuloUserAccount:      env.luloUserAccount,
			LuloUserTokenAccount: env.luloUserTokenAccount,
			LuloPromotionReserve: lulo.PROMOTION_RESERVE_ID,
			DriftUser:            d.user,
			DriftUserStats:       d.userStats,
			DriftState:           d.state,
			SpotMarketVault:      d.spotMarketVault,
			SpotMarket:           d.spotMarket,
			Oracle:               d.oracle,
		},
		&vault.LuloDepositDriftInstructionArgs{Amount: amount},
	)
}

func (d *driftEnv) withdrawInstruction(env *testEnv, amount uint64) solana.Instruction {
	return vault.NewLuloWithdrawDriftInstruction(
		&vault.LuloWithdrawDriftInstructionAccounts{
			Owner:                env.ownerPub,
			Vault:                env.vault,
			VaultTokenAccount:    env.custody,
			Mint:                 env.mint,
			LuloUserAccount:      env.luloUserAccount,
			LuloUserTokenAccount: env.luloUserTokenAccount,
			LuloPromotionReserve: lulo.PROMOTION_RESERVE_ID,
			DriftUser:            d.user,
			DriftUserStats:       d.userStats,
			DriftState:           d.state,
			DriftSigner:          d.signer,
			SpotMarketVault:      d.spotMarketVault,
			Oracles:              []ed25519.PublicKey{d.oracle, d.oracle},
			SpotMarkets:          []ed25519.PublicKey{d.spotMarket, d.spotMarket},
		},
		&vault.LuloWithdrawDriftInstructionArgs{Amount: amount},
	)
}

func TestDriftDeposit_AutoInit(t *testing.T) {
	env := newTestEnv(t)
	env.initVault(t)
	env.fundOwner(t, 10*sol)

	txErr := env.execute(t, []ed25519.PrivateKey{env.owner}, env.depositInstruction(10*sol))
	require.Nil(t, txErr)
	txErr = env.execute(t, []ed25519.PrivateKey{env.owner}, env.luloDepositInstruction(2*sol))
	require.Nil(t, txErr)

	d := newDriftEnv(t, env)

	// No venue user account exists yet; the route initializes it in flight.
	_, ok := env.rt.GetAccount(d.user)
	require.False(t, ok)

	txErr = env.execute(t, []ed25519.PrivateKey{env.owner}, d.depositInstruction(env, 1*sol))
	require.Nil(t, txErr)

	_, ok = env.rt.GetAccount(d.user)
	assert.True(t, ok)

	assert.EqualValues(t, 1*sol, env.tokenBalance(t, d.spotMarketVault))
	assert.EqualValues(t, 1*sol, env.tokenBalance(t, env.luloUserTokenAccount))
}

func TestDriftWithdraw_ComputeBudget(t *testing.T) {
	env := newTestEnv(t)
	env.initVault(t)
	env.fundOwner(t, 10*sol)

	txErr := env.execute(t, []ed25519.PrivateKey{env.owner}, env.depositInstruction(10*sol))
	require.Nil(t, txErr)
	txErr = env.execute(t, []ed25519.PrivateKey{env.owner}, env.luloDepositInstruction(2*sol))
	require.Nil(t, txErr)

	d := newDriftEnv(t, env)
	txErr = env.execute(t, []ed25519.PrivateKey{env.owner}, d.depositInstruction(env, 2*sol))
	require.Nil(t, txErr)

	// The exit path exceeds the default budget; without a raised limit the
	// transaction fails and nothing moves.
	txErr = env.execute(t, []ed25519.PrivateKey{env.owner}, d.withdrawInstruction(env, 1*sol))
	require.NotNil(t, txErr)
	require.NotNil(t, txErr.InstructionError())
	assert.Equal(t, solana.InstructionErrorComputationalBudgetExceeded, txErr.InstructionError().ErrorKey())
	assert.EqualValues(t, 2*sol, env.tokenBalance(t, d.spotMarketVault))

	txErr = env.execute(t, []ed25519.PrivateKey{env.owner},
		compute_budget.SetComputeUnitLimit(1_000_000),
		d.withdrawInstruction(env, 1*sol),
	)
	require.Nil(t, txErr)

	assert.EqualValues(t, 1*sol, env.tokenBalance(t, d.spotMarketVault))
	assert.EqualValues(t, 1*sol, env.tokenBalance(t, env.luloUserTokenAccount))
}

func TestExecute_SignatureVerification(t *testing.T) {
	env := newTestEnv(t)

	txn := solana.NewTransaction(env.ownerPub,
		vault.NewInitVaultInstruction(&vault.InitVaultInstructionAccounts{
			Owner: env.ownerPub,
			Mint:  env.mint,
			Vault: env.vault,
		}),
	)

	// Unsigned.
	txErr, err := env.rt.Execute(txn)
	require.NoError(t, err)
	require.NotNil(t, txErr)
	assert.Equal(t, solana.TransactionErrorSignatureFailure, txErr.ErrorKey())

	_, ok := env.rt.GetAccount(env.vault)
	assert.False(t, ok)
}
