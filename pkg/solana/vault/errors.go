package vault

// VaultError is the program's custom error code space, starting at the Anchor
// custom error offset.
type VaultError uint32

const (
	// A vault already exists for this (mint, owner) pair
	ErrAlreadyInitialized VaultError = iota + 0x1770

	// Signer does not match the vault's owner
	ErrOwnerMismatch

	// A supplied account does not match its expected derivation
	ErrAccountMismatch

	// Requested amount exceeds the vault's movable balance
	ErrInsufficientVaultFunds

	// The aggregator or venue program returned an error
	ErrExternalCallFailed
)
