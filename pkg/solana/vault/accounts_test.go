package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
)

func TestVaultAccount_RoundTrip(t *testing.T) {
	owner := generateKey(t)
	mint := generateKey(t)

	_, bump, err := GetVaultAddress(&GetVaultAddressArgs{
		Mint:  mint,
		Owner: owner,
	})
	require.NoError(t, err)

	expected := VaultAccount{
		Bump:  bump,
		Owner: owner,
		Mint:  mint,
	}

	data := expected.Marshal()
	require.Len(t, data, VaultAccountSize)

	var actual VaultAccount
	require.NoError(t, actual.Unmarshal(data))
	assert.Equal(t, expected, actual)
}

func TestVaultAccount_InvalidData(t *testing.T) {
	var account VaultAccount

	// Too short.
	assert.Equal(t, ErrInvalidAccountData, account.Unmarshal(make([]byte, VaultAccountSize-1)))

	// Wrong discriminator.
	assert.Equal(t, ErrInvalidAccountData, account.Unmarshal(make([]byte, VaultAccountSize)))
}

func TestVaultAccount_SignerSeeds(t *testing.T) {
	owner := generateKey(t)
	mint := generateKey(t)

	address, bump, err := GetVaultAddress(&GetVaultAddressArgs{
		Mint:  mint,
		Owner: owner,
	})
	require.NoError(t, err)

	account := VaultAccount{
		Bump:  bump,
		Owner: owner,
		Mint:  mint,
	}

	// The signer seeds must derive back to the vault address.
	derived, err := solana.CreateProgramAddress(PROGRAM_ID, account.SignerSeeds()...)
	require.NoError(t, err)
	assert.Equal(t, address, derived)
}
