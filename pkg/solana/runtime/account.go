package runtime

import (
	"crypto/ed25519"
)

// Account is a ledger entry. Data layout is owned by the program in Owner;
// nobody else may mutate it.
type Account struct {
	Lamports uint64
	Owner    ed25519.PublicKey
	Data     []byte
}

// IsEmpty reports whether the account has never been allocated, which is how
// programs test for first use.
func (a *Account) IsEmpty() bool {
	return a == nil || (a.Lamports == 0 && len(a.Data) == 0)
}

func (a *Account) clone() *Account {
	if a == nil {
		return nil
	}

	data := make([]byte, len(a.Data))
	copy(data, a.Data)

	owner := make(ed25519.PublicKey, len(a.Owner))
	copy(owner, a.Owner)

	return &Account{
		Lamports: a.Lamports,
		Owner:    owner,
		Data:     data,
	}
}
