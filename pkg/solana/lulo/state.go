package lulo

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

// WithdrawalState tracks a withdrawal request through the router's
// asynchronous settlement. Funds leave the underlying protocol some time
// after the request; only once settled do they land back in the owner's
// token account.
type WithdrawalState uint8

const (
	WithdrawalStateNone WithdrawalState = iota
	WithdrawalStateRequested
	WithdrawalStateSettled
)

const UserAccountSize = (8 + // discriminator
	1 + // bump
	7 + // padding
	32 + // owner
	8 + // pending_withdrawal
	1) // withdrawal_state

var UserAccountDiscriminator = accountDiscriminator("UserAccount")

// UserAccount is the router's per-owner position record. The router is the
// source of truth for deployed capital; this mirrors only the fields the
// vault flows observe.
type UserAccount struct {
	Bump              uint8
	Owner             ed25519.PublicKey
	PendingWithdrawal uint64
	WithdrawalState   WithdrawalState
}

func (obj *UserAccount) Marshal() []byte {
	data := make([]byte, UserAccountSize)

	var offset int
	putDiscriminator(data, UserAccountDiscriminator, &offset)
	putUint8(data, obj.Bump, &offset)
	offset += 7 // padding
	putKey(data, obj.Owner, &offset)
	putUint64(data, obj.PendingWithdrawal, &offset)
	putUint8(data, uint8(obj.WithdrawalState), &offset)

	return data
}

func (obj *UserAccount) Unmarshal(data []byte) error {
	if len(data) < UserAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, UserAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	getUint8(data, &obj.Bump, &offset)
	offset += 7 // padding
	getKey(data, &obj.Owner, &offset)
	getUint64(data, &obj.PendingWithdrawal, &offset)

	var state uint8
	getUint8(data, &state, &offset)
	obj.WithdrawalState = WithdrawalState(state)

	return nil
}

func (obj *UserAccount) String() string {
	return fmt.Sprintf(
		"UserAccount{bump=%d,owner=%s,pending_withdrawal=%d,withdrawal_state=%d}",
		obj.Bump,
		base58.Encode(obj.Owner),
		obj.PendingWithdrawal,
		obj.WithdrawalState,
	)
}
