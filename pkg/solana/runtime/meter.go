package runtime

// DefaultComputeUnitLimit matches the per-transaction budget applied when no
// compute budget instruction is present.
const DefaultComputeUnitLimit = 200_000

type computeMeter struct {
	remaining uint64
}

func newComputeMeter(limit uint64) *computeMeter {
	return &computeMeter{remaining: limit}
}

func (m *computeMeter) consume(units uint64) error {
	if units > m.remaining {
		m.remaining = 0
		return errComputeBudgetExceeded
	}

	m.remaining -= units
	return nil
}
