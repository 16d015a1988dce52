package runtime

import (
	"github.com/gabrielkoerich/lulo-vault/pkg/solana"
	compute_budget "github.com/gabrielkoerich/lulo-vault/pkg/solana/computebudget"
)

// processComputeBudget validates the instruction data. The requested limit
// itself is applied before execution starts, in computeUnitLimit.
func processComputeBudget(ctx *instructionCtx) error {
	if _, err := compute_budget.ParseSetComputeUnitLimitIxnData(ctx.data); err == nil {
		return nil
	}
	if _, err := compute_budget.ParseSetComputeUnitPriceIxnData(ctx.data); err == nil {
		return nil
	}

	return keyError(solana.InstructionErrorInvalidInstructionData)
}
