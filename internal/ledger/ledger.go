// Package ledger implements the accounting rule that converts one
// transaction into balance deltas.
package ledger

import (
	"fmt"

	"github.com/petrossemanhica07/app-poupanca/internal/models"
)

// Deltas holds the balance adjustments produced by one transaction: one for
// the group pool and one for the member. The system-scoped row is always
// touched with a zero delta (timestamp refresh only).
type Deltas struct {
	Group  float64
	Member float64
}

// Compute applies the movement rule:
//
//	contribution/repayment/penalty: group += amount + penalty, member -= amount
//	loan/payout:                    group -= amount,           member += amount
//
// Money flowing into the pool decreases the member balance (the member
// balance tracks the member's position against the group, not cash held);
// money flowing out to the member increases it. Penalty amounts are folded
// only into the group-side delta.
func Compute(tipo models.TransactionType, amount, penalty float64) (Deltas, error) {
	if amount < 0 {
		return Deltas{}, fmt.Errorf("amount must be non-negative, got %v", amount)
	}
	if penalty < 0 {
		return Deltas{}, fmt.Errorf("penalty must be non-negative, got %v", penalty)
	}

	switch tipo {
	case models.TypeContribution, models.TypeRepayment, models.TypePenalty:
		return Deltas{Group: amount + penalty, Member: -amount}, nil
	case models.TypeLoan, models.TypePayout:
		return Deltas{Group: -amount, Member: amount}, nil
	default:
		return Deltas{}, fmt.Errorf("unknown transaction type %q", tipo)
	}
}
