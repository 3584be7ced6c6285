package models

// TransactionType classifies a financial movement.
type TransactionType string

const (
	// TypeContribution is a member paying their share into the pool.
	TypeContribution TransactionType = "contribution"

	// TypeLoan is the pool lending money out to a member.
	TypeLoan TransactionType = "loan"

	// TypeRepayment is a member paying a loan back into the pool.
	TypeRepayment TransactionType = "repayment"

	// TypePenalty is a fine charged to a member, paid into the pool.
	TypePenalty TransactionType = "penalty"

	// TypePayout is a distribution from the pool out to a member.
	TypePayout TransactionType = "payout"
)

// Valid reports whether t is one of the known movement types.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeContribution, TypeLoan, TypeRepayment, TypePenalty, TypePayout:
		return true
	}
	return false
}

// Transaction is a single financial movement tied to one member and one
// meeting. Transactions are immutable once created.
type Transaction struct {
	// ID is the unique identifier for the transaction.
	ID int64 `json:"id"`

	// MeetingID is the meeting during which the movement was recorded.
	MeetingID int64 `json:"meeting_id"`

	// MemberID is the member the movement concerns.
	MemberID int64 `json:"member_id"`

	// Type classifies the movement.
	Type TransactionType `json:"tipo"`

	// Amount is the principal amount. Always non-negative; the type alone
	// determines the direction of the movement.
	Amount float64 `json:"valor"`

	// Penalty is an extra fine folded into the group-side delta.
	// Zero for most movements.
	Penalty float64 `json:"multa"`

	// Notes is an optional free-form note.
	Notes string `json:"notas,omitempty"`

	// CreatedAt is the Unix timestamp when the transaction was recorded.
	CreatedAt int64 `json:"criado_em"`
}
